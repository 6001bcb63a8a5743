package solver

import (
	"github.com/flotilla-solver/flotilla/pkg/flotilla"
)

// propagator prunes unsupported values to a fixpoint (generalized
// arc consistency). Only the propagator prunes and restores domains;
// only the search assigns and unassigns variables.
type propagator struct {
	graph *flotilla.ConstraintGraph
	log   *undoLog
}

// enforce drains a worklist of constraints, pruning every
// (variable, value) pair without support and logging each prune
// under the (reasonVar, reasonVal) key. Pruning that empties a
// current domain fails with DomainWipeoutError. When an assigned
// variable's value loses support the branch is equally dead: enforce
// reports wipeout directly without pruning the overlay value.
// Constraints referencing a pruned variable are re-enqueued unless
// already queued; queue order affects effort only, never the
// fixpoint reached. Running enforce again on an already consistent
// graph prunes nothing.
func (p *propagator) enforce(queue []flotilla.Constraint, reasonVar *flotilla.Variable, reasonVal flotilla.Value) error {
	enqueued := make(map[flotilla.Constraint]bool, len(queue))
	for _, c := range queue {
		enqueued[c] = true
	}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		enqueued[c] = false

		for _, v := range c.Scope() {
			for _, val := range v.CurrentDomain() {
				if c.HasSupport(v, val) {
					continue
				}
				if v.IsAssigned() {
					return flotilla.DomainWipeoutError{Variable: v.Identifier()}
				}
				if err := v.Prune(val); err != nil {
					return err
				}
				p.log.record(reasonVar, reasonVal, v, val)
				if v.CurrentDomainSize() == 0 {
					return flotilla.DomainWipeoutError{Variable: v.Identifier()}
				}
				for _, recheck := range p.graph.ConstraintsOf(v) {
					if recheck != c && !enqueued[recheck] {
						queue = append(queue, recheck)
						enqueued[recheck] = true
					}
				}
			}
		}
	}
	return nil
}
