package solver

import (
	"errors"

	"github.com/flotilla-solver/flotilla/pkg/flotilla"
)

// search is the recursive assign/propagate/undo driver. It
// enumerates every full consistent assignment; it never stops at the
// first solution.
type search struct {
	graph   *flotilla.ConstraintGraph
	log     *undoLog
	tracer  flotilla.Tracer
	handler flotilla.SolutionHandler
	count   int
}

type position struct {
	assignment flotilla.Assignment
	wipeout    flotilla.Identifier
}

func (p position) Assignment() flotilla.Assignment {
	return p.assignment
}

func (p position) Wipeout() flotilla.Identifier {
	return p.wipeout
}

// run selects the next unassigned variable in fixed order and tries
// every value of its current domain. After exhausting all values the
// variable is unassigned again, so the graph's domains and
// assignment state after a subtree are identical to before it was
// entered. Wipeouts abandon a single branch; any other error aborts
// the whole search.
func (s *search) run(unassigned []*flotilla.Variable) error {
	if len(unassigned) == 0 {
		s.count++
		if s.handler != nil {
			s.handler(s.snapshot())
		}
		return nil
	}

	v := unassigned[0]
	rest := unassigned[1:]
	for _, val := range v.CurrentDomain() {
		if err := s.try(v, val, rest); err != nil {
			v.Unassign()
			return err
		}
	}
	v.Unassign()
	return nil
}

// try assigns v=val, propagates from v's constraints and recurses.
// The deferred undo guarantees that every value pruned under the
// (v, val) reason is restored on every exit path, whether
// propagation succeeded, wiped out, or the recursion failed.
func (s *search) try(v *flotilla.Variable, val flotilla.Value, rest []*flotilla.Variable) (err error) {
	if aerr := v.Assign(val); aerr != nil {
		return aerr
	}
	defer func() {
		if uerr := s.log.undo(v, val); uerr != nil && err == nil {
			err = uerr
		}
	}()

	p := &propagator{graph: s.graph, log: s.log}
	if perr := p.enforce(s.graph.ConstraintsOf(v), v, val); perr != nil {
		var wipeout flotilla.DomainWipeoutError
		if errors.As(perr, &wipeout) {
			s.tracer.Trace(position{assignment: s.snapshot(), wipeout: wipeout.Variable})
			return nil
		}
		return perr
	}
	return s.run(rest)
}

// snapshot captures the currently assigned variables.
func (s *search) snapshot() flotilla.Assignment {
	assignment := make(flotilla.Assignment)
	for _, v := range s.graph.Variables() {
		if value, ok := v.Value(); ok {
			assignment[v.Identifier()] = value
		}
	}
	return assignment
}
