package solver

import (
	"github.com/flotilla-solver/flotilla/pkg/flotilla"
)

// reason keys a batch of prunes to the tentative assignment that
// caused them. Variables are keyed by identity, never by name.
type reason struct {
	variable *flotilla.Variable
	value    flotilla.Value
}

type pruned struct {
	variable *flotilla.Variable
	value    flotilla.Value
}

// undoLog records, per reason, the (variable, value) pairs removed
// from current domains during one propagation pass. Each batch is
// consumed exactly once when the assignment that caused it is
// undone. The log is owned by a single search invocation; it must be
// empty before the root call and after it returns.
type undoLog struct {
	entries map[reason][]pruned
}

func newUndoLog() *undoLog {
	return &undoLog{entries: make(map[reason][]pruned)}
}

func (l *undoLog) record(reasonVar *flotilla.Variable, reasonVal flotilla.Value, v *flotilla.Variable, val flotilla.Value) {
	key := reason{variable: reasonVar, value: reasonVal}
	l.entries[key] = append(l.entries[key], pruned{variable: v, value: val})
}

// undo restores every value pruned under the given reason and drops
// the batch. A missing batch is a no-op: propagation may have pruned
// nothing for this reason.
func (l *undoLog) undo(reasonVar *flotilla.Variable, reasonVal flotilla.Value) error {
	key := reason{variable: reasonVar, value: reasonVal}
	batch, ok := l.entries[key]
	if !ok {
		return nil
	}
	delete(l.entries, key)
	for _, p := range batch {
		if err := p.variable.Restore(p.value); err != nil {
			return err
		}
	}
	return nil
}

func (l *undoLog) empty() bool {
	return len(l.entries) == 0
}

func (l *undoLog) len() int {
	return len(l.entries)
}
