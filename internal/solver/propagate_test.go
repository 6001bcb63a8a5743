package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flotilla-solver/flotilla/pkg/flotilla"
)

func TestEnforcePrunesToFixpoint(t *testing.T) {
	// a=1 forces b=2 which in turn forces c=1.
	a := variable("a", "1", "2")
	b := variable("b", "1", "2")
	c := variable("c", "1", "2")
	g := graph(t, []*flotilla.Variable{a, b, c},
		table(t, "ab", []*flotilla.Variable{a, b},
			[]flotilla.Value{"1", "2"}, []flotilla.Value{"2", "1"}),
		table(t, "bc", []*flotilla.Variable{b, c},
			[]flotilla.Value{"1", "2"}, []flotilla.Value{"2", "1"}))
	require.NoError(t, a.Assign("1"))

	log := newUndoLog()
	p := &propagator{graph: g, log: log}
	require.NoError(t, p.enforce(g.ConstraintsOf(a), a, "1"))

	assert.Equal(t, []flotilla.Value{"2"}, b.CurrentDomain())
	assert.Equal(t, []flotilla.Value{"1"}, c.CurrentDomain())
	assert.Equal(t, 1, log.len())

	require.NoError(t, log.undo(a, "1"))
	assert.True(t, log.empty())
	assert.ElementsMatch(t, []flotilla.Value{"1", "2"}, b.CurrentDomain())
	assert.ElementsMatch(t, []flotilla.Value{"1", "2"}, c.CurrentDomain())
}

func TestEnforceIdempotent(t *testing.T) {
	a := variable("a", "1", "2")
	b := variable("b", "1", "2")
	g := graph(t, []*flotilla.Variable{a, b},
		table(t, "neq", []*flotilla.Variable{a, b},
			[]flotilla.Value{"1", "2"}, []flotilla.Value{"2", "1"}))
	require.NoError(t, a.Assign("1"))

	log := newUndoLog()
	p := &propagator{graph: g, log: log}
	require.NoError(t, p.enforce(g.ConstraintsOf(a), a, "1"))
	assert.Equal(t, 1, log.len())

	// a second pass over a consistent graph prunes nothing, so no
	// batch is recorded for the new reason
	require.NoError(t, p.enforce(g.Constraints(), b, "2"))
	assert.Equal(t, 1, log.len())
	assert.Equal(t, []flotilla.Value{"2"}, b.CurrentDomain())
}

func TestEnforceWipeout(t *testing.T) {
	// every value of b requires a=2, but a is pinned at 1
	a := variable("a", "1", "2")
	b := variable("b", "1", "2")
	g := graph(t, []*flotilla.Variable{a, b},
		table(t, "ba", []*flotilla.Variable{b, a},
			[]flotilla.Value{"1", "2"}, []flotilla.Value{"2", "2"}))
	require.NoError(t, a.Assign("1"))

	log := newUndoLog()
	p := &propagator{graph: g, log: log}
	err := p.enforce(g.ConstraintsOf(a), a, "1")
	assert.Equal(t, flotilla.DomainWipeoutError{Variable: "b"}, err)

	// the wipeout is recoverable: undoing the reason restores every
	// prune made before the failure
	require.NoError(t, log.undo(a, "1"))
	assert.True(t, log.empty())
	assert.ElementsMatch(t, []flotilla.Value{"1", "2"}, b.CurrentDomain())
}

func TestEnforceWipeoutOnAssignedVariable(t *testing.T) {
	// when the unsupported value belongs to an assigned variable the
	// overlay is not pruned; the branch is reported dead as-is
	a := variable("a", "1", "2")
	g := graph(t, []*flotilla.Variable{a},
		table(t, "two", []*flotilla.Variable{a}, []flotilla.Value{"2"}))
	require.NoError(t, a.Assign("1"))

	log := newUndoLog()
	p := &propagator{graph: g, log: log}
	err := p.enforce(g.ConstraintsOf(a), a, "1")
	assert.Equal(t, flotilla.DomainWipeoutError{Variable: "a"}, err)
	assert.True(t, log.empty())
	assert.Equal(t, []flotilla.Value{"1"}, a.CurrentDomain())
}
