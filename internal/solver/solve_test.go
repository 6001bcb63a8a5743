package solver

import (
	"bytes"
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flotilla-solver/flotilla/pkg/flotilla"
	"github.com/flotilla-solver/flotilla/pkg/flotilla/constraint"
)

func variable(id flotilla.Identifier, values ...flotilla.Value) *flotilla.Variable {
	return flotilla.NewVariable(id, values...)
}

func table(t *testing.T, id flotilla.Identifier, scope []*flotilla.Variable, tuples ...[]flotilla.Value) flotilla.Constraint {
	t.Helper()
	c, err := constraint.Table(id, scope, tuples)
	require.NoError(t, err)
	return c
}

func graph(t *testing.T, variables []*flotilla.Variable, constraints ...flotilla.Constraint) *flotilla.ConstraintGraph {
	t.Helper()
	g, err := flotilla.NewConstraintGraph("test", variables, constraints)
	require.NoError(t, err)
	return g
}

func sortAssignments(assignments []flotilla.Assignment) {
	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].String() < assignments[j].String()
	})
}

func TestSolve(t *testing.T) {
	type tc struct {
		Name      string
		Graph     func(t *testing.T) *flotilla.ConstraintGraph
		Solutions []flotilla.Assignment
	}

	for _, tt := range []tc{
		{
			Name: "empty graph has the empty solution",
			Graph: func(t *testing.T) *flotilla.ConstraintGraph {
				return graph(t, nil)
			},
			Solutions: []flotilla.Assignment{{}},
		},
		{
			Name: "not-equal constraint enumerates both orders",
			Graph: func(t *testing.T) *flotilla.ConstraintGraph {
				a := variable("a", "1", "2")
				b := variable("b", "1", "2")
				return graph(t, []*flotilla.Variable{a, b},
					table(t, "neq", []*flotilla.Variable{a, b},
						[]flotilla.Value{"1", "2"}, []flotilla.Value{"2", "1"}))
			},
			Solutions: []flotilla.Assignment{
				{"a": "1", "b": "2"},
				{"a": "2", "b": "1"},
			},
		},
		{
			Name: "single allowed tuple yields one solution",
			Graph: func(t *testing.T) *flotilla.ConstraintGraph {
				a := variable("a", "1", "2")
				b := variable("b", "1", "2")
				return graph(t, []*flotilla.Variable{a, b},
					table(t, "both-one", []*flotilla.Variable{a, b},
						[]flotilla.Value{"1", "1"}))
			},
			Solutions: []flotilla.Assignment{
				{"a": "1", "b": "1"},
			},
		},
		{
			Name: "wipeout prunes a branch without aborting the search",
			Graph: func(t *testing.T) *flotilla.ConstraintGraph {
				// a=1 wipes out b; the a=2 subtree still
				// yields both of b's values.
				a := variable("a", "1", "2")
				b := variable("b", "1", "2")
				return graph(t, []*flotilla.Variable{a, b},
					table(t, "two-only", []*flotilla.Variable{a, b},
						[]flotilla.Value{"2", "1"}, []flotilla.Value{"2", "2"}))
			},
			Solutions: []flotilla.Assignment{
				{"a": "2", "b": "1"},
				{"a": "2", "b": "2"},
			},
		},
		{
			Name: "unsatisfiable graph has no solutions",
			Graph: func(t *testing.T) *flotilla.ConstraintGraph {
				a := variable("a", "1", "2")
				return graph(t, []*flotilla.Variable{a},
					table(t, "empty", []*flotilla.Variable{a}))
			},
			Solutions: nil,
		},
		{
			Name: "cardinality and table constraints combine",
			Graph: func(t *testing.T) *flotilla.ConstraintGraph {
				// exactly one of a, b, c carries "1", and a
				// table forbids it being c.
				a := variable("a", "0", "1")
				b := variable("b", "0", "1")
				c := variable("c", "0", "1")
				return graph(t, []*flotilla.Variable{a, b, c},
					constraint.Cardinality("one-hit", []*flotilla.Variable{a, b, c}, []flotilla.Value{"1"}, 1, 1),
					table(t, "c-zero", []*flotilla.Variable{c}, []flotilla.Value{"0"}))
			},
			Solutions: []flotilla.Assignment{
				{"a": "0", "b": "1", "c": "0"},
				{"a": "1", "b": "0", "c": "0"},
			},
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert := assert.New(t)

			g := tt.Graph(t)

			var traces bytes.Buffer
			var solutions []flotilla.Assignment
			s, err := NewSolver(
				WithGraph(g),
				WithHandler(func(a flotilla.Assignment) { solutions = append(solutions, a) }),
				WithTracer(flotilla.LoggingTracer{Writer: &traces}),
			)
			if err != nil {
				t.Fatalf("failed to initialize solver: %s", err)
			}

			count, err := s.Solve(context.TODO())
			assert.NoError(err)
			assert.Equal(len(tt.Solutions), count)

			sortAssignments(solutions)
			expected := append([]flotilla.Assignment(nil), tt.Solutions...)
			sortAssignments(expected)
			assert.Equal(expected, solutions)

			// Undo completeness: after the root call returns,
			// every variable is unassigned and every current
			// domain equals its original domain.
			for _, v := range g.Variables() {
				assert.Falsef(v.IsAssigned(), "variable %s still assigned", v.Identifier())
				assert.ElementsMatchf(v.Domain(), v.CurrentDomain(),
					"variable %s current domain not restored", v.Identifier())
			}

			if t.Failed() {
				t.Logf("\n%s", traces.String())
			}
		})
	}
}

func TestSolveRepeatedOnSameGraph(t *testing.T) {
	a := variable("a", "1", "2")
	b := variable("b", "1", "2")
	g := graph(t, []*flotilla.Variable{a, b},
		table(t, "neq", []*flotilla.Variable{a, b},
			[]flotilla.Value{"1", "2"}, []flotilla.Value{"2", "1"}))

	s, err := NewSolver(WithGraph(g))
	require.NoError(t, err)

	// Search restores all state, so independent solves on one
	// graph agree.
	for i := 0; i < 3; i++ {
		count, err := s.Solve(context.TODO())
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	}
}

func TestSolvePreassignedVariable(t *testing.T) {
	a := variable("a", "1", "2")
	b := variable("b", "1", "2")
	g := graph(t, []*flotilla.Variable{a, b},
		table(t, "neq", []*flotilla.Variable{a, b},
			[]flotilla.Value{"1", "2"}, []flotilla.Value{"2", "1"}))
	require.NoError(t, a.Assign("2"))

	var solutions []flotilla.Assignment
	s, err := NewSolver(WithGraph(g), WithHandler(func(as flotilla.Assignment) { solutions = append(solutions, as) }))
	require.NoError(t, err)

	count, err := s.Solve(context.TODO())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []flotilla.Assignment{{"a": "2", "b": "1"}}, solutions)

	// the search only unassigns variables it assigned itself
	assert.True(t, a.IsAssigned())
	assert.False(t, b.IsAssigned())
}

func TestSolveWithoutGraph(t *testing.T) {
	s, err := NewSolver()
	require.NoError(t, err)

	_, err = s.Solve(context.TODO())
	assert.Equal(t, ErrNoGraph, err)
}

func TestUndoLogEmptyAfterSearch(t *testing.T) {
	a := variable("a", "1", "2", "3")
	b := variable("b", "1", "2", "3")
	g := graph(t, []*flotilla.Variable{a, b},
		table(t, "lt", []*flotilla.Variable{a, b},
			[]flotilla.Value{"1", "2"}, []flotilla.Value{"1", "3"}, []flotilla.Value{"2", "3"}))

	log := newUndoLog()
	srch := &search{graph: g, log: log, tracer: flotilla.DefaultTracer{}}
	require.NoError(t, srch.run(g.Variables()))

	assert.Equal(t, 3, srch.count)
	assert.True(t, log.empty())
}
