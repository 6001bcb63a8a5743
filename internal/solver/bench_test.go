package solver

import (
	"context"
	"fmt"
	"testing"

	"github.com/flotilla-solver/flotilla/pkg/flotilla"
	"github.com/flotilla-solver/flotilla/pkg/flotilla/constraint"
)

// chainGraph builds n variables over {1,2,3} with a not-equal table
// constraint between each adjacent pair.
func chainGraph(n int) (*flotilla.ConstraintGraph, error) {
	domain := []flotilla.Value{"1", "2", "3"}
	var neqTuples [][]flotilla.Value
	for _, a := range domain {
		for _, b := range domain {
			if a != b {
				neqTuples = append(neqTuples, []flotilla.Value{a, b})
			}
		}
	}

	variables := make([]*flotilla.Variable, 0, n)
	for i := 0; i < n; i++ {
		variables = append(variables, flotilla.NewVariable(flotilla.Identifier(fmt.Sprintf("v%d", i)), domain...))
	}
	constraints := make([]flotilla.Constraint, 0, n-1)
	for i := 0; i+1 < n; i++ {
		c, err := constraint.Table(
			flotilla.Identifier(fmt.Sprintf("neq_%d_%d", i, i+1)),
			[]*flotilla.Variable{variables[i], variables[i+1]},
			neqTuples)
		if err != nil {
			return nil, err
		}
		constraints = append(constraints, c)
	}
	return flotilla.NewConstraintGraph("chain", variables, constraints)
}

func BenchmarkSolveChain(b *testing.B) {
	g, err := chainGraph(8)
	if err != nil {
		b.Fatal(err)
	}
	// 3 * 2^7 solutions for an 8 variable chain
	const want = 384

	s, err := NewSolver(WithGraph(g))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		count, err := s.Solve(context.TODO())
		if err != nil {
			b.Fatal(err)
		}
		if count != want {
			b.Fatalf("expected %d solutions, got %d", want, count)
		}
	}
}
