package solver

import (
	"context"

	"github.com/flotilla-solver/flotilla/internal/solver"
	"github.com/flotilla-solver/flotilla/pkg/flotilla"
	"github.com/flotilla-solver/flotilla/pkg/flotilla/input"
)

// Solution is returned by the GraphSolver when search ran to
// completion. A successful run may still have found no solutions.
type Solution struct {
	count       int
	assignments []flotilla.Assignment
}

// Count returns the number of full consistent assignments the
// search enumerated.
func (s *Solution) Count() int {
	return s.count
}

// Assignments returns every enumerated assignment. Note: this is
// only populated if the CollectAssignments option is passed to the
// Solve call that produced the solution.
func (s *Solution) Assignments() []flotilla.Assignment {
	return s.assignments
}

type solutionOptions struct {
	collectAssignments bool
	handler            flotilla.SolutionHandler
	tracer             flotilla.Tracer
}

func (s *solutionOptions) apply(options ...Option) *solutionOptions {
	for _, applyOption := range options {
		applyOption(s)
	}
	return s
}

func defaultSolutionOptions() *solutionOptions {
	return &solutionOptions{
		collectAssignments: false,
	}
}

type Option func(solutionOptions *solutionOptions)

// CollectAssignments is a Solve option that instructs the solver to
// retain every enumerated assignment on the Solution it produces.
func CollectAssignments() Option {
	return func(solutionOptions *solutionOptions) {
		solutionOptions.collectAssignments = true
	}
}

// WithSolutionHandler is a Solve option installing a callback
// invoked once per enumerated solution.
func WithSolutionHandler(handler flotilla.SolutionHandler) Option {
	return func(solutionOptions *solutionOptions) {
		solutionOptions.handler = handler
	}
}

// WithTracer is a Solve option installing a tracer notified on every
// wipeout-driven backtrack.
func WithTracer(tracer flotilla.Tracer) Option {
	return func(solutionOptions *solutionOptions) {
		solutionOptions.tracer = tracer
	}
}

// GraphSolver takes a graph source and exhaustively enumerates the
// solutions of the graph it produces.
type GraphSolver struct {
	graphSource input.GraphSource
}

func NewGraphSolver(graphSource input.GraphSource) *GraphSolver {
	return &GraphSolver{
		graphSource: graphSource,
	}
}

func (d GraphSolver) Solve(ctx context.Context, options ...Option) (*Solution, error) {
	solutionOpts := defaultSolutionOptions().apply(options...)

	graph, err := d.graphSource.GetGraph(ctx)
	if err != nil {
		return nil, err
	}

	solution := &Solution{}
	handler := func(assignment flotilla.Assignment) {
		if solutionOpts.collectAssignments {
			solution.assignments = append(solution.assignments, assignment)
		}
		if solutionOpts.handler != nil {
			solutionOpts.handler(assignment)
		}
	}

	engineOpts := []solver.Option{
		solver.WithGraph(graph),
		solver.WithHandler(handler),
	}
	if solutionOpts.tracer != nil {
		engineOpts = append(engineOpts, solver.WithTracer(solutionOpts.tracer))
	}
	engine, err := solver.NewSolver(engineOpts...)
	if err != nil {
		return nil, err
	}

	count, err := engine.Solve(ctx)
	if err != nil {
		return nil, err
	}
	solution.count = count
	return solution, nil
}
