package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/flotilla-solver/flotilla/pkg/flotilla"
)

var ErrNoGraph = errors.New("no constraint graph provided")

type Solver interface {
	// Solve exhaustively enumerates the consistent full
	// assignments of the graph, invoking the configured handler
	// once per solution, and returns how many were found.
	Solve(context.Context) (int, error)
}

type solver struct {
	graph   *flotilla.ConstraintGraph
	handler flotilla.SolutionHandler
	tracer  flotilla.Tracer
}

// Solve runs depth-first backtracking search with propagation over
// the graph's unassigned variables, in the graph's fixed iteration
// order. Search always runs to exhaustive completion; the context
// argument exists for interface symmetry only. After the root call
// returns the undo log must be fully consumed; a leftover batch
// means the engine's own invariants were violated.
func (s *solver) Solve(_ context.Context) (int, error) {
	if s.graph == nil {
		return 0, ErrNoGraph
	}

	var unassigned []*flotilla.Variable
	for _, v := range s.graph.Variables() {
		if !v.IsAssigned() {
			unassigned = append(unassigned, v)
		}
	}

	log := newUndoLog()
	srch := &search{
		graph:   s.graph,
		log:     log,
		tracer:  s.tracer,
		handler: s.handler,
	}
	if err := srch.run(unassigned); err != nil {
		return srch.count, err
	}
	if !log.empty() {
		return srch.count, fmt.Errorf("internal solver failure: %d undo batches left after search", log.len())
	}
	return srch.count, nil
}

func NewSolver(options ...Option) (Solver, error) {
	s := solver{}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *solver) error

func WithGraph(graph *flotilla.ConstraintGraph) Option {
	return func(s *solver) error {
		s.graph = graph
		return nil
	}
}

func WithHandler(handler flotilla.SolutionHandler) Option {
	return func(s *solver) error {
		s.handler = handler
		return nil
	}
}

func WithTracer(t flotilla.Tracer) Option {
	return func(s *solver) error {
		s.tracer = t
		return nil
	}
}

var defaults = []Option{
	func(s *solver) error {
		if s.tracer == nil {
			s.tracer = flotilla.DefaultTracer{}
		}
		return nil
	},
}
