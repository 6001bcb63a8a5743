package input

import (
	"context"

	"github.com/flotilla-solver/flotilla/pkg/flotilla"
)

// GraphSource produces the constraint graph a solver works on. It is
// the seam between a problem-specific builder (a puzzle front-end, a
// generator) and the generic engine.
type GraphSource interface {
	GetGraph(ctx context.Context) (*flotilla.ConstraintGraph, error)
}

var _ GraphSource = &StaticGraphSource{}

// StaticGraphSource wraps an already constructed graph.
type StaticGraphSource struct {
	graph *flotilla.ConstraintGraph
}

func NewStaticGraphSource(graph *flotilla.ConstraintGraph) *StaticGraphSource {
	return &StaticGraphSource{graph: graph}
}

func (s *StaticGraphSource) GetGraph(_ context.Context) (*flotilla.ConstraintGraph, error) {
	return s.graph, nil
}
