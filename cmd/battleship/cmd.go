package battleship

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flotilla-solver/flotilla/pkg/flotilla"
	"github.com/flotilla-solver/flotilla/pkg/flotilla/input"
	"github.com/flotilla-solver/flotilla/pkg/flotilla/solver"
)

func NewBattleshipCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "battleship <input> <output>",
		Short: "Solves a battleship solitaire puzzle",
		Long: `Solves a battleship solitaire puzzle. The input file holds one
line of row tallies, one line of column tallies, one line with the
four fleet counts (submarines, destroyers, cruisers, battleships),
and then the grid: '0' for an open cell, otherwise a preset symbol
out of . S < > ^ v M. The solved grid is written to the output file.`,
		Args: cobra.ExactArgs(2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(args[0], args[1])
		},
	}
}

func solve(inputPath, outputPath string) error {
	logger := logrus.New()

	puzzleFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("error opening puzzle file (%s): %w", inputPath, err)
	}
	defer puzzleFile.Close()

	puzzle, err := NewPuzzle(puzzleFile)
	if err != nil {
		return fmt.Errorf("error parsing puzzle file (%s): %w", inputPath, err)
	}

	ctx := context.Background()
	graph, err := NewBoard(puzzle).GetGraph(ctx)
	if err != nil {
		return fmt.Errorf("error building constraint graph: %w", err)
	}
	for _, free := range graph.FreeVariables() {
		logger.WithField("variable", free.Identifier()).Warn("variable participates in no constraint")
	}

	// The engine enumerates every board consistent with the
	// adjacency and tally constraints; the fleet census filters
	// out boards whose ship census busts the class budgets.
	var result Grid
	valid := 0
	handler := func(assignment flotilla.Assignment) {
		grid := AssignmentGrid(assignment, puzzle.Size())
		fleet, err := CountFleet(grid)
		if err != nil {
			logger.WithError(err).Debug("candidate rejected: malformed fleet")
			return
		}
		if fleet.Exceeds(puzzle.FleetBudget()) {
			logger.WithField("fleet", fmt.Sprintf("%+v", fleet)).Debug("candidate rejected: fleet exceeds budget")
			return
		}
		result = grid
		valid++
	}

	graphSolver := solver.NewGraphSolver(input.NewStaticGraphSource(graph))
	solution, err := graphSolver.Solve(ctx, solver.WithSolutionHandler(handler))
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"enumerated": solution.Count(),
		"valid":      valid,
	}).Info("search complete")

	if result == nil {
		return fmt.Errorf("no valid fleet placement found for puzzle (%s)", inputPath)
	}
	if err := os.WriteFile(outputPath, []byte(result.String()), 0o644); err != nil {
		return fmt.Errorf("error writing solution file (%s): %w", outputPath, err)
	}
	return nil
}
