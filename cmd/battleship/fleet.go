package battleship

import (
	"fmt"
	"strings"

	"github.com/flotilla-solver/flotilla/pkg/flotilla"
)

// Fleet tallies ships by class: submarines are 1 cell, destroyers 2,
// cruisers 3, battleships 4.
type Fleet struct {
	Submarines  int
	Destroyers  int
	Cruisers    int
	Battleships int
}

// Exceeds reports whether any class count overshoots the budget. The
// row and column tallies already pin the total number of ship cells,
// so only overshoot needs rejecting.
func (f Fleet) Exceeds(budget Fleet) bool {
	return f.Submarines > budget.Submarines ||
		f.Destroyers > budget.Destroyers ||
		f.Cruisers > budget.Cruisers ||
		f.Battleships > budget.Battleships
}

// Grid is a solved board.
type Grid [][]flotilla.Value

// AssignmentGrid lays a solution assignment out as a grid.
func AssignmentGrid(assignment flotilla.Assignment, size int) Grid {
	grid := make(Grid, size)
	for row := 0; row < size; row++ {
		grid[row] = make([]flotilla.Value, size)
		for col := 0; col < size; col++ {
			grid[row][col] = assignment[CellID(row, col)]
		}
	}
	return grid
}

func (g Grid) String() string {
	var sb strings.Builder
	for _, row := range g {
		for _, cell := range row {
			sb.WriteString(string(cell))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// CountFleet walks every ship on a solved board and tallies it by
// length. It fails on malformed ships: a run not closed by its end
// symbol, a run longer than four cells, or a ship fragment that
// belongs to no run.
func CountFleet(grid Grid) (Fleet, error) {
	size := len(grid)
	visited := make([][]bool, size)
	for i := range visited {
		visited[i] = make([]bool, size)
	}

	var fleet Fleet
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if visited[row][col] {
				continue
			}
			switch grid[row][col] {
			case Water:
				visited[row][col] = true
			case Submarine:
				visited[row][col] = true
				fleet.Submarines++
			case LeftEnd:
				length, err := walkRun(grid, visited, row, col, 0, 1, RightEnd)
				if err != nil {
					return Fleet{}, err
				}
				fleet.add(length)
			case TopEnd:
				length, err := walkRun(grid, visited, row, col, 1, 0, BottomEnd)
				if err != nil {
					return Fleet{}, err
				}
				fleet.add(length)
			}
		}
	}

	// Anything still unvisited is a ship fragment with no start.
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if !visited[row][col] {
				return Fleet{}, fmt.Errorf("dangling ship fragment %q at row %d column %d", grid[row][col], row, col)
			}
		}
	}
	return fleet, nil
}

func (f *Fleet) add(length int) {
	switch length {
	case 2:
		f.Destroyers++
	case 3:
		f.Cruisers++
	case 4:
		f.Battleships++
	}
}

// walkRun follows a ship from its start cell along (dr, dc) through
// middle segments to the closing end symbol, marking cells visited,
// and returns the run length.
func walkRun(grid Grid, visited [][]bool, row, col, dr, dc int, end flotilla.Value) (int, error) {
	size := len(grid)
	visited[row][col] = true
	length := 1
	for {
		row, col = row+dr, col+dc
		if row >= size || col >= size {
			return 0, fmt.Errorf("ship starting at row %d column %d runs off the grid", row-length*dr, col-length*dc)
		}
		length++
		if length > 4 {
			return 0, fmt.Errorf("ship ending at row %d column %d is longer than four cells", row, col)
		}
		visited[row][col] = true
		switch grid[row][col] {
		case end:
			return length, nil
		case Middle:
			// keep walking
		default:
			return 0, fmt.Errorf("ship run interrupted by %q at row %d column %d", grid[row][col], row, col)
		}
	}
}
