package battleship

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Puzzle holds a Battleship solitaire instance: the per-row and
// per-column ship cell tallies, the fleet budget, and the starting
// grid. A '0' grid cell is open; any other cell presets the symbol
// at that position.
type Puzzle struct {
	rowTallies []int
	colTallies []int
	fleet      Fleet
	grid       []string
}

// NewPuzzle parses a puzzle from its textual form: one line of row
// tallies, one line of column tallies, one line with the four fleet
// counts (submarines, destroyers, cruisers, battleships), then the
// grid rows.
func NewPuzzle(r io.Reader) (*Puzzle, error) {
	scanner := bufio.NewScanner(r)

	rowTallies, err := readDigitLine(scanner, "row tallies")
	if err != nil {
		return nil, err
	}
	colTallies, err := readDigitLine(scanner, "column tallies")
	if err != nil {
		return nil, err
	}
	fleetCounts, err := readDigitLine(scanner, "fleet counts")
	if err != nil {
		return nil, err
	}
	if len(fleetCounts) != 4 {
		return nil, fmt.Errorf("invalid fleet counts: expected 4 ship classes, got %d", len(fleetCounts))
	}

	var grid []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		grid = append(grid, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading puzzle data: %w", err)
	}

	size := len(rowTallies)
	if len(colTallies) != size {
		return nil, fmt.Errorf("invalid puzzle: %d row tallies but %d column tallies", size, len(colTallies))
	}
	if len(grid) != size {
		return nil, fmt.Errorf("invalid puzzle: %d tallies but %d grid rows", size, len(grid))
	}
	for i, row := range grid {
		if len(row) != size {
			return nil, fmt.Errorf("invalid puzzle: grid row %d has %d cells, expected %d", i, len(row), size)
		}
		for j := 0; j < len(row); j++ {
			if !strings.ContainsRune("0.S<>^vM", rune(row[j])) {
				return nil, fmt.Errorf("invalid puzzle: unknown cell %q at row %d column %d", row[j], i, j)
			}
		}
	}

	return &Puzzle{
		rowTallies: rowTallies,
		colTallies: colTallies,
		fleet: Fleet{
			Submarines:  fleetCounts[0],
			Destroyers:  fleetCounts[1],
			Cruisers:    fleetCounts[2],
			Battleships: fleetCounts[3],
		},
		grid: grid,
	}, nil
}

func readDigitLine(scanner *bufio.Scanner, what string) ([]int, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		digits := make([]int, len(line))
		for i := 0; i < len(line); i++ {
			if line[i] < '0' || line[i] > '9' {
				return nil, fmt.Errorf("invalid %s: %q is not a digit", what, line[i])
			}
			digits[i] = int(line[i] - '0')
		}
		return digits, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading puzzle data: %w", err)
	}
	return nil, errors.New("invalid puzzle: missing " + what + " line")
}

// Size returns the grid's side length.
func (p *Puzzle) Size() int {
	return len(p.rowTallies)
}

func (p *Puzzle) RowTally(row int) int {
	return p.rowTallies[row]
}

func (p *Puzzle) ColTally(col int) int {
	return p.colTallies[col]
}

// FleetBudget returns the number of ships of each class the solution
// must place.
func (p *Puzzle) FleetBudget() Fleet {
	return p.fleet
}

// Cell returns the preset at (row, col), or '0' if the cell is open.
func (p *Puzzle) Cell(row, col int) byte {
	return p.grid[row][col]
}
