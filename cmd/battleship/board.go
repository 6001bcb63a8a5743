package battleship

import (
	"context"
	"fmt"

	"github.com/flotilla-solver/flotilla/pkg/flotilla"
	"github.com/flotilla-solver/flotilla/pkg/flotilla/constraint"
	"github.com/flotilla-solver/flotilla/pkg/flotilla/input"
)

// Cell symbols. A ship occupies 1 to 4 cells in a straight line:
// a submarine is a lone S, longer ships run from < to > or from
// ^ to v with M segments in between. Every other cell is water.
const (
	Water     = flotilla.Value(".")
	Submarine = flotilla.Value("S")
	LeftEnd   = flotilla.Value("<")
	RightEnd  = flotilla.Value(">")
	TopEnd    = flotilla.Value("^")
	BottomEnd = flotilla.Value("v")
	Middle    = flotilla.Value("M")
)

var shipSymbols = []flotilla.Value{Submarine, LeftEnd, RightEnd, TopEnd, BottomEnd, Middle}
var allSymbols = []flotilla.Value{Water, Submarine, LeftEnd, RightEnd, TopEnd, BottomEnd, Middle}

func isShip(s flotilla.Value) bool {
	return s != Water
}

var _ input.GraphSource = &Board{}

// Board builds the constraint graph of a puzzle: one variable per
// cell, pairwise adjacency table constraints between every cell and
// its forward neighbors, and a cardinality constraint pinning the
// ship cell tally of every row and column.
type Board struct {
	puzzle *Puzzle
}

func NewBoard(puzzle *Puzzle) *Board {
	return &Board{puzzle: puzzle}
}

// CellID returns the variable identifier of the cell at (row, col).
func CellID(row, col int) flotilla.Identifier {
	return flotilla.Identifier(fmt.Sprintf("cell_%d_%d", row, col))
}

// Forward neighbor offsets; together with each neighbor's own
// forward set they cover all eight adjacencies exactly once.
var forward = []struct{ dr, dc int }{
	{0, 1},
	{1, -1},
	{1, 0},
	{1, 1},
}

func (b *Board) GetGraph(_ context.Context) (*flotilla.ConstraintGraph, error) {
	size := b.puzzle.Size()

	cells := make(map[flotilla.Identifier]*flotilla.Variable, size*size)
	inorder := make([]*flotilla.Variable, 0, size*size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			var domain []flotilla.Value
			if preset := b.puzzle.Cell(row, col); preset != '0' {
				domain = []flotilla.Value{flotilla.Value(preset)}
			} else {
				domain = b.cellDomain(row, col)
			}
			v := flotilla.NewVariable(CellID(row, col), domain...)
			cells[v.Identifier()] = v
			inorder = append(inorder, v)
		}
	}

	var constraints []flotilla.Constraint
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			for _, d := range forward {
				nrow, ncol := row+d.dr, col+d.dc
				if nrow < 0 || nrow >= size || ncol < 0 || ncol >= size {
					continue
				}
				id := flotilla.Identifier(fmt.Sprintf("adjacent_%d_%d_to_%d_%d", row, col, nrow, ncol))
				scope := []*flotilla.Variable{cells[CellID(row, col)], cells[CellID(nrow, ncol)]}
				table, err := constraint.Table(id, scope, b.pairTuples(row, col, d.dr, d.dc))
				if err != nil {
					return nil, err
				}
				constraints = append(constraints, table)
			}
		}
	}

	for row := 0; row < size; row++ {
		scope := make([]*flotilla.Variable, size)
		for col := 0; col < size; col++ {
			scope[col] = cells[CellID(row, col)]
		}
		tally := b.puzzle.RowTally(row)
		id := flotilla.Identifier(fmt.Sprintf("row_%d", row))
		constraints = append(constraints, constraint.Cardinality(id, scope, shipSymbols, tally, tally))
	}
	for col := 0; col < size; col++ {
		scope := make([]*flotilla.Variable, size)
		for row := 0; row < size; row++ {
			scope[row] = cells[CellID(row, col)]
		}
		tally := b.puzzle.ColTally(col)
		id := flotilla.Identifier(fmt.Sprintf("column_%d", col))
		constraints = append(constraints, constraint.Cardinality(id, scope, shipSymbols, tally, tally))
	}

	return flotilla.NewConstraintGraph("battleship", inorder, constraints)
}

// cellDomain drops the symbols whose mandatory continuation would
// point off the grid: a ship end on the wrong border, or a middle
// segment with no room for either orientation.
func (b *Board) cellDomain(row, col int) []flotilla.Value {
	size := b.puzzle.Size()
	domain := make([]flotilla.Value, 0, len(allSymbols))
	for _, s := range allSymbols {
		switch s {
		case LeftEnd:
			if col == size-1 {
				continue
			}
		case RightEnd:
			if col == 0 {
				continue
			}
		case TopEnd:
			if row == size-1 {
				continue
			}
		case BottomEnd:
			if row == 0 {
				continue
			}
		case Middle:
			if !b.horizontalRoom(col) && !b.verticalRoom(row) {
				continue
			}
		}
		domain = append(domain, s)
	}
	return domain
}

func (b *Board) horizontalRoom(col int) bool {
	return col > 0 && col < b.puzzle.Size()-1
}

func (b *Board) verticalRoom(row int) bool {
	return row > 0 && row < b.puzzle.Size()-1
}

// pairTuples enumerates the symbol pairs that may coexist at
// (row, col) and its neighbor (row+dr, col+dc).
func (b *Board) pairTuples(row, col, dr, dc int) [][]flotilla.Value {
	var tuples [][]flotilla.Value
	for _, a := range allSymbols {
		for _, n := range allSymbols {
			if b.compatible(a, n, row, col, dr, dc) {
				tuples = append(tuples, []flotilla.Value{a, n})
			}
		}
	}
	return tuples
}

// compatible reports whether symbol a at (row, col) tolerates symbol
// n at the orthogonal or diagonal neighbor offset (dr, dc). Two ship
// cells may never touch diagonally; orthogonally each symbol's
// continuation rule must accept the other.
func (b *Board) compatible(a, n flotilla.Value, row, col, dr, dc int) bool {
	if dr != 0 && dc != 0 {
		return !isShip(a) || !isShip(n)
	}
	return b.allows(a, n, row, col, dr, dc) &&
		b.allows(n, a, row+dr, col+dc, -dr, -dc)
}

// allows reports whether symbol s at (row, col) accepts symbol n at
// its orthogonal neighbor in direction (dr, dc). Ship ends demand
// their continuation ({>, M} to the right of <, and so on) and water
// everywhere else; a middle segment accepts the union over whichever
// orientations the cell's position leaves possible.
func (b *Board) allows(s, n flotilla.Value, row, col, dr, dc int) bool {
	switch s {
	case Water:
		return true
	case Submarine:
		return n == Water
	case LeftEnd:
		if dc == 1 {
			return n == RightEnd || n == Middle
		}
		return n == Water
	case RightEnd:
		if dc == -1 {
			return n == LeftEnd || n == Middle
		}
		return n == Water
	case TopEnd:
		if dr == 1 {
			return n == BottomEnd || n == Middle
		}
		return n == Water
	case BottomEnd:
		if dr == -1 {
			return n == TopEnd || n == Middle
		}
		return n == Water
	case Middle:
		if b.horizontalRoom(col) && b.middleAllows(n, 0, dc) {
			return true
		}
		if b.verticalRoom(row) && b.middleAllows(n, dr, 0) {
			return true
		}
		return false
	}
	return false
}

// middleAllows is the continuation rule of a middle segment whose
// run axis is fixed: ends or further middles along the axis, water
// across it.
func (b *Board) middleAllows(n flotilla.Value, dr, dc int) bool {
	switch {
	case dc == 1:
		return n == RightEnd || n == Middle
	case dc == -1:
		return n == LeftEnd || n == Middle
	case dr == 1:
		return n == BottomEnd || n == Middle
	case dr == -1:
		return n == TopEnd || n == Middle
	}
	return n == Water
}
