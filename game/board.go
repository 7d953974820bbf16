package game

import (
	"fmt"
	"strings"
)

// Coord is a (row, column) position on the board.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// orthogonal neighbour offsets: up, down, left, right
var adjacency = [4]Coord{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Board is a square grid of cells, stored row-major.
type Board struct {
	Size  int
	Cells []Cell
}

// NewBoard creates an empty size x size board.
func NewBoard(size int) *Board {
	return &Board{
		Size:  size,
		Cells: make([]Cell, size*size), // zero value is Empty
	}
}

func (b *Board) idx(r, c int) int { return r*b.Size + c }

// InBounds checks if coordinates are within the board.
func (b *Board) InBounds(r, c int) bool {
	return r >= 0 && r < b.Size && c >= 0 && c < b.Size
}

// Get returns the cell at (r, c).
func (b *Board) Get(r, c int) (Cell, error) {
	if !b.InBounds(r, c) {
		return Cell{}, fmt.Errorf("get %s: %w", Coord{r, c}, ErrOutOfRange)
	}
	return b.Cells[b.idx(r, c)], nil
}

// Set writes a single cell.
func (b *Board) Set(r, c int, cell Cell) error {
	if !b.InBounds(r, c) {
		return fmt.Errorf("set %s: %w", Coord{r, c}, ErrOutOfRange)
	}
	b.Cells[b.idx(r, c)] = cell
	return nil
}

// at is the unchecked accessor used by scans that already iterate in bounds.
func (b *Board) at(r, c int) Cell { return b.Cells[b.idx(r, c)] }

// put writes an in-bounds cell; callers have already checked the coordinate.
func (b *Board) put(r, c int, cell Cell) { b.Cells[b.idx(r, c)] = cell }

// Neighbors returns the in-bounds orthogonal neighbours of (r, c).
func (b *Board) Neighbors(r, c int) []Coord {
	res := make([]Coord, 0, len(adjacency))
	for _, d := range adjacency {
		nr, nc := r+d.Row, c+d.Col
		if b.InBounds(nr, nc) {
			res = append(res, Coord{nr, nc})
		}
	}
	return res
}

// OpenNeighbors counts empty orthogonal neighbours of (r, c).
func (b *Board) OpenNeighbors(r, c int) int {
	open := 0
	for _, n := range b.Neighbors(r, c) {
		if b.at(n.Row, n.Col).IsEmpty() {
			open++
		}
	}
	return open
}

// Count returns how many cells equal the given cell.
func (b *Board) Count(cell Cell) int {
	n := 0
	for _, c := range b.Cells {
		if c == cell {
			n++
		}
	}
	return n
}

func (b *Board) Copy() *Board {
	cells := make([]Cell, len(b.Cells))
	copy(cells, b.Cells)
	return &Board{Size: b.Size, Cells: cells}
}

// Rows renders the board as one string of symbols per row.
func (b *Board) Rows() []string {
	rows := make([]string, b.Size)
	var sb strings.Builder
	for r := 0; r < b.Size; r++ {
		sb.Reset()
		for c := 0; c < b.Size; c++ {
			sb.WriteRune(b.at(r, c).Symbol())
		}
		rows[r] = sb.String()
	}
	return rows
}

// ParseRows rebuilds a board from the output of Rows.
func ParseRows(rows []string) (*Board, error) {
	size := len(rows)
	b := NewBoard(size)
	for r, row := range rows {
		symbols := []rune(row)
		if len(symbols) != size {
			return nil, fmt.Errorf("row %d has %d cells, want %d", r, len(symbols), size)
		}
		for c, sym := range symbols {
			cell, err := ParseCell(sym)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", r, c, err)
			}
			b.Cells[b.idx(r, c)] = cell
		}
	}
	return b, nil
}

func (b *Board) String() string {
	return strings.Join(b.Rows(), "\n")
}
