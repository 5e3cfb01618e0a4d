package grid

import "fmt"

// Reader is the read-only view of a grid.
type Reader[T comparable] interface {
	Rows() int
	Cols() int
	InBounds(p Position) bool
	Get(p Position) T
	Neighbor(p Position, d Direction) (Position, bool)
}

// Grid is a rectangular table of cells stored in row-major order.
type Grid[T comparable] struct {
	rows  int
	cols  int
	cells []T
}

var _ Reader[rune] = (*Grid[rune])(nil)

// New copies rows into a grid. All rows must have the same non-zero count
// of cells.
func New[T comparable](rows [][]T) (*Grid[T], error) {
	if len(rows) == 0 {
		return nil, &MalformedInputError{Row: 0, Col: -1, Reason: "no rows"}
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, &MalformedInputError{Row: 0, Col: -1, Reason: "empty row"}
	}

	g := &Grid[T]{rows: len(rows), cols: cols, cells: make([]T, 0, len(rows)*cols)}
	for r, row := range rows {
		if len(row) != cols {
			return nil, &MalformedInputError{
				Row:    r,
				Col:    -1,
				Reason: fmt.Sprintf("row has %d cells, expected %d", len(row), cols),
			}
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

func (g *Grid[T]) Rows() int { return g.rows }
func (g *Grid[T]) Cols() int { return g.cols }

// InBounds reports whether p lies inside the grid.
func (g *Grid[T]) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// Get returns the cell at p.
func (g *Grid[T]) Get(p Position) T {
	return g.cells[g.index(p)]
}

// Set overwrites the cell at p.
func (g *Grid[T]) Set(p Position, v T) {
	g.cells[g.index(p)] = v
}

// Neighbor returns the position one step from p along d, or false if that
// step leaves the grid.
func (g *Grid[T]) Neighbor(p Position, d Direction) (Position, bool) {
	next := p.Step(d)
	if !g.InBounds(next) {
		return Position{}, false
	}
	return next, true
}

// Each calls fn for every cell in row-major order.
func (g *Grid[T]) Each(fn func(p Position, v T)) {
	for i, v := range g.cells {
		fn(Position{Row: i / g.cols, Col: i % g.cols}, v)
	}
}

// Find returns the positions of all cells equal to v in row-major order.
func (g *Grid[T]) Find(v T) []Position {
	var found []Position
	g.Each(func(p Position, cell T) {
		if cell == v {
			found = append(found, p)
		}
	})
	return found
}

// Count returns the number of cells equal to v.
func (g *Grid[T]) Count(v T) int {
	n := 0
	for _, cell := range g.cells {
		if cell == v {
			n++
		}
	}
	return n
}

// Row returns a copy of row r.
func (g *Grid[T]) Row(r int) []T {
	if r < 0 || r >= g.rows {
		panic(fmt.Sprintf("grid: row %d outside %d rows", r, g.rows))
	}
	out := make([]T, g.cols)
	copy(out, g.cells[r*g.cols:(r+1)*g.cols])
	return out
}

func (g *Grid[T]) index(p Position) int {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("grid: position %v outside %dx%d grid", p, g.rows, g.cols))
	}
	return p.Row*g.cols + p.Col
}
