package seamcarve

import "golang.org/x/exp/constraints"

// Grid is a row-major matrix backed by a single contiguous buffer.
// It is used for the per-iteration energy and cost tables.
type Grid[T constraints.Unsigned] struct {
	Width  int
	Height int
	table  []T
}

// NewGrid allocates a zeroed width x height matrix.
func NewGrid[T constraints.Unsigned](width, height int) *Grid[T] {
	return &Grid[T]{
		Width:  width,
		Height: height,
		table:  make([]T, width*height),
	}
}

// At returns the value stored at column x, row y.
func (g *Grid[T]) At(x, y int) T {
	return g.table[x+y*g.Width]
}

// Set stores the value at column x, row y.
func (g *Grid[T]) Set(x, y int, v T) {
	g.table[x+y*g.Width] = v
}

// Row returns the y-th row as a slice sharing the grid's buffer.
func (g *Grid[T]) Row(y int) []T {
	return g.table[y*g.Width : (y+1)*g.Width]
}
