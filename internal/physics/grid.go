package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Grid buckets item indices by position for broad-phase collision checks.
// The cell size must be at least the largest collision distance so a 3x3
// neighbourhood lookup finds every candidate. Lookups wrap at the edges to
// match objects that wrap around the canvas.
type Grid struct {
	cell  float64
	cols  int
	rows  int
	cells [][]int
}

// NewGrid creates a grid covering width x height.
func NewGrid(width, height, cellSize float64) *Grid {
	g := &Grid{}
	g.Reset(width, height, cellSize)
	return g
}

// Reset resizes the grid and removes every item, keeping cell storage where possible.
func (g *Grid) Reset(width, height, cellSize float64) {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := max(int(math.Ceil(width/cellSize)), 1)
	rows := max(int(math.Ceil(height/cellSize)), 1)

	g.cell = cellSize
	if cols != g.cols || rows != g.rows {
		g.cols, g.rows = cols, rows
		g.cells = make([][]int, cols*rows)
		return
	}
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert records index at position p.
func (g *Grid) Insert(p r2.Vec, index int) {
	col, row := g.cellOf(p)
	i := row*g.cols + col
	g.cells[i] = append(g.cells[i], index)
}

// Near calls fn for every index in the 3x3 cells around p until fn returns true.
// On grids narrower than three cells an index may be visited more than once.
func (g *Grid) Near(p r2.Vec, fn func(index int) bool) {
	col, row := g.cellOf(p)
	for dr := -1; dr <= 1; dr++ {
		r := (row + dr + g.rows) % g.rows
		for dc := -1; dc <= 1; dc++ {
			c := (col + dc + g.cols) % g.cols
			for _, idx := range g.cells[r*g.cols+c] {
				if fn(idx) {
					return
				}
			}
		}
	}
}

// cellOf clamps p into the grid; off-canvas objects land in the edge cells.
func (g *Grid) cellOf(p r2.Vec) (col, row int) {
	col = min(max(int(math.Floor(p.X/g.cell)), 0), g.cols-1)
	row = min(max(int(math.Floor(p.Y/g.cell)), 0), g.rows-1)
	return col, row
}
