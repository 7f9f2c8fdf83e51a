package main

import "math"

// SpatialCellSize is sized to a few food pellets per cell at default density
const SpatialCellSize = 100.0

// EntityRef identifies an entity in the grid
type EntityRef struct {
	Kind EntityKind
	Idx  int // index into the corresponding population slice
}

// SpatialGrid is a uniform grid for broad-phase proximity queries
type SpatialGrid struct {
	cellSize   float64
	cols, rows int
	cells      [][]EntityRef
}

// NewSpatialGrid creates a grid covering [0,width]×[0,height]
func NewSpatialGrid(width, height float64) *SpatialGrid {
	cols := int(math.Ceil(width/SpatialCellSize)) + 1
	rows := int(math.Ceil(height/SpatialCellSize)) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &SpatialGrid{
		cellSize: SpatialCellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([][]EntityRef, cols*rows),
	}
}

// Clear resets all cells (keeps allocated capacity)
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// slot maps a coordinate to a grid index in [0, n)
func (g *SpatialGrid) slot(v float64, n int) int {
	if v != v || v < 0 {
		return 0
	}
	if v >= float64(n)*g.cellSize {
		return n - 1
	}
	return int(v / g.cellSize)
}

func (g *SpatialGrid) clampCol(v float64) int { return g.slot(v, g.cols) }
func (g *SpatialGrid) clampRow(v float64) int { return g.slot(v, g.rows) }

// Insert adds an entity reference at the given position
func (g *SpatialGrid) Insert(x, y float64, ref EntityRef) {
	idx := g.clampRow(y)*g.cols + g.clampCol(x)
	g.cells[idx] = append(g.cells[idx], ref)
}

// QueryBuf appends refs in cells overlapping the bounding box of the circle
// to buf and returns the extended slice, avoiding per-call allocation
func (g *SpatialGrid) QueryBuf(x, y, radius float64, buf []EntityRef) []EntityRef {
	minCX, maxCX := g.clampCol(x-radius), g.clampCol(x+radius)
	minCY, maxCY := g.clampRow(y-radius), g.clampRow(y+radius)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			buf = append(buf, g.cells[cy*g.cols+cx]...)
		}
	}
	return buf
}

// Query returns all entity refs in cells overlapping the circle's bounding box
func (g *SpatialGrid) Query(x, y, radius float64) []EntityRef {
	return g.QueryBuf(x, y, radius, nil)
}
