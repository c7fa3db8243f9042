package main

// Grid cell edge. Two block widths keeps most bodies inside a single cell.
const SpatialCellSize = BlockSize * 2

// SpatialGrid is a uniform grid for broad-phase overlap queries, sized to
// one level's pixel bounds and rebuilt every physics step.
type SpatialGrid struct {
	cols, rows int
	cells      [][]*Body
}

// NewSpatialGrid creates a grid covering a w-by-h pixel world
func NewSpatialGrid(w, h float64) *SpatialGrid {
	cols := int(w/SpatialCellSize) + 1
	rows := int(h/SpatialCellSize) + 1
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &SpatialGrid{
		cols:  cols,
		rows:  rows,
		cells: make([][]*Body, cols*rows),
	}
}

// Clear resets all cells (keeps allocated capacity)
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *SpatialGrid) clampCol(c int) int {
	if c < 0 {
		return 0
	}
	if c >= g.cols {
		return g.cols - 1
	}
	return c
}

func (g *SpatialGrid) clampRow(r int) int {
	if r < 0 {
		return 0
	}
	if r >= g.rows {
		return g.rows - 1
	}
	return r
}

// Insert adds a body to every cell its box overlaps
func (g *SpatialGrid) Insert(b *Body) {
	minCX := g.clampCol(int(b.X / SpatialCellSize))
	maxCX := g.clampCol(int(b.Right() / SpatialCellSize))
	minCY := g.clampRow(int(b.Y / SpatialCellSize))
	maxCY := g.clampRow(int(b.Bottom() / SpatialCellSize))
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			idx := cy*g.cols + cx
			g.cells[idx] = append(g.cells[idx], b)
		}
	}
}

// QueryBuf appends every body in cells overlapping box to buf and returns
// the extended slice, avoiding per-call allocation. Callers must tolerate
// duplicates for bodies spanning multiple cells.
func (g *SpatialGrid) QueryBuf(box Box, buf []*Body) []*Body {
	minCX := g.clampCol(int(box.X / SpatialCellSize))
	maxCX := g.clampCol(int(box.Right() / SpatialCellSize))
	minCY := g.clampRow(int(box.Y / SpatialCellSize))
	maxCY := g.clampRow(int(box.Bottom() / SpatialCellSize))
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			buf = append(buf, g.cells[cy*g.cols+cx]...)
		}
	}
	return buf
}
