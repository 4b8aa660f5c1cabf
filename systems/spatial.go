// Package systems provides ECS systems for the simulation.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pond/components"
)

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	E      ecs.Entity
	DX, DY float32 // delta from query origin to the neighbour
	DistSq float32 // squared distance (avoid sqrt in hot path)
}

// SpatialGrid provides O(1) neighbor lookups using a cell-based grid.
// The grid is rebuilt once per tick but distances are measured against live
// positions, so entities that moved since the rebuild are still found as long
// as they moved less than the configured margin.
type SpatialGrid struct {
	cellSize float32
	margin   float32 // extra search distance covering movement since the last rebuild
	cols     int
	rows     int
	cells    [][]ecs.Entity // flat grid of entity lists
}

// NewSpatialGrid creates a spatial grid covering the given world size.
func NewSpatialGrid(width, height, cellSize float32) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 8) // pre-allocate small capacity
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// SetMargin sets how far an entity may move between rebuilds and still be found.
func (g *SpatialGrid) SetMargin(m float32) {
	if m < 0 {
		m = 0
	}
	g.margin = m
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, x, y float32) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], e)
}

// QueryRadiusInto finds entities strictly closer than radius and appends to dst.
// Returns the updated slice. Reuse dst across calls to avoid allocations.
// Results are not capped: callers get exactly the set a full scan would give.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, x, y, radius float32, exclude ecs.Entity, posMap *ecs.Map1[components.Position]) []Neighbor {
	reach := radius + g.margin
	minCol, maxCol := g.span(x-reach, x+reach, g.cols)
	minRow, maxRow := g.span(y-reach, y+reach, g.rows)

	radiusSq := radius * radius

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, e := range g.cells[row*g.cols+col] {
				if e == exclude {
					continue
				}

				pos := posMap.Get(e)
				dx := pos.X - x
				dy := pos.Y - y
				distSq := dx*dx + dy*dy

				if distSq < radiusSq {
					dst = append(dst, Neighbor{E: e, DX: dx, DY: dy, DistSq: distSq})
				}
			}
		}
	}

	return dst
}

// span converts a world interval into a clamped range of cell indices.
func (g *SpatialGrid) span(lo, hi float32, n int) (int, int) {
	a := int(lo / g.cellSize)
	b := int(hi / g.cellSize)
	if lo < 0 {
		a = 0
	}
	if a >= n {
		a = n - 1
	}
	if b < 0 {
		b = 0
	} else if b >= n {
		b = n - 1
	}
	return a, b
}

// cellIndex returns the flat index for a world position.
func (g *SpatialGrid) cellIndex(x, y float32) int {
	col := int(x / g.cellSize)
	row := int(y / g.cellSize)

	// Clamp to valid range
	if x < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if y < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return row*g.cols + col
}
