// Package spatial holds the world's two grid-shaped data structures: the
// boolean vegetation tile set and the bucketed proximity index over
// mobile entities. Both follow the teacher's own dense-grid-of-cells
// layout (world.go's Grid[y][x] of per-cell entity slices, biome
// grids) generalised to the exact tile/bucket semantics this spec
// requires.
package spatial

import (
	"math"

	"github.com/ViktorDolezel/evolution-sandbox/prng"
	"github.com/ViktorDolezel/evolution-sandbox/vecmath"
)

// VegetationGrid is a dense set of boolean tiles. A cell has no identity;
// presence of vegetation is the only datum.
type VegetationGrid struct {
	cells         [][]bool // cells[gy][gx]
	width, height int      // grid dimensions, not world dimensions
	tile          float64
}

// NewVegetationGrid builds an empty grid sized
// floor(worldWidth/tile) x floor(worldHeight/tile).
func NewVegetationGrid(worldWidth, worldHeight, tile float64) *VegetationGrid {
	gw := int(math.Floor(worldWidth / tile))
	gh := int(math.Floor(worldHeight / tile))
	cells := make([][]bool, gh)
	for y := range cells {
		cells[y] = make([]bool, gw)
	}
	return &VegetationGrid{cells: cells, width: gw, height: gh, tile: tile}
}

// Dimensions returns the grid's width and height in cells.
func (g *VegetationGrid) Dimensions() (width, height int) {
	return g.width, g.height
}

func (g *VegetationGrid) inBounds(gx, gy int) bool {
	return gx >= 0 && gx < g.width && gy >= 0 && gy < g.height
}

// Has reports whether vegetation is present at (gx,gy). Out-of-bounds
// cells are treated as empty.
func (g *VegetationGrid) Has(gx, gy int) bool {
	if !g.inBounds(gx, gy) {
		return false
	}
	return g.cells[gy][gx]
}

// Set marks (gx,gy) as occupied. Out-of-bounds calls are a no-op.
func (g *VegetationGrid) Set(gx, gy int) {
	if g.inBounds(gx, gy) {
		g.cells[gy][gx] = true
	}
}

// Remove clears (gx,gy). Out-of-bounds calls are a no-op.
func (g *VegetationGrid) Remove(gx, gy int) {
	if g.inBounds(gx, gy) {
		g.cells[gy][gx] = false
	}
}

// Count returns the number of occupied cells.
func (g *VegetationGrid) Count() int {
	n := 0
	for y := range g.cells {
		for x := range g.cells[y] {
			if g.cells[y][x] {
				n++
			}
		}
	}
	return n
}

// WorldToGrid maps a world-space point to its containing cell.
func (g *VegetationGrid) WorldToGrid(p vecmath.Vec2) (gx, gy int) {
	return int(math.Floor(p.X / g.tile)), int(math.Floor(p.Y / g.tile))
}

// GridToWorld maps a cell to the world-space point at its center.
func (g *VegetationGrid) GridToWorld(gx, gy int) vecmath.Vec2 {
	return vecmath.Vec2{
		X: float64(gx)*g.tile + g.tile/2,
		Y: float64(gy)*g.tile + g.tile/2,
	}
}

// cellCoord is a grid cell coordinate.
type cellCoord struct{ x, y int }

// Neighbors returns (gx,gy)'s four orthogonal neighbours, in the fixed
// order {left,right,up,down}, skipping any that fall outside the grid.
func (g *VegetationGrid) Neighbors(gx, gy int) []cellCoord {
	candidates := []cellCoord{
		{gx - 1, gy}, // left
		{gx + 1, gy}, // right
		{gx, gy - 1}, // up
		{gx, gy + 1}, // down
	}
	out := make([]cellCoord, 0, 4)
	for _, c := range candidates {
		if g.inBounds(c.x, c.y) {
			out = append(out, c)
		}
	}
	return out
}

// Seed initialises the grid by iterating every cell in row-major order
// and setting it with probability density. For 0 < density < 1 this
// consumes exactly width*height PRNG draws, one Bernoulli per cell in
// iteration order; density 0 or 1 consumes none (prng.Bool does not draw
// at those extremes).
func (g *VegetationGrid) Seed(rng *prng.PRNG, density float64) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if rng.Bool(density) {
				g.cells[y][x] = true
			}
		}
	}
}

// Spread takes a snapshot of currently occupied cells first (so growth
// within this call never compounds in the same pass), then for each
// snapshotted cell and each of its four neighbours in fixed order, sets
// an empty neighbour with probability rate. Iteration order over the
// snapshot is row-major; for 0 < rate < 1 each empty neighbour consumes
// exactly one PRNG value regardless of whether it ends up set, and rate 0
// or 1 consumes none.
func (g *VegetationGrid) Spread(rng *prng.PRNG, rate float64) {
	var occupied []cellCoord
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] {
				occupied = append(occupied, cellCoord{x, y})
			}
		}
	}

	for _, c := range occupied {
		for _, n := range g.Neighbors(c.x, c.y) {
			if !g.cells[n.y][n.x] {
				if rng.Bool(rate) {
					g.cells[n.y][n.x] = true
				}
			}
		}
	}
}

// Positions returns the world-space center of every occupied cell, sorted
// by grid row then column, for deterministic snapshot queries.
func (g *VegetationGrid) Positions() []vecmath.Vec2 {
	var out []vecmath.Vec2
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y][x] {
				out = append(out, g.GridToWorld(x, y))
			}
		}
	}
	return out
}
