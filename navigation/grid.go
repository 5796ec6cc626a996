package navigation

import (
	"math"

	"github.com/milk9111/outpost/common"
)

const DefaultCellSize = 0.5

// Blocker reports whether a circle at p overlaps an obstacle.
type Blocker interface {
	Blocked(p common.Vec3, radius float64) bool
}

// Bounds is the walkable rectangle of a level on the ground plane.
type Bounds struct {
	MinX float64 `yaml:"min_x"`
	MinZ float64 `yaml:"min_z"`
	MaxX float64 `yaml:"max_x"`
	MaxZ float64 `yaml:"max_z"`
}

// Grid is a walkability grid over the XZ plane.
type Grid struct {
	bounds   Bounds
	cellSize float64
	w, h     int
	blocked  []bool
}

type gridPos struct {
	x, y int
}

// NewGrid rasterizes the bounds into cells and marks every cell whose centre
// cannot hold an agent of the given radius.
func NewGrid(bounds Bounds, cellSize, agentRadius float64, blocker Blocker) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	if bounds.MaxX < bounds.MinX {
		bounds.MinX, bounds.MaxX = bounds.MaxX, bounds.MinX
	}
	if bounds.MaxZ < bounds.MinZ {
		bounds.MinZ, bounds.MaxZ = bounds.MaxZ, bounds.MinZ
	}
	w := int(math.Ceil((bounds.MaxX - bounds.MinX) / cellSize))
	h := int(math.Ceil((bounds.MaxZ - bounds.MinZ) / cellSize))
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	g := &Grid{bounds: bounds, cellSize: cellSize, w: w, h: h, blocked: make([]bool, w*h)}
	if blocker == nil {
		return g
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if blocker.Blocked(g.center(gridPos{x: x, y: y}), agentRadius) {
				g.blocked[y*w+x] = true
			}
		}
	}
	return g
}

func (g *Grid) Bounds() Bounds {
	return g.bounds
}

func (g *Grid) CellSize() float64 {
	return g.cellSize
}

// Size returns the grid dimensions in cells.
func (g *Grid) Size() (int, int) {
	return g.w, g.h
}

// Contains reports whether p lies inside the level bounds.
func (g *Grid) Contains(p common.Vec3) bool {
	b := g.bounds
	return p.X >= b.MinX && p.X <= b.MaxX && p.Z >= b.MinZ && p.Z <= b.MaxZ
}

// Walkable reports whether p is inside the bounds and on an open cell.
func (g *Grid) Walkable(p common.Vec3) bool {
	if g == nil || !g.Contains(p) {
		return false
	}
	c := g.cell(p)
	return !g.blocked[c.y*g.w+c.x]
}

// BlockedCell reports whether the cell at (x, y) is closed.
func (g *Grid) BlockedCell(x, y int) bool {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return true
	}
	return g.blocked[y*g.w+x]
}

// cell clamps p into the grid.
func (g *Grid) cell(p common.Vec3) gridPos {
	gx := int(math.Floor((p.X - g.bounds.MinX) / g.cellSize))
	gy := int(math.Floor((p.Z - g.bounds.MinZ) / g.cellSize))
	if gx < 0 {
		gx = 0
	}
	if gy < 0 {
		gy = 0
	}
	if gx >= g.w {
		gx = g.w - 1
	}
	if gy >= g.h {
		gy = g.h - 1
	}
	return gridPos{x: gx, y: gy}
}

func (g *Grid) center(c gridPos) common.Vec3 {
	half := g.cellSize * 0.5
	return common.Vec3{
		X: g.bounds.MinX + float64(c.x)*g.cellSize + half,
		Z: g.bounds.MinZ + float64(c.y)*g.cellSize + half,
	}
}

// nearestOpen finds the closest open cell to c by ring search.
func (g *Grid) nearestOpen(c gridPos) (gridPos, bool) {
	if !g.blocked[c.y*g.w+c.x] {
		return c, true
	}
	maxRing := g.w
	if g.h > maxRing {
		maxRing = g.h
	}
	for r := 1; r <= maxRing; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if abs(dx) != r && abs(dy) != r {
					continue
				}
				n := gridPos{x: c.x + dx, y: c.y + dy}
				if !g.BlockedCell(n.x, n.y) {
					return n, true
				}
			}
		}
	}
	return gridPos{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
