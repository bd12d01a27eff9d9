// Package spatial provides the uniform 2D grids that back collision and
// resource queries: the occupancy grid, the metal/heightmap grids, and the
// region/clip/accumulate primitives shared by all of them.
package spatial

import "github.com/pthm-cable/tacore/simtypes"

// Grid is a generic uniform 2D grid of cell size 1 world unit per cell,
// generalized from the teacher's SpatialGrid/NavGrid row-major backing
// store (systems/spatial.go, systems/navgrid.go) to an arbitrary cell type.
type Grid[T any] struct {
	width, height int
	cells         []T
}

// NewGrid allocates a width x height grid with cells at their zero value.
func NewGrid[T any](width, height int) *Grid[T] {
	return &Grid[T]{
		width:  width,
		height: height,
		cells:  make([]T, width*height),
	}
}

func (g *Grid[T]) Width() int  { return g.width }
func (g *Grid[T]) Height() int { return g.height }

// InBounds reports whether (x, y) is a valid cell coordinate.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at (x, y). Callers must check InBounds first; an
// out-of-range index panics rather than silently clamping, since an
// out-of-bounds grid access in simulation code is a programmer error.
func (g *Grid[T]) At(x, y int) T {
	return g.cells[y*g.width+x]
}

// Set assigns the cell at (x, y).
func (g *Grid[T]) Set(x, y int, v T) {
	g.cells[y*g.width+x] = v
}

// Region is an inclusive rectangle of grid cells, the unit used by
// footprint/yard-map iteration.
type Region struct {
	MinX, MinY, MaxX, MaxY int
}

// RegionFromFootprint returns the grid-cell rectangle covered by an entity
// footprint of size (fx, fz) cells centered at the given cell coordinate.
func RegionFromFootprint(cx, cz, fx, fz int) Region {
	return Region{
		MinX: cx - fx/2,
		MinY: cz - fz/2,
		MaxX: cx + (fx-1)/2,
		MaxY: cz + (fz-1)/2,
	}
}

// Clip restricts r to the grid's bounds.
func (g *Grid[T]) Clip(r Region) Region {
	if r.MinX < 0 {
		r.MinX = 0
	}
	if r.MinY < 0 {
		r.MinY = 0
	}
	if r.MaxX >= g.width {
		r.MaxX = g.width - 1
	}
	if r.MaxY >= g.height {
		r.MaxY = g.height - 1
	}
	return r
}

// ForEach calls fn for every cell coordinate in the clipped region.
func (g *Grid[T]) ForEach(r Region, fn func(x, y int)) {
	r = g.Clip(r)
	for y := r.MinY; y <= r.MaxY; y++ {
		for x := r.MinX; x <= r.MaxX; x++ {
			fn(x, y)
		}
	}
}

// Accumulate sums fn(cell) over every cell in the clipped region. Used by
// the metal-grid resource query and by radial-damage bounding-box scans.
func Accumulate[T any](g *Grid[T], r Region, fn func(v T) simtypes.SimScalar) simtypes.SimScalar {
	sum := simtypes.Zero
	g.ForEach(r, func(x, y int) {
		sum = sum.Add(fn(g.At(x, y)))
	})
	return sum
}
