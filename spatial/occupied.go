package spatial

import "github.com/pthm-cable/tacore/entities"

// OccupiedKind discriminates what, if anything, occupies a cell.
type OccupiedKind uint8

const (
	OccupiedNone OccupiedKind = iota
	OccupiedUnitKind
	OccupiedFeatureKind
)

// BuildingOccupiedCell overrides bulk footprint occupancy for a single
// yard-map cell of a building.
type BuildingOccupiedCell struct {
	Unit     entities.UnitID
	Passable bool
}

// OccupiedCell is the per-cell payload of the OccupiedGrid (§3.5).
type OccupiedCell struct {
	Kind        OccupiedKind
	Unit        entities.UnitID
	Feature     entities.FeatureID
	Building    *BuildingOccupiedCell
}

// Traversable reports whether a cell is passable for ground collision: the
// cell must carry no occupant, and any building cell it carries must be
// marked passable (e.g. an open yard-map gate).
func (c OccupiedCell) Traversable() bool {
	if c.Kind != OccupiedNone {
		return false
	}
	if c.Building != nil && !c.Building.Passable {
		return false
	}
	return true
}

// TraversableForProjectile reports whether a projectile passes through the
// cell: an occupied cell blocks it, and a building cell blocks it unless
// that cell is marked passable, per §3.5's projectile carve-out.
func (c OccupiedCell) TraversableForProjectile() bool {
	if c.Kind != OccupiedNone {
		return false
	}
	if c.Building != nil && !c.Building.Passable {
		return false
	}
	return true
}

// OccupiedGrid is the collision/footprint backing store (§3.5, §2 row 2).
type OccupiedGrid struct {
	grid *Grid[OccupiedCell]
}

// NewOccupiedGrid allocates a width x height occupancy grid, one cell per
// terrain tile.
func NewOccupiedGrid(width, height int) *OccupiedGrid {
	return &OccupiedGrid{grid: NewGrid[OccupiedCell](width, height)}
}

func (g *OccupiedGrid) Width() int  { return g.grid.Width() }
func (g *OccupiedGrid) Height() int { return g.grid.Height() }

// TraversableAt reports whether (x, y) is passable for ground collision,
// bounds-checking first so callers like a grid pathfinder don't need their
// own InBounds check before every query.
func (g *OccupiedGrid) TraversableAt(x, y int) bool {
	if !g.grid.InBounds(x, y) {
		return false
	}
	return g.grid.At(x, y).Traversable()
}

// At returns the cell at (x, y).
func (g *OccupiedGrid) At(x, y int) OccupiedCell { return g.grid.At(x, y) }

// MarkUnit stamps OccupiedUnit(self) over the clipped footprint region.
func (g *OccupiedGrid) MarkUnit(r Region, unit entities.UnitID) {
	g.grid.ForEach(r, func(x, y int) {
		g.grid.Set(x, y, OccupiedCell{Kind: OccupiedUnitKind, Unit: unit})
	})
}

// ClearRegion resets every cell in the clipped region to empty. Used on
// unit despawn, takeoff, and feature removal.
func (g *OccupiedGrid) ClearRegion(r Region) {
	g.grid.ForEach(r, func(x, y int) {
		g.grid.Set(x, y, OccupiedCell{})
	})
}

// MarkFeature stamps OccupiedFeature(id) over the clipped region.
func (g *OccupiedGrid) MarkFeature(r Region, id entities.FeatureID) {
	g.grid.ForEach(r, func(x, y int) {
		g.grid.Set(x, y, OccupiedCell{Kind: OccupiedFeatureKind, Feature: id})
	})
}

// SetYardMap writes per-cell BuildingOccupiedCell entries for a building's
// footprint, one passability flag per cell, overriding bulk occupancy.
func (g *OccupiedGrid) SetYardMap(r Region, unit entities.UnitID, passable func(x, y int) bool) {
	g.grid.ForEach(r, func(x, y int) {
		g.grid.Set(x, y, OccupiedCell{
			Building: &BuildingOccupiedCell{Unit: unit, Passable: passable(x, y)},
		})
	})
}

// RegionCollides reports whether any cell in the clipped region is not
// traversable for ground collision — the pre-move and pre-spawn check.
func (g *OccupiedGrid) RegionCollides(r Region) bool {
	collides := false
	g.grid.ForEach(r, func(x, y int) {
		if !g.grid.At(x, y).Traversable() {
			collides = true
		}
	})
	return collides
}

// RegionCollidesForProjectile is RegionCollides but ignores passable
// building cells, matching the projectile-vs-yard-map rule.
func (g *OccupiedGrid) RegionCollidesForProjectile(r Region) bool {
	collides := false
	g.grid.ForEach(r, func(x, y int) {
		if !g.grid.At(x, y).TraversableForProjectile() {
			collides = true
		}
	})
	return collides
}
