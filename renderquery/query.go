// Package renderquery is the read-only accessor layer a presenter drives:
// interpolated unit transforms, piece world transforms, and the drained
// event log. It never mutates kernel state, and the kernel never imports
// it — the dependency runs one way, the same as behavior.World's boundary.
package renderquery

import (
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/mesh"
	"github.com/pthm-cable/tacore/simtypes"
)

// Source is the narrow kernel-facing view this package queries, kept
// consumer-owned so renderquery never imports kernel.
type Source interface {
	GetUnit(id entities.UnitID) (*entities.UnitState, bool)
	MeshTree(id entities.UnitID) (*mesh.Tree, bool)
	DrainEvents() []entities.Event
	AllUnitIDs() []entities.UnitID
}

// Query wraps a Source with the interpolation math a presenter needs to
// render between ticks smoothly rather than snapping to the last
// simulated position.
type Query struct {
	src Source
}

// New wraps src.
func New(src Source) *Query {
	return &Query{src: src}
}

// UnitTransform is one unit's interpolated render-space pose for a given
// fraction of the way between its previous and current tick.
type UnitTransform struct {
	Position simtypes.SimVector
	Rotation simtypes.SimAngle
}

// InterpolatedUnit blends a unit's previous and current tick pose by alpha
// in [0, 1], the standard fixed-timestep render interpolation: alpha=0
// reproduces the start-of-tick pose, alpha=1 the end-of-tick pose. Returns
// (zero, false) if the unit no longer exists.
func (q *Query) InterpolatedUnit(id entities.UnitID, alpha simtypes.SimScalar) (UnitTransform, bool) {
	u, ok := q.src.GetUnit(id)
	if !ok {
		return UnitTransform{}, false
	}
	pos := lerpVec(u.PrevPosition, u.Position, alpha)
	rot := lerpAngle(u.PrevRotation, u.Rotation, alpha)
	return UnitTransform{Position: pos, Rotation: rot}, true
}

func lerpVec(a, b simtypes.SimVector, alpha simtypes.SimScalar) simtypes.SimVector {
	return a.Add(b.Sub(a).Scale(alpha))
}

// lerpAngle interpolates by the shortest arc, matching the steering
// engine's own turnTowards convention rather than a naive linear blend
// across the wrap boundary.
func lerpAngle(a, b simtypes.SimAngle, alpha simtypes.SimScalar) simtypes.SimAngle {
	delta := simtypes.Delta(a, b)
	step := simtypes.NewSimScalar(float64(delta)).Mul(alpha)
	return a.Add(simtypes.SimAngle(int16(step.Float64())))
}

// PieceWorldPosition resolves one unit piece's current world-space origin,
// for attaching particle effects or camera rigs to animated pieces.
func (q *Query) PieceWorldPosition(id entities.UnitID, pieceID int) (simtypes.SimVector, bool) {
	tree, ok := q.src.MeshTree(id)
	if !ok {
		return simtypes.SimVector{}, false
	}
	return tree.PiecePosition(pieceID), true
}

// DrainEvents forwards the kernel's once-per-tick event drain, the single
// point a presenter should read events from (§6.3).
func (q *Query) DrainEvents() []entities.Event {
	return q.src.DrainEvents()
}

// AllUnits returns every live unit's interpolated transform at alpha, for
// a presenter doing a full-scene redraw.
func (q *Query) AllUnits(alpha simtypes.SimScalar) map[entities.UnitID]UnitTransform {
	out := make(map[entities.UnitID]UnitTransform)
	for _, id := range q.src.AllUnitIDs() {
		if t, ok := q.InterpolatedUnit(id, alpha); ok {
			out[id] = t
		}
	}
	return out
}
