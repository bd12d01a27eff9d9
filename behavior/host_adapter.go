package behavior

import (
	"github.com/pthm-cable/tacore/cob"
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/mesh"
	"github.com/pthm-cable/tacore/simtypes"
)

// hostAdapter binds one unit's mesh.Tree and UnitState into the cob.Host
// surface (§6.4). The VM package never sees entities or mesh directly; this
// is the only place the three packages meet. It re-resolves the unit and
// its piece tree through World on every call rather than caching pointers,
// since a thread started this tick may still be running next tick and the
// underlying storage is free to move entities around between ticks.
type hostAdapter struct {
	self entities.UnitID
	w    World
}

// NewHost builds the cob.Host implementation for one unit, called once at
// spawn time (§4.1 spawnUnit) and bound into that unit's cob.Environment.
func NewHost(self entities.UnitID, w World) cob.Host {
	return &hostAdapter{self: self, w: w}
}

func (h *hostAdapter) unit() *entities.UnitState {
	u, ok := h.w.GetUnit(h.self)
	if !ok {
		panic("cob: host invoked for a unit that is no longer alive")
	}
	return u
}

func (h *hostAdapter) tree() *mesh.Tree {
	t, ok := h.w.MeshTree(h.self)
	if !ok {
		panic("cob: host invoked for a unit with no piece tree")
	}
	return t
}

func (h *hostAdapter) SetMove(pieceID, axis int, target, speed simtypes.SimScalar) {
	h.tree().Pieces[pieceID].SetMove(mesh.Axis(axis), target, speed)
}

func (h *hostAdapter) SetMoveNow(pieceID, axis int, target simtypes.SimScalar) {
	h.tree().Pieces[pieceID].SetMoveNow(mesh.Axis(axis), target)
}

func (h *hostAdapter) SetTurn(pieceID, axis int, target simtypes.SimAngle, speed simtypes.SimScalar) {
	h.tree().Pieces[pieceID].SetTurn(mesh.Axis(axis), target, speed)
}

func (h *hostAdapter) SetTurnNow(pieceID, axis int, target simtypes.SimAngle) {
	h.tree().Pieces[pieceID].SetTurnNow(mesh.Axis(axis), target)
}

func (h *hostAdapter) SetSpin(pieceID, axis int, target, accel simtypes.SimScalar) {
	h.tree().Pieces[pieceID].Spins[mesh.Axis(axis)] = mesh.SpinOperation{Active: true, Target: target, Accel: accel}
}

func (h *hostAdapter) StopSpin(pieceID, axis int, decel simtypes.SimScalar) {
	h.tree().Pieces[pieceID].StopSpins[mesh.Axis(axis)] = mesh.StopSpinOperation{Active: true, Decel: decel}
}

func (h *hostAdapter) SetVisible(pieceID int, visible bool) {
	h.tree().Pieces[pieceID].Hidden = !visible
}

func (h *hostAdapter) SetShaded(pieceID int, shaded bool) {
	h.tree().Pieces[pieceID].Shaded = shaded
}

func (h *hostAdapter) Explode(pieceID int, explosionType int32) {
	h.w.EmitEvent(entities.Event{
		Kind:     entities.EventUnitDied,
		Unit:     h.self,
		Position: h.tree().PiecePosition(pieceID),
	})
}

func (h *hostAdapter) EmitSFX(pieceID int, sfxType int32) {
	h.w.EmitEvent(entities.Event{
		Kind:     entities.EventEmitParticleFromPiece,
		Unit:     h.self,
		SFX:      entities.SFXKind(sfxType),
		Position: h.tree().PiecePosition(pieceID),
	})
}

// GetValue implements the §6.4 engine-exposed property reads.
func (h *hostAdapter) GetValue(id cob.ValueID, args [4]int32) int32 {
	u := h.unit()
	switch id {
	case cob.ValActivation:
		return boolToInt(u.Activated)
	case cob.ValStandingFireOrders:
		return int32(u.FireOrders)
	case cob.ValStandingMoveOrders:
		return 0
	case cob.ValHealth:
		if u.MaxHitPoints == 0 {
			return 0
		}
		return u.HitPoints * 100 / u.MaxHitPoints
	case cob.ValInBuildStance:
		return boolToInt(u.InBuildStance)
	case cob.ValBusy:
		return boolToInt(u.Factory != nil && u.Factory.Kind != entities.FactoryIdle)
	case cob.ValPieceXZ:
		pos := h.tree().PiecePosition(int(args[0]))
		return simtypes.PackXZ(pos.X, pos.Z)
	case cob.ValPieceY:
		pos := h.tree().PiecePosition(int(args[0]))
		return simtypes.ToFixed(pos.Y)
	case cob.ValUnitXZ:
		return simtypes.PackXZ(u.Position.X, u.Position.Z)
	case cob.ValUnitY:
		return simtypes.ToFixed(u.Position.Y)
	case cob.ValUnitHeight:
		return simtypes.ToFixed(u.Position.Y.Sub(h.w.TerrainHeight(u.Position)))
	case cob.ValGroundHeight:
		return simtypes.ToFixed(h.w.TerrainHeight(u.Position))
	case cob.ValBuildPercentLeft, cob.ValUnitBuildPercentLeft:
		if u.BuildTime == 0 {
			return 0
		}
		return 100 - u.BuildTimeCompleted*100/u.BuildTime
	case cob.ValYardOpen:
		return boolToInt(u.InBuildStance)
	case cob.ValArmored:
		return boolToInt(u.Armored)
	case cob.ValVeteranLevel:
		return u.VeteranLevel
	case cob.ValXZAtan:
		return int32(simtypes.FromRadians(simtypes.Atan2(simtypes.FromFixed(args[0]), simtypes.FromFixed(args[1]))))
	case cob.ValXZHypot:
		x, z := simtypes.FromFixed(args[0]), simtypes.FromFixed(args[1])
		return simtypes.ToFixed(x.Mul(x).Add(z.Mul(z)).Sqrt())
	default:
		return 0
	}
}

// SetValue implements the writable subset of §6.4.
func (h *hostAdapter) SetValue(id cob.ValueID, value int32) {
	u := h.unit()
	switch id {
	case cob.ValActivation:
		u.Activated = value != 0
	case cob.ValStandingFireOrders:
		u.FireOrders = entities.FireOrders(value)
	case cob.ValInBuildStance:
		u.InBuildStance = value != 0
	case cob.ValArmored:
		u.Armored = value != 0
	}
}

func (h *hostAdapter) Random(low, high int32) int32 {
	return h.w.Random(low, high)
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
