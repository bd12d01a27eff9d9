package cob

import "github.com/pthm-cable/tacore/simtypes"

// ValueID enumerates the engine-exposed properties scripts can read via
// GET_VALUE/GET_VALUE_WITH_ARGS and, for the writable subset, SET_VALUE
// (§6.4). Bit-exact with the source engine's numbering is not required
// since this is a from-scratch port, but the set itself and each getter's
// semantics are.
type ValueID int32

const (
	ValActivation ValueID = iota
	ValStandingFireOrders
	ValStandingMoveOrders
	ValHealth
	ValInBuildStance
	ValBusy
	ValPieceXZ
	ValPieceY
	ValUnitXZ
	ValUnitY
	ValUnitHeight
	ValXZAtan
	ValXZHypot
	ValAtan
	ValHypot
	ValGroundHeight
	ValBuildPercentLeft
	ValYardOpen
	ValBuggerOff
	ValArmored
	ValVeteranLevel
	ValUnitIsOnThisComp
	ValMinID
	ValMaxID
	ValMyID
	ValUnitTeam
	ValUnitBuildPercentLeft
	ValUnitAllied
)

// Host is the engine-side callback surface a COB Environment dispatches
// piece-motion opcodes and engine-value queries through. The behavior
// engine's per-unit adapter implements this against the unit's mesh.Tree,
// UnitState and the kernel's read-only query surfaces — the VM package
// itself has zero knowledge of units, terrain, or the entity stores.
type Host interface {
	// Piece motion (§4.3.2). pieceID is resolved by the VM from the
	// script's piece-name table before calling; axis is 0/1/2.
	SetMove(pieceID, axis int, target, speed simtypes.SimScalar)
	SetMoveNow(pieceID, axis int, target simtypes.SimScalar)
	SetTurn(pieceID, axis int, target simtypes.SimAngle, speed simtypes.SimScalar)
	SetTurnNow(pieceID, axis int, target simtypes.SimAngle)
	SetSpin(pieceID, axis int, target, accel simtypes.SimScalar)
	StopSpin(pieceID, axis int, decel simtypes.SimScalar)
	SetVisible(pieceID int, visible bool)
	SetShaded(pieceID int, shaded bool)
	Explode(pieceID int, explosionType int32)
	EmitSFX(pieceID int, sfxType int32)

	// GetValue/SetValue resolve the engine-exposed properties of §6.4. args
	// is only populated for GET_VALUE_WITH_ARGS (always length 4, zero
	// for GET_VALUE); a missing piece referenced by a piece-scoped ValueID
	// is a hard error (§7) and Host implementations should panic.
	GetValue(id ValueID, args [4]int32) int32
	SetValue(id ValueID, value int32)

	// Random returns a deterministic value in [low, high) for the RAND
	// opcode (§4.3.2 supplement), sourced from the kernel's seeded RNG.
	Random(low, high int32) int32
}
