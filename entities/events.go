package entities

import "github.com/pthm-cable/tacore/simtypes"

// EventKind discriminates the GameEvent sum type (§6.3).
type EventKind uint8

const (
	EventFireWeapon EventKind = iota
	EventUnitArrived
	EventUnitActivated
	EventUnitDeactivated
	EventUnitComplete
	EventEmitParticleFromPiece
	EventUnitSpawned
	EventUnitDied
	EventUnitStartedBuilding
	EventProjectileSpawned
	EventProjectileDied
)

// SFXKind enumerates EmitParticleFromPieceEvent's sfxType.
type SFXKind uint8

const (
	SFXLightSmoke SFXKind = iota
	SFXBlackSmoke
	SFXWake1
)

// UnitDeathKind enumerates UnitDiedEvent's deathType.
type UnitDeathKind uint8

const (
	DeathNormalExploded UnitDeathKind = iota
	DeathWaterExploded
	DeathDeleted
)

// ProjectileDeathKind enumerates ProjectileDiedEvent's deathType.
type ProjectileDeathKind uint8

const (
	ProjectileDeathOutOfBounds ProjectileDeathKind = iota
	ProjectileDeathNormalImpact
	ProjectileDeathWaterImpact
	ProjectileDeathEndOfLife
)

// Event is a single tick's presentation-facing notification (§6.3), drained
// exactly once per tick by the presenter. Only the fields relevant to Kind
// are populated — a flat struct discriminated by Kind, per the Design
// Notes' tagged-sum-type guidance.
type Event struct {
	Kind EventKind

	Unit    UnitID
	UnitType string

	WeaponType string
	ShotNumber int
	FirePoint  simtypes.SimVector

	SFX       SFXKind
	PieceName string

	Position   simtypes.SimVector
	DeathType  UnitDeathKind

	Projectile ProjectileID
	ProjDeath  ProjectileDeathKind
}
