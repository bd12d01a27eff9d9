package entities

import "github.com/pthm-cable/tacore/simtypes"

// ProjectilePhysicsKind discriminates a projectile's motion model (§4.5).
type ProjectilePhysicsKind uint8

const (
	ProjectileBallistic ProjectilePhysicsKind = iota
	ProjectileLineOfSight
	ProjectileTracking
)

// Projectile is a single in-flight shot (§3.2).
type Projectile struct {
	Owner      PlayerID
	WeaponType string

	Position     simtypes.SimVector
	PrevPosition simtypes.SimVector
	Velocity     simtypes.SimVector

	PhysicsKind ProjectilePhysicsKind
	TrackingTurnRate simtypes.SimScalar // meaningful when PhysicsKind == ProjectileTracking

	TargetUnit    UnitID
	HasTargetUnit bool

	DieOnFrame GameTime

	GroundBounce bool
	DamageRadius simtypes.SimScalar
}
