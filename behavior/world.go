package behavior

import (
	"github.com/pthm-cable/tacore/cob"
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/mesh"
	"github.com/pthm-cable/tacore/pathreq"
	"github.com/pthm-cable/tacore/simtypes"
)

// World is the kernel-facing contract the behavior engine drives against.
// Generalizes the teacher's systems/pathfinding.go TerrainQuerier pattern of
// a narrow interface owned by the consuming package, not the producer, so
// this package never imports the kernel.
type World interface {
	UnitDefinition(unitType string) (*entities.UnitDefinition, bool)
	WeaponDefinition(name string) (*entities.WeaponDefinition, bool)
	Model(objectName string) (*entities.UnitModelDefinition, bool)

	GetUnit(id entities.UnitID) (*entities.UnitState, bool)
	MeshTree(id entities.UnitID) (*mesh.Tree, bool)
	COBEnv(id entities.UnitID) (*cob.Environment, bool)

	TerrainHeight(pos simtypes.SimVector) simtypes.SimScalar
	SeaLevel() simtypes.SimScalar

	// OccupancyBlocked reports whether the fx*fz footprint centered at center
	// collides with any occupant other than self.
	OccupancyBlocked(center simtypes.SimVector, fx, fz int, self entities.UnitID) bool
	MoveOccupancy(self entities.UnitID, from, to simtypes.SimVector, fx, fz int) bool

	RequestPath(id entities.UnitID)
	ConsumePath(id entities.UnitID) (*pathreq.UnitPath, bool)

	SpawnProjectile(p entities.Projectile) entities.ProjectileID
	AddResourceDelta(owner entities.PlayerID, apparentMetal, actualMetal, apparentEnergy, actualEnergy simtypes.SimScalar) bool

	EmitEvent(e entities.Event)
	GameTime() entities.GameTime

	// RequestUnitCreation enqueues a unit-creation request; it does not
	// spawn synchronously. requester is polled back its outcome
	// (Pending/Done/Failed) by the kernel's deferred creation pass, run
	// once after every unit's behavior update has completed for the tick
	// (§4.1 step 8, §4.2.3). requester must not be inserted into or read
	// from the unit store while this call is in flight within the same
	// per-unit iteration — resolution is deferred specifically so it
	// never is.
	RequestUnitCreation(requester entities.UnitID, unitType string, owner entities.PlayerID, pos simtypes.SimVector, rot simtypes.SimAngle)

	// FindNearestHostile returns the closest enemy-owned unit to pos within
	// maxRange, used by the weapon FSM's fire-at-will auto-acquire.
	FindNearestHostile(pos simtypes.SimVector, owner entities.PlayerID, maxRange simtypes.SimScalar) (entities.UnitID, bool)

	// Random returns a deterministic value in [low, high), sourced from the
	// kernel's seeded RNG, for the COB RAND opcode.
	Random(low, high int32) int32
}
