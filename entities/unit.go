package entities

import "github.com/pthm-cable/tacore/simtypes"

// BehaviorStateKind is the coarse behavior-state discriminant folded into
// computeHash (§4.1): which high-level activity the unit's order pump is
// currently driving.
type BehaviorStateKind uint8

const (
	BehaviorIdle BehaviorStateKind = iota
	BehaviorMoving
	BehaviorAttacking
	BehaviorBuilding
	BehaviorGuarding
	BehaviorBeingBuilt
)

// MaxWeapons bounds a unit to the "up to three weapons" the behavior engine
// updates each tick (§4.2 step 4).
const MaxWeapons = 3

// UnitState is the authoritative per-unit record (§3.2, §3.3).
type UnitState struct {
	Type  string
	Owner PlayerID

	Position     simtypes.SimVector
	Rotation     simtypes.SimAngle
	PrevPosition simtypes.SimVector
	PrevRotation simtypes.SimAngle

	HitPoints    int32
	MaxHitPoints int32

	BuildTime          int32
	BuildTimeCompleted int32

	Activated bool // SetOnOff / activateWhenBuilt
	InCollision bool
	InBuildStance bool

	Physics Physics

	Orders           OrderQueue
	BuildOrderUnitID UnitID // cleared when the order that set it completes

	// BuildRequestPending/BuildRequestStatus track a direct (non-factory)
	// BuildOrder's outstanding unit-creation request: submitted during
	// step 4's per-unit behavior pass, resolved by the kernel's step-8
	// deferred creation pass (§4.1, §4.2.3).
	BuildRequestPending bool
	BuildRequestStatus  CreationStatus

	Weapons    [MaxWeapons]WeaponState
	NumWeapons int
	FireOrders FireOrders

	Factory *FactoryState // nil for non-factory unit types

	BehaviorState BehaviorStateKind

	// NavigationState holds the path-request/waypoint-advance bookkeeping
	// that the pathreq package operates on (§6.2, §4.2 step 5).
	Navigation NavigationState

	InWater bool // last known sea-level side, for the setSFXoccupy transition edge-trigger

	VeteranLevel int32
	Armored      bool
	Flying       bool // membership in the kernel's flying set
}

// NavigationState is the subset of unit state the pathfinding interface
// reads and writes (§6.2).
type NavigationState struct {
	HasDesiredDestination bool
	DesiredDestination    simtypes.SimVector

	HasPath      bool
	Waypoints    []simtypes.SimVector
	WaypointIdx  int
	PathCreated  GameTime

	HasLandingLocation bool
	LandingLocation    simtypes.SimVector
}

// IsBeingBuilt reports the §3.3 "being built" predicate.
func (u *UnitState) IsBeingBuilt() bool {
	return u.BuildTimeCompleted < u.BuildTime
}

// IsDead reports whether the unit should be collected by the kernel's
// garbage-collection pass (§8 property 3: hitPoints==0 and not beingBuilt).
func (u *UnitState) IsDead() bool {
	return u.HitPoints <= 0 && !u.IsBeingBuilt()
}

// ClampHealth enforces 0 <= hitPoints <= maxHitPoints (§8 property 3).
func (u *UnitState) ClampHealth() {
	if u.HitPoints > u.MaxHitPoints {
		u.HitPoints = u.MaxHitPoints
	}
	if u.HitPoints < 0 {
		u.HitPoints = 0
	}
}
