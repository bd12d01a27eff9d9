package entities

import "github.com/pthm-cable/tacore/simtypes"

// PhysicsKind discriminates the Ground/Air physics sum type (§3.4).
type PhysicsKind uint8

const (
	PhysicsGround PhysicsKind = iota
	PhysicsAir
)

// SteeringInfo is the ground-unit steering output recomputed each tick.
type SteeringInfo struct {
	TargetAngle   simtypes.SimAngle
	TargetSpeed   simtypes.SimScalar
	ShouldTakeOff bool
}

// AirMovementKind discriminates the three air movementState variants.
type AirMovementKind uint8

const (
	AirTakingOff AirMovementKind = iota
	AirFlying
	AirLanding
)

// AirState holds the union of fields needed by whichever AirMovementKind is
// active; unused fields for the current Kind are left at zero value.
type AirState struct {
	Kind AirMovementKind

	// AirFlying
	HasTargetPosition bool
	TargetPosition    simtypes.SimVector
	ShouldLand        bool
	CurrentVelocity   simtypes.SimVector

	// AirLanding
	ShouldAbort    bool
	LandingFailed  bool
}

// Physics is the per-unit Ground/Air sum type (§3.4). Only the field
// matching Kind is meaningful.
type Physics struct {
	Kind PhysicsKind

	// PhysicsGround
	Steering     SteeringInfo
	CurrentSpeed simtypes.SimScalar

	// PhysicsAir
	Air AirState
}

// TryTakeOff transitions Ground -> Air when steering requested it. The
// caller is responsible for clearing the unit's footprint from the
// occupancy grid and adding it to the flying set; this only flips the
// discriminant and seeds the Air state.
func (p *Physics) TryTakeOff() bool {
	if p.Kind != PhysicsGround || !p.Steering.ShouldTakeOff {
		return false
	}
	p.Kind = PhysicsAir
	p.Air = AirState{Kind: AirTakingOff}
	return true
}

// TryLand attempts the Air -> Ground transition from Landing state. collides
// reports whether the footprint collision check at the candidate landing
// spot fails; on failure LandingFailed is set and the unit stays in Landing.
func (p *Physics) TryLand(atTerrainHeight bool, collides bool) bool {
	if p.Kind != PhysicsAir || p.Air.Kind != AirLanding || !atTerrainHeight {
		return false
	}
	if collides {
		p.Air.LandingFailed = true
		return false
	}
	p.Kind = PhysicsGround
	p.Air = AirState{}
	return true
}
