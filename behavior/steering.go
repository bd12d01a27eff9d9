// Package behavior implements the per-unit state machine (§4.2): order
// queue processing, steering, the weapon and factory FSMs, resource
// bookkeeping, and damage application.
package behavior

import (
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/simtypes"
)

// Seek returns steering that points straight at dest at full speed (§4.2.1).
func Seek(pos simtypes.SimVector, dest simtypes.SimVector, maxSpeed simtypes.SimScalar) entities.SteeringInfo {
	return entities.SteeringInfo{
		TargetAngle: pos.HeadingTo(dest),
		TargetSpeed: maxSpeed,
	}
}

// Arrive is Seek with speed scaled down over the braking distance as the
// unit nears dest (§4.2.1).
func Arrive(pos simtypes.SimVector, dest simtypes.SimVector, maxSpeed, currentSpeed, brakeRate simtypes.SimScalar) entities.SteeringInfo {
	s := Seek(pos, dest, maxSpeed)
	dist := pos.DistXZ(dest)
	brakingDistance := currentSpeed.Mul(currentSpeed).Div(brakeRate.Mul(simtypes.NewSimScalar(2)))
	if brakingDistance <= 0 {
		return s
	}
	scale := dist.Div(brakingDistance).Clamp(simtypes.Zero, simtypes.One)
	s.TargetSpeed = s.TargetSpeed.Mul(scale)
	return s
}

const intermediateWaypointAdvance = 16

// FollowPathResult reports what FollowPath decided this tick.
type FollowPathResult struct {
	Steering entities.SteeringInfo
	Complete bool
	Advanced bool
}

// FollowPath drives steering along a waypoint list (§4.2.1): within 16 units
// of an intermediate waypoint it advances to the next; on the final waypoint
// it decelerates smoothly via Arrive rather than cutting propulsion at a
// fixed radius, so the unit actually closes the remaining distance instead
// of coasting to a stop short of the goal. Complete is only set once the
// waypoint list itself is exhausted (or never had one); goTo's own distance
// check against the order's destination is what decides arrival.
func FollowPath(pos simtypes.SimVector, nav *entities.NavigationState, maxSpeed, currentSpeed, brakeRate simtypes.SimScalar) FollowPathResult {
	if !nav.HasPath || nav.WaypointIdx >= len(nav.Waypoints) {
		return FollowPathResult{Complete: true}
	}
	wp := nav.Waypoints[nav.WaypointIdx]
	dist := pos.DistXZ(wp)
	isFinal := nav.WaypointIdx == len(nav.Waypoints)-1

	if isFinal {
		return FollowPathResult{Steering: Arrive(pos, wp, maxSpeed, currentSpeed, brakeRate)}
	}

	if dist.Float64() <= intermediateWaypointAdvance {
		nav.WaypointIdx++
		return FollowPathResult{Advanced: true, Steering: Seek(pos, wp, maxSpeed)}
	}
	return FollowPathResult{Steering: Seek(pos, wp, maxSpeed)}
}

// ApplySteering turns towards targetAngle by up to turnRate (wrap-safe
// shortest direction) and moves currentSpeed towards targetSpeed at the
// given acceleration/brake rate, returning the new heading, speed, and the
// candidate new position for this tick (§4.2 step 6).
func ApplySteering(
	pos simtypes.SimVector, heading simtypes.SimAngle,
	steering entities.SteeringInfo, currentSpeed simtypes.SimScalar,
	turnRate uint16, accel, brakeRate simtypes.SimScalar, dt simtypes.SimScalar,
) (newPos simtypes.SimVector, newHeading simtypes.SimAngle, newSpeed simtypes.SimScalar) {
	newHeading = simtypes.TurnTowards(heading, steering.TargetAngle, turnRate)

	if currentSpeed < steering.TargetSpeed {
		newSpeed = currentSpeed.Add(accel.Mul(dt))
		if newSpeed > steering.TargetSpeed {
			newSpeed = steering.TargetSpeed
		}
	} else {
		newSpeed = currentSpeed.Sub(brakeRate.Mul(dt))
		if newSpeed < steering.TargetSpeed {
			newSpeed = steering.TargetSpeed
		}
	}

	rad := newHeading.Radians()
	dir := simtypes.Vec(rad.Sin(), simtypes.Zero, rad.Cos())
	newPos = pos.Add(dir.Scale(newSpeed.Mul(dt)))
	return
}
