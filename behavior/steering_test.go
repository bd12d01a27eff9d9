package behavior

import (
	"testing"

	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/simtypes"
)

func TestSeekPointsAtDestination(t *testing.T) {
	pos := simtypes.Vec(simtypes.Zero, simtypes.Zero, simtypes.Zero)
	dest := simtypes.Vec(simtypes.Zero, simtypes.Zero, simtypes.NewSimScalar(10))
	s := Seek(pos, dest, simtypes.NewSimScalar(5))
	if s.TargetSpeed != simtypes.NewSimScalar(5) {
		t.Errorf("target speed = %v, want 5", s.TargetSpeed.Float64())
	}
	if s.TargetAngle != 0 {
		t.Errorf("heading towards +Z should be angle 0, got %v", s.TargetAngle)
	}
}

func TestFollowPathDeceleratesOnFinalWaypoint(t *testing.T) {
	nav := &entities.NavigationState{
		HasPath:   true,
		Waypoints: []simtypes.SimVector{simtypes.Vec(simtypes.Zero, simtypes.Zero, simtypes.NewSimScalar(2))},
	}
	pos := simtypes.Vec(simtypes.Zero, simtypes.Zero, simtypes.Zero)
	result := FollowPath(pos, nav, simtypes.NewSimScalar(5), simtypes.NewSimScalar(5), simtypes.NewSimScalar(2))
	if result.Complete {
		t.Fatal("final waypoint should decelerate via Arrive, not complete outright")
	}
	if result.Steering.TargetSpeed >= simtypes.NewSimScalar(5) {
		t.Errorf("target speed close to a near waypoint should be braked below cruise, got %v", result.Steering.TargetSpeed.Float64())
	}
}

func TestFollowPathAdvancesIntermediateWaypoint(t *testing.T) {
	nav := &entities.NavigationState{
		HasPath: true,
		Waypoints: []simtypes.SimVector{
			simtypes.Vec(simtypes.Zero, simtypes.Zero, simtypes.NewSimScalar(1)),
			simtypes.Vec(simtypes.Zero, simtypes.Zero, simtypes.NewSimScalar(100)),
		},
	}
	pos := simtypes.Vec(simtypes.Zero, simtypes.Zero, simtypes.Zero)
	result := FollowPath(pos, nav, simtypes.NewSimScalar(5), simtypes.Zero, simtypes.NewSimScalar(2))
	if !result.Advanced || nav.WaypointIdx != 1 {
		t.Fatalf("expected advance to waypoint 1, got idx=%d advanced=%v", nav.WaypointIdx, result.Advanced)
	}
}

func TestApplySteeringAccelerates(t *testing.T) {
	pos := simtypes.Vec(simtypes.Zero, simtypes.Zero, simtypes.Zero)
	steering := entities.SteeringInfo{TargetAngle: 0, TargetSpeed: simtypes.NewSimScalar(10)}
	_, _, speed := ApplySteering(pos, 0, steering, simtypes.Zero, 4096, simtypes.NewSimScalar(2), simtypes.NewSimScalar(2), simtypes.One)
	if speed != simtypes.NewSimScalar(2) {
		t.Errorf("speed after one tick of accel 2 = %v, want 2", speed.Float64())
	}
}
