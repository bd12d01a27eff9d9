package pathreq

import (
	"testing"

	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/simtypes"
)

// openGrid is an all-traversable TraversalGrid of the given size, with an
// optional rectangular blocked region for obstacle tests.
type openGrid struct {
	width, height      int
	blockedX1, blockedZ1,
	blockedX2, blockedZ2 int
}

func (g *openGrid) Width() int  { return g.width }
func (g *openGrid) Height() int { return g.height }
func (g *openGrid) TraversableAt(x, z int) bool {
	if x < 0 || z < 0 || x >= g.width || z >= g.height {
		return false
	}
	return x < g.blockedX1 || x > g.blockedX2 || z < g.blockedZ1 || z > g.blockedZ2
}

func TestGridPlannerSimplePath(t *testing.T) {
	grid := &openGrid{width: 40, height: 40}
	planner := NewGridPlanner(grid)

	from := simtypes.Vec(simtypes.NewSimScalar(2), simtypes.Zero, simtypes.NewSimScalar(2))
	to := simtypes.Vec(simtypes.NewSimScalar(30), simtypes.Zero, simtypes.NewSimScalar(20))

	path, ok := planner.Poll(entities.UnitID{}, from, to)
	if !ok {
		t.Fatal("expected a resolved poll")
	}
	if len(path.Waypoints) == 0 {
		t.Fatal("expected at least one waypoint")
	}
	last := path.Waypoints[len(path.Waypoints)-1]
	if last != to {
		t.Errorf("last waypoint = %v, want exactly the goal %v", last, to)
	}
}

func TestGridPlannerRoutesAroundWall(t *testing.T) {
	grid := &openGrid{width: 40, height: 40, blockedX1: 18, blockedX2: 22, blockedZ1: 0, blockedZ2: 30}
	planner := NewGridPlanner(grid)

	from := simtypes.Vec(simtypes.NewSimScalar(5), simtypes.Zero, simtypes.NewSimScalar(5))
	to := simtypes.Vec(simtypes.NewSimScalar(35), simtypes.Zero, simtypes.NewSimScalar(5))

	path, ok := planner.Poll(entities.UnitID{}, from, to)
	if !ok || len(path.Waypoints) == 0 {
		t.Fatal("expected a path around the wall")
	}
	for _, wp := range path.Waypoints {
		x, z := int(wp.X.Float64()), int(wp.Z.Float64())
		if !grid.TraversableAt(x, z) {
			t.Errorf("waypoint %v falls on a blocked cell", wp)
		}
	}
}

func TestGridPlannerSameCellSingleWaypoint(t *testing.T) {
	grid := &openGrid{width: 10, height: 10}
	planner := NewGridPlanner(grid)

	pos := simtypes.Vec(simtypes.NewSimScalar(3), simtypes.Zero, simtypes.NewSimScalar(3))
	path, ok := planner.Poll(entities.UnitID{}, pos, pos)
	if !ok {
		t.Fatal("expected a resolved poll")
	}
	if len(path.Waypoints) != 1 {
		t.Errorf("expected a single-waypoint path for a same-cell request, got %d", len(path.Waypoints))
	}
}
