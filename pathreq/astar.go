package pathreq

import (
	"container/heap"
	"math"

	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/simtypes"
)

// TraversalGrid is the narrow view of the occupancy grid GridPlanner needs:
// its extent and whether a cell is open for ground movement. Satisfied
// structurally by *spatial.OccupiedGrid without pathreq importing spatial's
// cell types.
type TraversalGrid interface {
	Width() int
	Height() int
	TraversableAt(x, z int) bool
}

// GridPlanner is a synchronous grid A* implementation of Planner, for
// deployments with no external pathfinding service. One world unit maps to
// one grid cell, matching the kernel's occupancy grid resolution.
type GridPlanner struct {
	grid TraversalGrid

	openHeap  *nodeHeap
	closedSet map[int]struct{}
	cameFrom  map[int]int
	gScore    map[int]float64
}

// NewGridPlanner builds an A* planner over grid.
func NewGridPlanner(grid TraversalGrid) *GridPlanner {
	return &GridPlanner{
		grid:      grid,
		openHeap:  &nodeHeap{},
		closedSet: make(map[int]struct{}, 256),
		cameFrom:  make(map[int]int, 256),
		gScore:    make(map[int]float64, 256),
	}
}

type astarNode struct {
	x, z  int
	f     float64
	index int
}

type nodeHeap []*astarNode

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x interface{}) { n := x.(*astarNode); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[:n-1]
	return node
}

// Poll runs A* from from to to and returns the simplified waypoint list.
// Always resolves synchronously: there is no pending/async state to track,
// so the second return value is always true once a path (possibly empty,
// on failure) has been computed.
func (p *GridPlanner) Poll(unit entities.UnitID, from, to simtypes.SimVector) (*UnitPath, bool) {
	width, height := p.grid.Width(), p.grid.Height()
	sx, sz := clamp(int(from.X.Float64()), width), clamp(int(from.Z.Float64()), height)
	gx, gz := clamp(int(to.X.Float64()), width), clamp(int(to.Z.Float64()), height)

	if !p.grid.TraversableAt(sx, sz) {
		sx, sz = p.findNearestOpen(sx, sz, width, height)
		if sx < 0 {
			return &UnitPath{}, true
		}
	}
	if !p.grid.TraversableAt(gx, gz) {
		gx, gz = p.findNearestOpen(gx, gz, width, height)
		if gx < 0 {
			return &UnitPath{}, true
		}
	}

	if sx == gx && sz == gz {
		return &UnitPath{Waypoints: []simtypes.SimVector{to}}, true
	}

	waypoints := p.search(width, sx, sz, gx, gz)
	out := make([]simtypes.SimVector, len(waypoints))
	for i, wp := range waypoints {
		out[i] = simtypes.Vec(simtypes.NewSimScalar(float64(wp[0])+0.5), from.Y, simtypes.NewSimScalar(float64(wp[1])+0.5))
	}
	if len(out) > 0 {
		out[len(out)-1] = to
	}
	return &UnitPath{Waypoints: out}, true
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v >= max {
		return max - 1
	}
	return v
}

var neighborOffsets = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

func (p *GridPlanner) search(width, sx, sz, gx, gz int) [][2]int {
	*p.openHeap = (*p.openHeap)[:0]
	for k := range p.closedSet {
		delete(p.closedSet, k)
	}
	for k := range p.cameFrom {
		delete(p.cameFrom, k)
	}
	for k := range p.gScore {
		delete(p.gScore, k)
	}

	startID := sz*width + sx
	goalID := gz*width + gx

	p.gScore[startID] = 0
	heap.Push(p.openHeap, &astarNode{x: sx, z: sz, f: heuristic(sx, sz, gx, gz)})

	maxIterations := p.grid.Width() * p.grid.Height()
	for iterations := 0; p.openHeap.Len() > 0 && iterations < maxIterations; iterations++ {
		current := heap.Pop(p.openHeap).(*astarNode)
		currentID := current.z*width + current.x
		if currentID == goalID {
			return p.reconstructPath(width, startID, goalID)
		}
		if _, done := p.closedSet[currentID]; done {
			continue
		}
		p.closedSet[currentID] = struct{}{}

		for i, off := range neighborOffsets {
			nx, nz := current.x+off[0], current.z+off[1]
			if !p.grid.TraversableAt(nx, nz) {
				continue
			}
			if i >= 4 {
				if !p.grid.TraversableAt(current.x+off[0], current.z) || !p.grid.TraversableAt(current.x, current.z+off[1]) {
					continue
				}
			}
			neighborID := nz*width + nx
			if _, done := p.closedSet[neighborID]; done {
				continue
			}
			moveCost := 1.0
			if i >= 4 {
				moveCost = math.Sqrt2
			}
			tentativeG := p.gScore[currentID] + moveCost
			if existingG, ok := p.gScore[neighborID]; ok && tentativeG >= existingG {
				continue
			}
			p.cameFrom[neighborID] = currentID
			p.gScore[neighborID] = tentativeG
			heap.Push(p.openHeap, &astarNode{x: nx, z: nz, f: tentativeG + heuristic(nx, nz, gx, gz)})
		}
	}
	return nil
}

func heuristic(x1, z1, x2, z2 int) float64 {
	dx, dz := float64(x2-x1), float64(z2-z1)
	return math.Sqrt(dx*dx + dz*dz)
}

func (p *GridPlanner) reconstructPath(width, startID, goalID int) [][2]int {
	var ids []int
	current := goalID
	for current != startID {
		ids = append(ids, current)
		next, ok := p.cameFrom[current]
		if !ok {
			break
		}
		current = next
	}
	ids = append(ids, startID)

	path := make([][2]int, len(ids))
	for i, id := range ids {
		path[len(ids)-1-i] = [2]int{id % width, id / width}
	}
	return p.simplify(path)
}

// simplify drops waypoints that lie on a clear straight line between their
// neighbors, the same corner-cutting-safe line-of-sight reduction a raw
// grid search otherwise leaves in every path.
func (p *GridPlanner) simplify(path [][2]int) [][2]int {
	if len(path) <= 2 {
		return path
	}
	out := make([][2]int, 0, len(path))
	out = append(out, path[0])
	for i := 1; i < len(path)-1; i++ {
		if !p.hasLineOfSight(path[i-1], path[i+1]) {
			out = append(out, path[i])
		}
	}
	out = append(out, path[len(path)-1])
	return out
}

func (p *GridPlanner) hasLineOfSight(a, b [2]int) bool {
	dx, dz := float64(b[0]-a[0]), float64(b[1]-a[1])
	dist := math.Sqrt(dx*dx + dz*dz)
	if dist < 0.5 {
		return true
	}
	dx, dz = dx/dist, dz/dist
	steps := int(dist) + 1
	for i := 0; i <= steps; i++ {
		x := int(float64(a[0]) + dx*float64(i))
		z := int(float64(a[1]) + dz*float64(i))
		if !p.grid.TraversableAt(x, z) {
			return false
		}
	}
	return true
}

func (p *GridPlanner) findNearestOpen(x, z, width, height int) (int, int) {
	for radius := 1; radius < 16; radius++ {
		for dz := -radius; dz <= radius; dz++ {
			for dx := -radius; dx <= radius; dx++ {
				if abs(dx) != radius && abs(dz) != radius {
					continue
				}
				nx, nz := x+dx, z+dz
				if nx < 0 || nz < 0 || nx >= width || nz >= height {
					continue
				}
				if p.grid.TraversableAt(nx, nz) {
					return nx, nz
				}
			}
		}
	}
	return -1, -1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
