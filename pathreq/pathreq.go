// Package pathreq implements the kernel-facing half of the pathfinding
// contract (§6.2): a FIFO request queue and storage for asynchronous
// results. The planner is supplied by the caller through the Planner
// interface; GridPlanner (astar.go) is a synchronous grid A*
// implementation of it.
package pathreq

import (
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/simtypes"
)

// UnitPath is the planner's output for one request.
type UnitPath struct {
	Waypoints    []simtypes.SimVector
	CreationTime entities.GameTime
}

// Planner is the external service contract: given a unit ID (its goal is
// read from NavigationState.DesiredDestination at service time), it may
// return a completed path or nothing if still computing.
type Planner interface {
	// Poll is called once per serviced request; implementations are free to
	// compute synchronously or return a pending result from a background
	// worker. A `nil, false` result means "still computing, try again".
	Poll(unit entities.UnitID, from, to simtypes.SimVector) (*UnitPath, bool)
}

// Queue is the kernel's FIFO of pending path requests (§4.1 requestPath).
type Queue struct {
	order   []entities.UnitID
	pending map[entities.UnitID]bool
}

// NewQueue allocates an empty request queue.
func NewQueue() *Queue {
	return &Queue{pending: make(map[entities.UnitID]bool)}
}

// Request enqueues unit, moving it to the back if it already had a pending
// request (fairness: a duplicate request re-queues rather than piling up).
func (q *Queue) Request(unit entities.UnitID) {
	if q.pending[unit] {
		q.removeFromOrder(unit)
	}
	q.pending[unit] = true
	q.order = append(q.order, unit)
}

func (q *Queue) removeFromOrder(unit entities.UnitID) {
	for i, u := range q.order {
		if u == unit {
			q.order = append(q.order[:i], q.order[i+1:]...)
			return
		}
	}
}

// ServiceOne services the front of the queue against planner, storing the
// result into dest if one is produced (via the caller-supplied store
// callback) and popping the request either way — a pending "still
// computing" result is expected to re-request itself through the normal
// navigation flow, matching "the kernel may re-queue a unit, in which case
// the old pending result is discarded".
func (q *Queue) ServiceOne(planner Planner, from, to func(entities.UnitID) simtypes.SimVector, store func(entities.UnitID, *UnitPath)) {
	if len(q.order) == 0 {
		return
	}
	unit := q.order[0]
	q.order = q.order[1:]
	delete(q.pending, unit)

	path, ok := planner.Poll(unit, from(unit), to(unit))
	if ok {
		store(unit, path)
	}
}

// Len reports the number of pending requests.
func (q *Queue) Len() int { return len(q.order) }
