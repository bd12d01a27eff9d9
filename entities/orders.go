package entities

import "github.com/pthm-cable/tacore/simtypes"

// OrderKind discriminates the variants of a queued unit order (§4.2).
type OrderKind uint8

const (
	OrderMove OrderKind = iota
	OrderAttack
	OrderBuild
	OrderCompleteBuild
	OrderGuard
	OrderBuggerOff
)

// AttackTargetKind discriminates an AttackOrder's polymorphic target.
type AttackTargetKind uint8

const (
	AttackTargetUnit AttackTargetKind = iota
	AttackTargetGround
)

// Rect is an axis-aligned XZ rectangle, used by BuggerOffOrder.
type Rect struct {
	MinX, MinZ, MaxX, MaxZ simtypes.SimScalar
}

// Expand grows the rectangle by `by` on every side, the shape of the
// BuggerOffOrder footprint-expansion rule (3x footprint - 4). The bugger-off
// order pump does not call it.
func (r Rect) Expand(by simtypes.SimScalar) Rect {
	return Rect{
		MinX: r.MinX.Sub(by), MinZ: r.MinZ.Sub(by),
		MaxX: r.MaxX.Add(by), MaxZ: r.MaxZ.Add(by),
	}
}

// Contains reports whether p (XZ only) lies within the rectangle.
func (r Rect) Contains(p simtypes.SimVector) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Z >= r.MinZ && p.Z <= r.MaxZ
}

// Order is one queued instruction. Exactly one of the target fields is
// meaningful, selected by Kind — a tagged sum type expressed as a flat
// struct, per the Design Notes' "language-native discriminated union"
// guidance, discriminated by Kind rather than via an interface.
type Order struct {
	Kind OrderKind

	// OrderMove, OrderBuild, and ground-target OrderAttack position.
	Pos simtypes.SimVector

	// OrderAttack
	AttackTargetKind AttackTargetKind
	Target           UnitID

	// OrderBuild
	BuildType string

	// OrderCompleteBuild, OrderGuard
	TargetUnit UnitID

	// OrderBuggerOff
	Zone Rect

	// Queued is false for an Immediate order (replaces the queue), true for
	// one appended with IssueOrder(order, Queued).
	Queued bool
}

// OrderQueue is a FIFO of orders; the front is the current order (§3.3).
type OrderQueue struct {
	items []Order
}

// Front returns the current order, or (Order{}, false) if the queue is empty.
func (q *OrderQueue) Front() (Order, bool) {
	if len(q.items) == 0 {
		return Order{}, false
	}
	return q.items[0], true
}

// Pop removes the current order. A no-op on an empty queue.
func (q *OrderQueue) Pop() {
	if len(q.items) == 0 {
		return
	}
	q.items = q.items[1:]
}

// Push appends an order to the back (Queued) or replaces the whole queue
// with a single order (Immediate).
func (q *OrderQueue) Push(o Order) {
	if o.Queued {
		q.items = append(q.items, o)
		return
	}
	q.items = q.items[:0]
	q.items = append(q.items, o)
}

// Clear empties the queue. Idempotent: calling Clear twice leaves the same
// (empty) state, satisfying the idempotence property in §8.
func (q *OrderQueue) Clear() {
	q.items = q.items[:0]
}

// Len reports the number of queued orders, including the current one.
func (q *OrderQueue) Len() int { return len(q.items) }
