package entities

import "github.com/pthm-cable/tacore/simtypes"

// FactoryStateKind discriminates Idle/CreatingUnit/Building (§4.2.3).
type FactoryStateKind uint8

const (
	FactoryIdle FactoryStateKind = iota
	FactoryCreatingUnit
	FactoryBuilding
)

// CreationStatus is the outcome of a unit-creation attempt.
type CreationStatus uint8

const (
	CreationPending CreationStatus = iota
	CreationDone
	CreationFailed
)

// BuildQueueEntry is one (type, count) entry in a factory's build queue.
type BuildQueueEntry struct {
	Type  string
	Count int
}

// FactoryState is a factory unit's FSM slot.
type FactoryState struct {
	Kind FactoryStateKind

	Queue []BuildQueueEntry

	// FactoryCreatingUnit. CreatingStatus is committed by the kernel's
	// deferred creation pass (§4.2.3); CreatingResultUnit is only valid
	// once CreatingStatus == CreationDone.
	CreatingType       string
	CreatingOwner      PlayerID
	CreatingPos        simtypes.SimVector
	CreatingRot        simtypes.SimAngle
	CreatingStatus     CreationStatus
	CreatingResultUnit UnitID

	// FactoryBuilding
	HasTarget  bool
	TargetUnit UnitID

	NanoParticleOrigin    simtypes.SimVector
	HasNanoParticleOrigin bool
}

// ModifyBuildQueue appends (count > 0) or removes from the back (count < 0)
// up to -count instances of type, per §4.2.4.
func (f *FactoryState) ModifyBuildQueue(unitType string, count int) {
	if count > 0 {
		f.Queue = append(f.Queue, BuildQueueEntry{Type: unitType, Count: count})
		return
	}
	remaining := -count
	for i := len(f.Queue) - 1; i >= 0 && remaining > 0; i-- {
		if f.Queue[i].Type != unitType {
			continue
		}
		if f.Queue[i].Count <= remaining {
			remaining -= f.Queue[i].Count
			f.Queue = append(f.Queue[:i], f.Queue[i+1:]...)
		} else {
			f.Queue[i].Count -= remaining
			remaining = 0
		}
	}
}

// QueueTotal sums the queued count for unitType, for GUI feedback.
func (f *FactoryState) QueueTotal(unitType string) int {
	total := 0
	for _, e := range f.Queue {
		if e.Type == unitType {
			total += e.Count
		}
	}
	return total
}
