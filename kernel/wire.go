package kernel

import "github.com/pthm-cable/tacore/entities"

// UnitSeq and UnitBySeq expose entities.Store's creation-order sequence
// numbers, the stable cross-participant unit reference the lockstep wire
// protocol encodes in place of the process-local ecs.Entity handle
// (lockstep.WireResolver).
func (k *Kernel) UnitSeq(id entities.UnitID) (uint32, bool) {
	n, ok := k.units.Seq(id.Raw())
	return uint32(n), ok
}

func (k *Kernel) UnitBySeq(seq uint32) (entities.UnitID, bool) {
	e, ok := k.units.BySeq(int(seq))
	if !ok {
		return entities.UnitID{}, false
	}
	return entities.NewUnitID(e), true
}
