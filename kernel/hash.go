package kernel

import (
	"github.com/mlange-42/ark/ecs"
	"github.com/pthm-cable/tacore/entities"
)

// hashCombine folds v into seed the way Boost's hash_combine does: a
// multiplicative constant derived from the golden ratio plus shifts,
// chosen so the same sequence of combine calls always produces the same
// 64-bit result regardless of platform (§6.5).
func hashCombine(seed uint64, v uint64) uint64 {
	seed ^= v + 0x9e3779b97f4a7c15 + (seed << 6) + (seed >> 2)
	return seed
}

func hashInt32(seed uint64, v int32) uint64  { return hashCombine(seed, uint64(uint32(v))) }
func hashInt64(seed uint64, v int64) uint64  { return hashCombine(seed, uint64(v)) }
func hashUint8(seed uint64, v uint8) uint64  { return hashCombine(seed, uint64(v)) }
func hashBool(seed uint64, v bool) uint64 {
	if v {
		return hashCombine(seed, 1)
	}
	return hashCombine(seed, 0)
}
func hashString(seed uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		seed = hashCombine(seed, uint64(s[i]))
	}
	return seed
}

// computeHash folds the kernel's gameTime, every player's resource/status
// record, and every unit's sorted-by-id type/position/rotation/hitPoints/
// buildTimeCompleted/behavior-and-physics-state discriminants into one
// deterministic 64-bit desync-detection hash (§6.5). Units are iterated in
// the store's stable insertion order, which matches the sorted-by-id
// requirement because UnitID is assigned monotonically by the ark world.
func (k *Kernel) computeHash() uint64 {
	h := uint64(1469598103934665603) // FNV offset basis, an arbitrary but fixed starting seed

	h = hashInt64(h, int64(k.gameTime))

	for _, id := range k.playerOrder {
		p := k.players[id]
		h = hashUint8(h, uint8(p.ID))
		h = hashUint8(h, uint8(p.Status))
		h = hashInt32(h, int32(p.Metal))
		h = hashInt32(h, int32(p.Energy))
		h = hashBool(h, p.MetalStalled)
		h = hashBool(h, p.EnergyStalled)
	}

	k.units.Each(func(id ecs.Entity, u *entities.UnitState) {
		h = hashString(h, u.Type)
		h = hashUint8(h, uint8(u.Owner))
		h = hashInt32(h, int32(u.Position.X))
		h = hashInt32(h, int32(u.Position.Y))
		h = hashInt32(h, int32(u.Position.Z))
		h = hashInt32(h, int32(u.Rotation))
		h = hashInt32(h, u.HitPoints)
		h = hashInt32(h, u.BuildTimeCompleted)
		h = hashUint8(h, uint8(u.BehaviorState))
		h = hashUint8(h, uint8(u.Physics.Kind))
	})

	return h
}
