package kernel

import (
	"github.com/mlange-42/ark/ecs"
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/harness"
)

// DumpUnits and DumpPlayers satisfy harness.Dumpable, walking state in the
// same field order computeHash folds it in so a state dump can be read
// alongside the hash formula (§6.5).
func (k *Kernel) DumpUnits() []harness.UnitSnapshot {
	var out []harness.UnitSnapshot
	k.units.Each(func(e ecs.Entity, u *entities.UnitState) {
		out = append(out, harness.UnitSnapshot{
			Type:               u.Type,
			Owner:              u.Owner,
			X:                  int32(u.Position.X),
			Y:                  int32(u.Position.Y),
			Z:                  int32(u.Position.Z),
			Rotation:           int32(u.Rotation),
			HitPoints:          u.HitPoints,
			BuildTimeCompleted: u.BuildTimeCompleted,
			BehaviorState:      uint8(u.BehaviorState),
			PhysicsKind:        uint8(u.Physics.Kind),
		})
	})
	return out
}

// AllUnitIDs returns every live unit's ID in insertion order, for
// renderquery.Source's full-scene redraw path.
func (k *Kernel) AllUnitIDs() []entities.UnitID {
	var out []entities.UnitID
	k.units.Each(func(e ecs.Entity, _ *entities.UnitState) {
		out = append(out, entities.NewUnitID(e))
	})
	return out
}

func (k *Kernel) DumpPlayers() []harness.PlayerSnapshot {
	out := make([]harness.PlayerSnapshot, 0, len(k.playerOrder))
	for _, id := range k.playerOrder {
		p := k.players[id]
		out = append(out, harness.PlayerSnapshot{
			ID:            p.ID,
			Status:        uint8(p.Status),
			Metal:         int32(p.Metal),
			Energy:        int32(p.Energy),
			MetalStalled:  p.MetalStalled,
			EnergyStalled: p.EnergyStalled,
		})
	}
	return out
}
