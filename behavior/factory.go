package behavior

import (
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/simtypes"
)

// UpdateFactory drives a factory unit's build-queue pump (§4.2.4, §4.2.3):
// Idle pulls the next queue entry into CreatingUnit, CreatingUnit polls the
// kernel's deferred spawn decision, and Building charges resources into an
// in-progress unit's BuildTimeCompleted until it finishes.
func UpdateFactory(self entities.UnitID, u *entities.UnitState, w World) {
	f := u.Factory
	if f == nil {
		return
	}

	switch f.Kind {
	case entities.FactoryIdle:
		if len(f.Queue) == 0 {
			return
		}
		entry := &f.Queue[0]
		def, ok := w.UnitDefinition(entry.Type)
		if !ok {
			f.ModifyBuildQueue(entry.Type, -entry.Count)
			return
		}
		f.CreatingType = entry.Type
		f.CreatingOwner = u.Owner
		f.CreatingPos = spawnPositionFor(u, def)
		f.CreatingRot = u.Rotation
		f.CreatingStatus = entities.CreationPending
		f.Kind = entities.FactoryCreatingUnit
		w.RequestUnitCreation(self, f.CreatingType, f.CreatingOwner, f.CreatingPos, f.CreatingRot)

	case entities.FactoryCreatingUnit:
		switch f.CreatingStatus {
		case entities.CreationPending:
			// Queued; the kernel's deferred creation pass resolves it at
			// the end of this tick (§4.1 step 8).
		case entities.CreationFailed:
			// Footprint blocked when the kernel tried to commit it; retry
			// next tick at the same spot.
			f.CreatingStatus = entities.CreationPending
			w.RequestUnitCreation(self, f.CreatingType, f.CreatingOwner, f.CreatingPos, f.CreatingRot)
		case entities.CreationDone:
			f.ModifyBuildQueue(f.CreatingType, -1)
			f.Kind = entities.FactoryBuilding
			f.HasTarget = true
			f.TargetUnit = f.CreatingResultUnit
			f.CreatingType = ""
		}

	case entities.FactoryBuilding:
		if !f.HasTarget {
			f.Kind = entities.FactoryIdle
			return
		}
		target, ok := w.GetUnit(f.TargetUnit)
		if !ok || !target.IsBeingBuilt() {
			f.HasTarget = false
			f.Kind = entities.FactoryIdle
			return
		}
		advanceFactoryBuild(self, u, f, target, w)
	}
}

func advanceFactoryBuild(self entities.UnitID, u *entities.UnitState, f *entities.FactoryState, target *entities.UnitState, w World) {
	builderDef, _ := w.UnitDefinition(u.Type)
	targetDef, ok := w.UnitDefinition(target.Type)
	if !ok || builderDef == nil || targetDef.BuildTime == 0 {
		return
	}

	rate := simtypes.NewSimScalar(builderDef.WorkerTimePerTick)
	fraction := rate.Div(simtypes.NewSimScalar(float64(targetDef.BuildTime)))
	metalCost := simtypes.NewSimScalar(targetDef.BuildCostMetal).Mul(fraction)
	energyCost := simtypes.NewSimScalar(targetDef.BuildCostEnergy).Mul(fraction)

	w.AddResourceDelta(u.Owner, metalCost.Neg(), metalCost.Neg(), energyCost.Neg(), energyCost.Neg())

	target.BuildTimeCompleted += int32(rate.Float64())
	if target.BuildTimeCompleted > targetDef.BuildTime {
		target.BuildTimeCompleted = targetDef.BuildTime
	}
	if !target.IsBeingBuilt() {
		f.HasTarget = false
		f.Kind = entities.FactoryIdle
		w.EmitEvent(entities.Event{Kind: entities.EventUnitComplete, Unit: f.TargetUnit})
	}
}

// spawnPositionFor places a new unit just outside the factory's footprint,
// along its facing, matching the "spawn at the yard exit" convention.
func spawnPositionFor(u *entities.UnitState, def *entities.UnitDefinition) simtypes.SimVector {
	offset := simtypes.NewSimScalar(float64(def.FootprintZ)*4 + 16)
	rad := u.Rotation.Radians()
	dir := simtypes.Vec(rad.Sin(), simtypes.Zero, rad.Cos())
	return u.Position.Add(dir.Scale(offset))
}
