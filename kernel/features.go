package kernel

import (
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/simtypes"
)

// addFeature places a static or corpse-derived feature on the map and marks
// its footprint occupied (§3.2, §6.1), mirroring spawnUnit's
// insert-then-occupy sequencing.
func (k *Kernel) addFeature(featureType string, pos simtypes.SimVector, rot simtypes.SimAngle, fromCorpse bool) (entities.FeatureID, bool) {
	def, ok := k.content.Features[featureType]
	if !ok {
		return entities.FeatureID{}, false
	}

	cx, cz := terrainCell(pos)
	region := footprintRegion(cx, cz, def.FootprintX, def.FootprintZ)
	if def.Blocking && k.occupancy.RegionCollides(region) {
		return entities.FeatureID{}, false
	}

	f := entities.MapFeature{
		Type:           featureType,
		Position:       pos,
		Rotation:       rot,
		FootprintX:     def.FootprintX,
		FootprintZ:     def.FootprintZ,
		Height:         simtypes.NewSimScalar(def.Height),
		Blocking:       def.Blocking,
		Indestructible: def.Indestructible,
		Reclaimable:    def.Reclaimable,
		Metal:          simtypes.NewSimScalar(def.Metal),
		Energy:         simtypes.NewSimScalar(def.Energy),
		FromUnitCorpse: fromCorpse,
	}

	e := k.features.Insert(f)
	id := entities.NewFeatureID(e)
	if def.Blocking {
		k.occupancy.MarkFeature(region, id)
	}
	return id, true
}

// getFeature is the hard-error-on-miss accessor used by code that has
// already established the feature is alive this tick.
func (k *Kernel) getFeature(id entities.FeatureID) *entities.MapFeature {
	f, ok := k.features.Get(id.Raw())
	if !ok {
		panic("kernel: getFeature called for a feature that is no longer alive")
	}
	return f
}

// tryGetFeature is the fallible counterpart, for callers that must tolerate
// a feature having been reclaimed or destroyed since the handle was taken.
func (k *Kernel) tryGetFeature(id entities.FeatureID) (*entities.MapFeature, bool) {
	return k.features.Get(id.Raw())
}

// removeFeature clears a reclaimed or destroyed feature's occupancy and
// deletes its entity.
func (k *Kernel) removeFeature(id entities.FeatureID) {
	f, ok := k.features.Get(id.Raw())
	if !ok {
		return
	}
	if f.Blocking {
		cx, cz := terrainCell(f.Position)
		k.occupancy.ClearRegion(footprintRegion(cx, cz, f.FootprintX, f.FootprintZ))
	}
	k.features.Remove(id.Raw())
}

// tryAddUnit resolves unitType against content and checks footprint
// collision before inserting, the shared guard RequestUnitCreation and
// scenario setup both funnel through.
func (k *Kernel) tryAddUnit(unitType string, owner entities.PlayerID, pos simtypes.SimVector, rot simtypes.SimAngle) (entities.UnitID, bool) {
	def, ok := k.content.Units[unitType]
	if !ok {
		return entities.UnitID{}, false
	}
	cx, cz := terrainCell(pos)
	if k.cellsCollideExceptSelf(footprintRegion(cx, cz, def.FootprintX, def.FootprintZ), entities.UnitID{}) {
		return entities.UnitID{}, false
	}
	return k.spawnUnit(unitType, def, owner, pos, rot), true
}
