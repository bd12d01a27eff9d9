package entities

import "github.com/pthm-cable/tacore/simtypes"

// MapFeature is a static or corpse-derived world object (§3.2).
type MapFeature struct {
	Type     string
	Position simtypes.SimVector
	Rotation simtypes.SimAngle

	FootprintX, FootprintZ int
	Height                 simtypes.SimScalar

	Blocking      bool
	Indestructible bool
	Reclaimable   bool

	Metal  simtypes.SimScalar
	Energy simtypes.SimScalar

	// FromUnitCorpse is set when this feature was spawned from a unit
	// death rather than map load or gameplay (§3.2 lifecycle).
	FromUnitCorpse bool
}
