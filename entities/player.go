package entities

import "github.com/pthm-cable/tacore/simtypes"

// PlayerStatus is Alive/Dead for the whole game (§3.2).
type PlayerStatus uint8

const (
	PlayerAlive PlayerStatus = iota
	PlayerDead
)

// GamePlayerInfo is the per-player resource and status record (§3.2, §4.1
// step 2, §4.2.3 cost accounting).
type GamePlayerInfo struct {
	ID     PlayerID
	Status PlayerStatus

	Metal        simtypes.SimScalar
	MaxMetal     simtypes.SimScalar
	Energy       simtypes.SimScalar
	MaxEnergy    simtypes.SimScalar

	MetalStalled  bool
	EnergyStalled bool

	// Pre-tick balances, snapshotted at the start of the once-per-second
	// recompute so the stall check reads balances from before this
	// second's production/consumption buffers were committed.
	preTickMetal  simtypes.SimScalar
	preTickEnergy simtypes.SimScalar

	// Desired vs actual consumption buffers, reset each resource cycle
	// (§4.1 addResourceDelta).
	desiredMetalDelta  simtypes.SimScalar
	desiredEnergyDelta simtypes.SimScalar
	actualMetalDelta   simtypes.SimScalar
	actualEnergyDelta  simtypes.SimScalar
}

// BeginResourceCycle snapshots pre-tick balances and clears the
// desired/actual buffers; called once per second before units run their
// resource deltas for that second (§4.1 step 2).
func (p *GamePlayerInfo) BeginResourceCycle() {
	p.preTickMetal = p.Metal
	p.preTickEnergy = p.Energy
	p.desiredMetalDelta = 0
	p.desiredEnergyDelta = 0
	p.actualMetalDelta = 0
	p.actualEnergyDelta = 0
}

// CommitResourceCycle applies the actual buffers to the balances, clamps to
// [0, Max], and recomputes the stall flags from the pre-tick balance.
func (p *GamePlayerInfo) CommitResourceCycle() {
	p.Metal = (p.Metal + p.actualMetalDelta).Clamp(simtypes.Zero, p.MaxMetal)
	p.Energy = (p.Energy + p.actualEnergyDelta).Clamp(simtypes.Zero, p.MaxEnergy)
	p.MetalStalled = p.preTickMetal <= simtypes.Zero
	p.EnergyStalled = p.preTickEnergy <= simtypes.Zero
}

// AddResourceDelta records a unit's desired/actual consumption and reports
// whether both resources were satisfied (§4.1). A negative apparent/actual
// value is consumption; positive is production. Consumption against a
// stalled resource is refused (actual delta is not recorded, false is
// returned for that resource).
func (p *GamePlayerInfo) AddResourceDelta(apparentMetal, actualMetal, apparentEnergy, actualEnergy simtypes.SimScalar) bool {
	p.desiredMetalDelta = p.desiredMetalDelta.Add(apparentMetal)
	p.desiredEnergyDelta = p.desiredEnergyDelta.Add(apparentEnergy)

	metalOK := true
	if actualMetal < simtypes.Zero && p.MetalStalled {
		metalOK = false
	} else {
		p.actualMetalDelta = p.actualMetalDelta.Add(actualMetal)
	}

	energyOK := true
	if actualEnergy < simtypes.Zero && p.EnergyStalled {
		energyOK = false
	} else {
		p.actualEnergyDelta = p.actualEnergyDelta.Add(actualEnergy)
	}

	return metalOK && energyOK
}
