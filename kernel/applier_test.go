package kernel

import (
	"testing"

	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/lockstep"
	"github.com/pthm-cable/tacore/pathreq"
	"github.com/pthm-cable/tacore/simtypes"
	"github.com/pthm-cable/tacore/spatial"

	. "github.com/smartystreets/goconvey/convey"
)

func newTestKernel() *Kernel {
	terrain := Terrain{
		Height:   spatial.NewGrid[simtypes.SimScalar](8, 8),
		SeaLevel: simtypes.NewSimScalar(-10),
	}
	content := Content{
		Units: map[string]*entities.UnitDefinition{
			"tank": {Name: "tank", HitPoints: 100, IsMobile: true, MaxSpeed: 2},
		},
		Weapons:  map[string]*entities.WeaponDefinition{},
		Features: map[string]*entities.FeatureDefinition{},
		Models:   map[string]*entities.UnitModelDefinition{},
	}
	return New(content, terrain, Config{MsPerTick: 33}, noopPlanner{})
}

type noopPlanner struct{}

func (noopPlanner) Poll(entities.UnitID, simtypes.SimVector, simtypes.SimVector) (*pathreq.UnitPath, bool) {
	return nil, false
}

func TestApplierPauseSuspendsTick(t *testing.T) {
	Convey("Given a kernel wrapped in an Applier", t, func() {
		k := newTestKernel()
		k.AddPlayer(entities.GamePlayerInfo{ID: 1, Status: entities.PlayerAlive})
		victory := func(*Kernel) (bool, entities.PlayerID) { return false, 0 }
		applier := NewApplier(k, victory)

		Convey("When CommandPauseGame is applied", func() {
			applier.ApplyCommand(lockstep.PlayerCommand{Kind: lockstep.CommandPauseGame})

			Convey("Tick does not advance game time", func() {
				before := k.GameTime()
				over, _ := applier.Tick()
				So(over, ShouldBeFalse)
				So(k.GameTime(), ShouldEqual, before)
			})

			Convey("Unpausing resumes advancement", func() {
				applier.ApplyCommand(lockstep.PlayerCommand{Kind: lockstep.CommandUnpauseGame})
				before := k.GameTime()
				applier.Tick()
				So(k.GameTime(), ShouldBeGreaterThan, before)
			})
		})
	})
}

func TestApplierRoutesUnitCommands(t *testing.T) {
	Convey("Given a spawned unit", t, func() {
		k := newTestKernel()
		k.AddPlayer(entities.GamePlayerInfo{ID: 1, Status: entities.PlayerAlive})
		id, ok := k.tryAddUnit("tank", 1, simtypes.Vec(simtypes.NewSimScalar(2), simtypes.Zero, simtypes.NewSimScalar(2)), 0)
		So(ok, ShouldBeTrue)

		victory := func(*Kernel) (bool, entities.PlayerID) { return false, 0 }
		applier := NewApplier(k, victory)

		Convey("CmdSetOnOff toggles Activated", func() {
			applier.ApplyCommand(lockstep.PlayerCommand{
				Kind: lockstep.CommandUnit, UnitID: id,
				Unit: lockstep.UnitCommand{Kind: lockstep.CmdSetOnOff, On: true},
			})
			u, ok := k.GetUnit(id)
			So(ok, ShouldBeTrue)
			So(u.Activated, ShouldBeTrue)
		})

		Convey("CmdIssueOrder pushes onto the order queue", func() {
			applier.ApplyCommand(lockstep.PlayerCommand{
				Kind: lockstep.CommandUnit, UnitID: id,
				Unit: lockstep.UnitCommand{Kind: lockstep.CmdIssueOrder, Order: entities.Order{Kind: entities.OrderMove}},
			})
			u, _ := k.GetUnit(id)
			So(u.Orders.Len(), ShouldEqual, 1)
		})

		Convey("CmdStop clears the order queue", func() {
			applier.ApplyCommand(lockstep.PlayerCommand{
				Kind: lockstep.CommandUnit, UnitID: id,
				Unit: lockstep.UnitCommand{Kind: lockstep.CmdIssueOrder, Order: entities.Order{Kind: entities.OrderMove}},
			})
			applier.ApplyCommand(lockstep.PlayerCommand{
				Kind: lockstep.CommandUnit, UnitID: id,
				Unit: lockstep.UnitCommand{Kind: lockstep.CmdStop},
			})
			u, _ := k.GetUnit(id)
			So(u.Orders.Len(), ShouldEqual, 0)
		})

		Convey("A command naming a dead unit is silently dropped", func() {
			bogus := entities.UnitID{}
			So(func() {
				applier.ApplyCommand(lockstep.PlayerCommand{
					Kind: lockstep.CommandUnit, UnitID: bogus,
					Unit: lockstep.UnitCommand{Kind: lockstep.CmdStop},
				})
			}, ShouldNotPanic)
		})
	})
}
