package kernel

import (
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/lockstep"
)

// Applier adapts a Kernel to lockstep.Applier, translating committed
// PlayerCommands into UnitState mutations (§4.4.1's command semantics)
// before each tick, and gating Tick itself on a pause flag so
// PlayerPauseGameCommand/PlayerUnpauseGameCommand can suspend the whole
// simulation without the Runner needing to know what "paused" means.
type Applier struct {
	k        *Kernel
	victory  VictoryCondition
	paused   bool
}

// NewApplier wraps k, advancing it with victory as the per-tick end
// condition.
func NewApplier(k *Kernel, victory VictoryCondition) *Applier {
	return &Applier{k: k, victory: victory}
}

// ApplyCommand mutates the targeted unit's order/fire-orders/activation
// state, or the factory's build queue, per the command's kind. A command
// naming a unit that is no longer alive (died before its tick arrived) is
// silently dropped, matching the rest of the kernel's fallible-lookup
// convention.
func (a *Applier) ApplyCommand(cmd lockstep.PlayerCommand) {
	switch cmd.Kind {
	case lockstep.CommandPauseGame:
		a.paused = true
		return
	case lockstep.CommandUnpauseGame:
		a.paused = false
		return
	}

	u, ok := a.k.GetUnit(cmd.UnitID)
	if !ok {
		return
	}

	switch cmd.Unit.Kind {
	case lockstep.CmdIssueOrder:
		u.Orders.Push(cmd.Unit.Order)
	case lockstep.CmdStop:
		u.Orders.Clear()
	case lockstep.CmdSetFireOrders:
		u.FireOrders = cmd.Unit.FireOrders
	case lockstep.CmdSetOnOff:
		u.Activated = cmd.Unit.On
	case lockstep.CmdModifyBuildQueue:
		if u.Factory != nil {
			u.Factory.ModifyBuildQueue(cmd.Unit.BuildType, cmd.Unit.BuildCount)
		}
	}
}

// Tick advances the wrapped kernel by one tick unless the game is paused,
// in which case it reports the game as still running with no tick
// performed (§4.4.1's pause semantics: commands still buffer, but
// simulation time does not advance).
func (a *Applier) Tick() (over bool, winner entities.PlayerID) {
	if a.paused {
		return false, 0
	}
	return a.k.Tick(a.victory)
}

// Hash exposes the wrapped kernel's desync-detection hash.
func (a *Applier) Hash() uint64 { return a.k.Hash() }
