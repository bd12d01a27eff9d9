// Package lockstep implements the §4.4 command-and-hash protocol: per-player
// command buffers with RTT-derived target sizing, catch-up/coast pacing,
// and hash submission/verification against peers over a websocket
// transport. Nothing here touches kernel internals directly; it drives the
// kernel only through Runner's Applier seam, which also supplies the hash.
package lockstep

import (
	"github.com/pthm-cable/tacore/entities"
)

// UnitCommandKind discriminates PlayerUnitCommand's payload (§4.4.1).
type UnitCommandKind uint8

const (
	CmdIssueOrder UnitCommandKind = iota
	CmdStop
	CmdSetFireOrders
	CmdSetOnOff
	CmdModifyBuildQueue
)

// UnitCommand is one instruction targeting a single unit.
type UnitCommand struct {
	Kind UnitCommandKind

	// CmdIssueOrder
	Order entities.Order

	// CmdSetFireOrders
	FireOrders entities.FireOrders

	// CmdSetOnOff
	On bool

	// CmdModifyBuildQueue
	BuildType  string
	BuildCount int
}

// CommandKind discriminates the PlayerCommand sum type (§4.4.1): most
// commands target a unit, but pause/unpause are game-wide.
type CommandKind uint8

const (
	CommandUnit CommandKind = iota
	CommandPauseGame
	CommandUnpauseGame
)

// PlayerCommand is one lockstep-replicated instruction issued by a player
// (real or computer-controlled), committed into every participant's buffer
// for the same future tick before any of them apply it.
type PlayerCommand struct {
	Kind CommandKind

	Owner entities.PlayerID

	// CommandUnit
	Unit UnitCommand
	UnitID entities.UnitID
}

// Applier is the kernel-facing seam a Runner drives committed commands
// through, kept narrow the same way behavior.World is (§6.4's "consumer owns
// the interface" pattern): the lockstep package never imports kernel.
type Applier interface {
	ApplyCommand(cmd PlayerCommand)
	Tick() (over bool, winner entities.PlayerID)
	Hash() uint64
}
