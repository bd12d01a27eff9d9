package lockstep

import (
	"github.com/pthm-cable/tacore/entities"
	"github.com/pthm-cable/tacore/simtypes"
)

// WireResolver translates between a participant's process-local UnitID and
// the creation-order sequence number that is stable across participants
// running the same deterministic lockstep sequence (§5's "this order is
// stable across participants as long as insertions are issued in the same
// order" guarantee, extended from the unit map's iteration order to a
// per-unit wire reference).
type WireResolver interface {
	UnitSeq(id entities.UnitID) (uint32, bool)
	UnitBySeq(seq uint32) (entities.UnitID, bool)
}

// wireOrder is Order's JSON-safe shape: UnitID fields become sequence
// numbers, resolved against the local kernel before/after the wire.
type wireOrder struct {
	Kind             entities.OrderKind
	X, Y, Z          int32 // Pos, fixed-point Q16.16
	AttackTargetKind entities.AttackTargetKind
	Target           uint32
	HasTarget        bool
	BuildType        string
	TargetUnit       uint32
	HasTargetUnit    bool
	ZoneMinX, ZoneMinZ, ZoneMaxX, ZoneMaxZ int32
	Queued bool
}

type wireUnitCommand struct {
	Kind       UnitCommandKind
	Order      wireOrder
	FireOrders entities.FireOrders
	On         bool
	BuildType  string
	BuildCount int
}

// WireCommand is PlayerCommand's JSON wire shape, sent as one framed
// message per §4.4.1's command model.
type WireCommand struct {
	Kind  CommandKind
	Owner entities.PlayerID
	Unit  wireUnitCommand
	UnitRef uint32
	HasUnitRef bool
}

// EncodeCommand converts a PlayerCommand into its wire form using r to
// resolve UnitIDs to sequence numbers.
func EncodeCommand(cmd PlayerCommand, r WireResolver) WireCommand {
	w := WireCommand{Kind: cmd.Kind, Owner: cmd.Owner}
	if seq, ok := r.UnitSeq(cmd.UnitID); ok {
		w.UnitRef = seq
		w.HasUnitRef = true
	}
	w.Unit = wireUnitCommand{
		Kind:       cmd.Unit.Kind,
		FireOrders: cmd.Unit.FireOrders,
		On:         cmd.Unit.On,
		BuildType:  cmd.Unit.BuildType,
		BuildCount: cmd.Unit.BuildCount,
	}
	o := cmd.Unit.Order
	wo := wireOrder{
		Kind:             o.Kind,
		X:                int32(o.Pos.X),
		Y:                int32(o.Pos.Y),
		Z:                int32(o.Pos.Z),
		AttackTargetKind: o.AttackTargetKind,
		BuildType:        o.BuildType,
		Queued:           o.Queued,
		ZoneMinX:         int32(o.Zone.MinX),
		ZoneMinZ:         int32(o.Zone.MinZ),
		ZoneMaxX:         int32(o.Zone.MaxX),
		ZoneMaxZ:         int32(o.Zone.MaxZ),
	}
	if seq, ok := r.UnitSeq(o.Target); ok {
		wo.Target = seq
		wo.HasTarget = true
	}
	if seq, ok := r.UnitSeq(o.TargetUnit); ok {
		wo.TargetUnit = seq
		wo.HasTargetUnit = true
	}
	w.Unit.Order = wo
	return w
}

// DecodeCommand reconstructs a PlayerCommand from its wire form. A unit
// reference that does not yet resolve locally (the peer's creation ran
// ahead of this participant's) is reported by returning ok=false, leaving
// the caller to re-queue the command rather than drop it.
func DecodeCommand(w WireCommand, r WireResolver) (PlayerCommand, bool) {
	cmd := PlayerCommand{Kind: w.Kind, Owner: w.Owner}
	if w.HasUnitRef {
		id, ok := r.UnitBySeq(w.UnitRef)
		if !ok {
			return PlayerCommand{}, false
		}
		cmd.UnitID = id
	}
	cmd.Unit = UnitCommand{
		Kind:       w.Unit.Kind,
		FireOrders: w.Unit.FireOrders,
		On:         w.Unit.On,
		BuildType:  w.Unit.BuildType,
		BuildCount: w.Unit.BuildCount,
	}
	wo := w.Unit.Order
	order := entities.Order{
		Kind:             wo.Kind,
		AttackTargetKind: wo.AttackTargetKind,
		BuildType:        wo.BuildType,
		Queued:           wo.Queued,
	}
	order.Pos.X, order.Pos.Y, order.Pos.Z = simtypes.FromFixed(wo.X), simtypes.FromFixed(wo.Y), simtypes.FromFixed(wo.Z)
	order.Zone.MinX, order.Zone.MinZ = simtypes.FromFixed(wo.ZoneMinX), simtypes.FromFixed(wo.ZoneMinZ)
	order.Zone.MaxX, order.Zone.MaxZ = simtypes.FromFixed(wo.ZoneMaxX), simtypes.FromFixed(wo.ZoneMaxZ)
	if wo.HasTarget {
		id, ok := r.UnitBySeq(wo.Target)
		if !ok {
			return PlayerCommand{}, false
		}
		order.Target = id
	}
	if wo.HasTargetUnit {
		id, ok := r.UnitBySeq(wo.TargetUnit)
		if !ok {
			return PlayerCommand{}, false
		}
		order.TargetUnit = id
	}
	cmd.Unit.Order = order
	return cmd, true
}
