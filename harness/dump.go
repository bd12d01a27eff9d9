// Package harness wires a kernel up to the process-level concerns the core
// deliberately stays ignorant of: seeding, desync post-mortem dumps, and
// metrics export. Nothing here is read by the kernel; it only reads the
// kernel.
package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pthm-cable/tacore/entities"
)

// Dumpable is the narrow slice of kernel state a state dump walks, kept as
// a consumer-owned interface the same way behavior.World and
// lockstep.Applier are, so this package never imports kernel.
type Dumpable interface {
	GameTime() entities.GameTime
	Hash() uint64
	DumpUnits() []UnitSnapshot
	DumpPlayers() []PlayerSnapshot
}

// UnitSnapshot is one unit's state-dump row, in the same field order
// computeHash folds, so a human comparing a dump against the hash formula
// can follow along field-for-field.
type UnitSnapshot struct {
	Type               string
	Owner              entities.PlayerID
	X, Y, Z            int32
	Rotation           int32
	HitPoints          int32
	BuildTimeCompleted int32
	BehaviorState      uint8
	PhysicsKind        uint8
}

// PlayerSnapshot is one player's state-dump row.
type PlayerSnapshot struct {
	ID            entities.PlayerID
	Status        uint8
	Metal, Energy int32
	MetalStalled  bool
	EnergyStalled bool
}

// StateDump is the full §6.5 JSON document: gameTime, hash, and the
// ordered unit/player fields computeHash combined.
type StateDump struct {
	Tick    entities.GameTime
	Hash    uint64
	Players []PlayerSnapshot
	Units   []UnitSnapshot
}

// Dumper implements lockstep.StateDumper, writing a JSON snapshot to path
// on desync.
type Dumper struct {
	source Dumpable
}

// NewDumper wraps source, the kernel's DumpUnits/DumpPlayers/GameTime/Hash
// view.
func NewDumper(source Dumpable) *Dumper {
	return &Dumper{source: source}
}

// DumpState writes the state dump for tick to path as JSON, creating any
// missing parent directories.
func (d *Dumper) DumpState(path string, tick entities.GameTime) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("harness: creating dump dir: %w", err)
	}
	dump := StateDump{
		Tick:    tick,
		Hash:    d.source.Hash(),
		Players: d.source.DumpPlayers(),
		Units:   d.source.DumpUnits(),
	}
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("harness: marshaling state dump: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("harness: writing state dump: %w", err)
	}
	return nil
}
