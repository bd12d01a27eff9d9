package lockstep

import (
	"math"
	"time"

	"github.com/pthm-cable/tacore/entities"
)

const (
	tickInterval = 16 * time.Millisecond
	minRTT       = 16 * time.Millisecond
	maxRTT       = 2000 * time.Millisecond
)

// playerBuffer is one player's FIFO of committed command slots, one Vec per
// future tick (§4.4.2).
type playerBuffer struct {
	slots [][]PlayerCommand
}

func (b *playerBuffer) push(cmds []PlayerCommand) {
	b.slots = append(b.slots, cmds)
}

func (b *playerBuffer) pop() ([]PlayerCommand, bool) {
	if len(b.slots) == 0 {
		return nil, false
	}
	head := b.slots[0]
	b.slots = b.slots[1:]
	return head, true
}

func (b *playerBuffer) len() int { return len(b.slots) }

// targetFrames computes the §4.4.2 buffer target from the largest observed
// peer round-trip time: ceil((1.25*maxRtt + 200ms) / 16ms) + 1.
func targetFrames(maxObservedRTT time.Duration) int {
	clamped := maxObservedRTT
	if clamped < minRTT {
		clamped = minRTT
	}
	if clamped > maxRTT {
		clamped = maxRTT
	}
	budget := time.Duration(float64(clamped)*1.25) + 200*time.Millisecond
	frames := int(math.Ceil(float64(budget) / float64(tickInterval)))
	return frames + 1
}

// Buffers holds one FIFO per player, the per-tick collection point every
// Runner advances through ServiceTick.
type Buffers struct {
	order  []entities.PlayerID
	byID   map[entities.PlayerID]*playerBuffer
	isComp map[entities.PlayerID]bool
}

// NewBuffers allocates an empty buffer set.
func NewBuffers() *Buffers {
	return &Buffers{
		byID:   make(map[entities.PlayerID]*playerBuffer),
		isComp: make(map[entities.PlayerID]bool),
	}
}

// AddPlayer registers a participant; isComputer marks a locally-simulated
// AI whose commands never cross the network but still occupy a buffer slot
// per tick, per §4.4.2's "computer players" carve-out.
func (b *Buffers) AddPlayer(id entities.PlayerID, isComputer bool) {
	if _, ok := b.byID[id]; ok {
		return
	}
	b.order = append(b.order, id)
	b.byID[id] = &playerBuffer{}
	b.isComp[id] = isComputer
}

// Submit commits cmds as player's slot for the next unconsumed tick.
func (b *Buffers) Submit(player entities.PlayerID, cmds []PlayerCommand) {
	buf, ok := b.byID[player]
	if !ok {
		return
	}
	buf.push(cmds)
}

// TopUp pads every buffer below target with empty slots (§4.4.2's "if below
// target, top up with empty command slots" and the computer-player
// carve-out).
func (b *Buffers) TopUp(target int) {
	for _, id := range b.order {
		buf := b.byID[id]
		for buf.len() < target {
			buf.push(nil)
		}
	}
}

// Ready reports whether every player has a committed slot at the current
// head, the precondition a tick can advance under (§4.4.2).
func (b *Buffers) Ready() bool {
	for _, id := range b.order {
		if b.byID[id].len() == 0 {
			return false
		}
	}
	return true
}

// PopAll drains the current head slot from every player's buffer, in stable
// player order, for one tick's worth of commands.
func (b *Buffers) PopAll() []PlayerCommand {
	var out []PlayerCommand
	for _, id := range b.order {
		cmds, ok := b.byID[id].pop()
		if !ok {
			continue
		}
		out = append(out, cmds...)
	}
	return out
}

// Depth reports the local player's (or any given player's) buffer depth, the
// "≤ target frames buffered" check §4.4.2 submission gates on.
func (b *Buffers) Depth(player entities.PlayerID) int {
	buf, ok := b.byID[player]
	if !ok {
		return 0
	}
	return buf.len()
}
