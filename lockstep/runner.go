package lockstep

import (
	"errors"
	"fmt"
	"time"

	"github.com/pthm-cable/tacore/entities"
)

// ErrNotReady is returned by ServiceTick when at least one player's buffer
// has no committed slot at the current head (§4.4.2).
var ErrNotReady = errors.New("lockstep: buffer underrun, not every player has a committed slot")

// DesyncError reports a hash mismatch between this participant and a peer
// for the same tick (§4.4.4). StateDumpPath names the file the state dump
// was written to before this error was returned.
type DesyncError struct {
	Tick          entities.GameTime
	LocalHash     uint64
	PeerHash      uint64
	PeerID        entities.PlayerID
	StateDumpPath string
}

func (e *DesyncError) Error() string {
	return fmt.Sprintf("lockstep: desync at tick %d: local=%#x peer=%#x (player %d), state dumped to %s",
		e.Tick, e.LocalHash, e.PeerHash, e.PeerID, e.StateDumpPath)
}

// HashSubmission is one participant's hash claim for one tick.
type HashSubmission struct {
	Player entities.PlayerID
	Tick   entities.GameTime
	Hash   uint64
}

// hashLedger accumulates peer submissions per tick; check compares whatever
// has arrived for a tick against the local hash, without waiting for every
// known player to report (§4.4.4 checkHashes).
type hashLedger struct {
	byTick map[entities.GameTime]map[entities.PlayerID]uint64
}

func newHashLedger() *hashLedger {
	return &hashLedger{byTick: make(map[entities.GameTime]map[entities.PlayerID]uint64)}
}

func (l *hashLedger) submit(s HashSubmission) {
	m, ok := l.byTick[s.Tick]
	if !ok {
		m = make(map[entities.PlayerID]uint64)
		l.byTick[s.Tick] = m
	}
	m[s.Player] = s.Hash
}

// check compares every submitted hash for tick against local, returning the
// first disagreeing peer found. Deletes the tick's ledger entry either way,
// since a tick is checked at most once.
func (l *hashLedger) check(tick entities.GameTime, localPlayer entities.PlayerID, local uint64) (peer entities.PlayerID, peerHash uint64, mismatch bool) {
	m := l.byTick[tick]
	defer delete(l.byTick, tick)
	for p, h := range m {
		if p == localPlayer {
			continue
		}
		if h != local {
			return p, h, true
		}
	}
	return 0, 0, false
}

// StateDumper writes a JSON snapshot of the authoritative state for
// post-mortem desync diagnosis (§6.5), implemented by the harness package.
type StateDumper interface {
	DumpState(path string, tick entities.GameTime) error
}

// PeerStats is one peer's round-trip-time estimate and most recently
// acknowledged tick, the inputs to §4.4.2's target sizing and §4.4.3's
// catch-up/coast pacing.
type PeerStats struct {
	RTT            time.Duration
	AckedLocalTick entities.GameTime
}

// Runner drives one participant's lockstep loop: buffering, pacing, and
// hash verification around an Applier (§4.4).
type Runner struct {
	localPlayer entities.PlayerID
	buffers     *Buffers
	applier     Applier
	dumper      StateDumper
	dumpDir     string

	hashes *hashLedger
	peers  map[entities.PlayerID]PeerStats

	localTick   entities.GameTime
	sinceReckon int
}

// NewRunner constructs a Runner bound to applier and ready to accept peers.
func NewRunner(localPlayer entities.PlayerID, applier Applier, dumper StateDumper, dumpDir string) *Runner {
	return &Runner{
		localPlayer: localPlayer,
		buffers:     NewBuffers(),
		applier:     applier,
		dumper:      dumper,
		dumpDir:     dumpDir,
		hashes:      newHashLedger(),
		peers:       make(map[entities.PlayerID]PeerStats),
	}
}

// AddPlayer registers a participant's command buffer.
func (r *Runner) AddPlayer(id entities.PlayerID, isComputer bool) {
	r.buffers.AddPlayer(id, isComputer)
}

// ReportPeer records a peer's current RTT estimate and last acked tick,
// fed by the transport layer's ping/pong and ack traffic.
func (r *Runner) ReportPeer(id entities.PlayerID, stats PeerStats) {
	r.peers[id] = stats
}

// SubmitLocal commits this tick's locally-collected commands to the local
// buffer and returns them so the caller (transport) can forward them to
// peers, per §4.4.2's submission gate: only submit while at or below
// target frames buffered.
func (r *Runner) SubmitLocal(cmds []PlayerCommand) (submitted []PlayerCommand, didSubmit bool) {
	target := targetFrames(r.maxObservedRTT())
	if r.buffers.Depth(r.localPlayer) > target {
		return nil, false
	}
	r.buffers.Submit(r.localPlayer, cmds)
	r.buffers.TopUp(target)
	return cmds, true
}

// SubmitRemote commits a peer's (or a locally-simulated computer player's)
// command slot, received over the transport.
func (r *Runner) SubmitRemote(player entities.PlayerID, cmds []PlayerCommand) {
	r.buffers.Submit(player, cmds)
}

// SubmitHash records a peer's hash claim for checkHashes to compare against
// once the local tick is computed.
func (r *Runner) SubmitHash(s HashSubmission) {
	r.hashes.submit(s)
}

func (r *Runner) maxObservedRTT() time.Duration {
	var max time.Duration
	for _, p := range r.peers {
		if p.RTT > max {
			max = p.RTT
		}
	}
	return max
}

// estimateAverageSceneTime averages peers' last-acked local tick, the input
// to §4.4.3's catch-up/coast decision.
func (r *Runner) estimateAverageSceneTime() entities.GameTime {
	if len(r.peers) == 0 {
		return r.localTick
	}
	var sum int64
	for _, p := range r.peers {
		sum += int64(p.AckedLocalTick)
	}
	return entities.GameTime(sum / int64(len(r.peers)))
}

// shouldSkipOrDouble implements the §4.4.3 "every 5 ticks" pacing check,
// returning -1 to skip, +1 to tick twice, 0 for the normal single tick.
func (r *Runner) shouldSkipOrDouble() int {
	r.sinceReckon++
	if r.sinceReckon < 5 {
		return 0
	}
	r.sinceReckon = 0
	avg := r.estimateAverageSceneTime()
	switch {
	case int64(r.localTick) > int64(avg)+3:
		return -1
	case int64(r.localTick) < int64(avg)-3:
		return 1
	default:
		return 0
	}
}

// ServiceTick advances the simulation by zero, one, or two ticks per the
// catch-up/coast pacing (§4.4.3), gated on buffer readiness (§4.4.2), and
// verifies the resulting hash against peers (§4.4.4). Returns ErrNotReady
// without advancing if the buffer isn't ready yet; returns *DesyncError if
// verification fails.
func (r *Runner) ServiceTick() (over bool, winner entities.PlayerID, err error) {
	pace := r.shouldSkipOrDouble()
	if pace < 0 {
		r.localTick++
		return false, 0, nil
	}

	ticks := 1
	if pace > 0 {
		ticks = 2
	}

	for i := 0; i < ticks; i++ {
		if !r.buffers.Ready() {
			return false, 0, ErrNotReady
		}
		for _, cmd := range r.buffers.PopAll() {
			r.applier.ApplyCommand(cmd)
		}
		over, winner = r.applier.Tick()
		r.localTick++

		hash := r.applier.Hash()
		r.hashes.submit(HashSubmission{Player: r.localPlayer, Tick: r.localTick, Hash: hash})
		if peer, peerHash, mismatch := r.hashes.check(r.localTick, r.localPlayer, hash); mismatch {
			path := fmt.Sprintf("%s/desync-tick-%d.json", r.dumpDir, r.localTick)
			if r.dumper != nil {
				_ = r.dumper.DumpState(path, r.localTick)
			}
			return over, winner, &DesyncError{
				Tick: r.localTick, LocalHash: hash, PeerHash: peerHash,
				PeerID: peer, StateDumpPath: path,
			}
		}

		if over {
			return over, winner, nil
		}
	}
	return over, winner, nil
}

// LocalTick reports the participant's current tick counter.
func (r *Runner) LocalTick() entities.GameTime { return r.localTick }
