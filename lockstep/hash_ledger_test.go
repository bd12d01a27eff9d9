package lockstep

import (
	"testing"

	"github.com/pthm-cable/tacore/entities"
	"github.com/stretchr/testify/assert"
)

func TestHashLedgerAgreement(t *testing.T) {
	l := newHashLedger()
	l.submit(HashSubmission{Player: 2, Tick: 10, Hash: 0xABCD})

	peer, peerHash, mismatch := l.check(10, 1, 0xABCD)
	assert.False(t, mismatch)
	assert.Zero(t, peer)
	assert.Zero(t, peerHash)
}

func TestHashLedgerMismatch(t *testing.T) {
	l := newHashLedger()
	l.submit(HashSubmission{Player: 2, Tick: 10, Hash: 0xDEAD})

	peer, peerHash, mismatch := l.check(10, 1, 0xABCD)
	assert.True(t, mismatch)
	assert.Equal(t, entities.PlayerID(2), peer)
	assert.Equal(t, uint64(0xDEAD), peerHash)
}

func TestHashLedgerIgnoresLocalPlayersOwnSubmission(t *testing.T) {
	l := newHashLedger()
	l.submit(HashSubmission{Player: 1, Tick: 10, Hash: 0xFFFF})

	_, _, mismatch := l.check(10, 1, 0xABCD)
	assert.False(t, mismatch, "a local player's own resubmitted hash must never be compared against itself")
}

func TestHashLedgerCheckConsumesTheTick(t *testing.T) {
	l := newHashLedger()
	l.submit(HashSubmission{Player: 2, Tick: 10, Hash: 0xABCD})
	l.check(10, 1, 0xABCD)

	assert.Empty(t, l.byTick[10], "a checked tick's ledger entry must not be reusable for a second check")
}
