package lockstep

import (
	"context"

	channerics "github.com/niceyeti/channerics/channels"
)

// InboundMessage is one frame pulled off any peer connection, tagged with
// which connection it arrived on so the caller can route hash submissions
// and command slots back to the right PeerStats entry.
type InboundMessage struct {
	PeerIndex int
	Frame     Frame
}

// Mailbox is the thread-safe inbound queue §5's "Network" contact point
// describes: "inbound commands are placed in a thread-safe mailbox read
// once per tick by the kernel". Every peer connection's receive loop feeds
// this mailbox; cmd/simrun's main loop drains it once per tick, before
// calling the Runner's ServiceTick (the Runner itself never reads it).
// Built on channerics.Merge the same way the reinforcement-learning
// worker pool in the retrieved tabular example fans in per-worker episode
// channels into one consumer channel.
type Mailbox struct {
	merged <-chan InboundMessage
	cancel context.CancelFunc
}

// NewMailbox fans sources into a single channel. Each source is expected to
// be one peer connection's receive loop, already tagging its frames with
// its PeerIndex.
func NewMailbox(ctx context.Context, sources ...<-chan InboundMessage) *Mailbox {
	ctx, cancel := context.WithCancel(ctx)
	done := ctx.Done()
	return &Mailbox{
		merged: channerics.Merge(done, sources...),
		cancel: cancel,
	}
}

// Drain reads every message currently buffered without blocking, the "read
// once per tick" half of the mailbox contract.
func (m *Mailbox) Drain() []InboundMessage {
	var out []InboundMessage
	for {
		select {
		case msg, ok := <-m.merged:
			if !ok {
				return out
			}
			out = append(out, msg)
		default:
			return out
		}
	}
}

// Close stops every source's fan-in goroutine.
func (m *Mailbox) Close() { m.cancel() }
