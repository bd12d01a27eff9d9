package lockstep

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pthm-cable/tacore/entities"
)

// Transport timings follow the same shape as the retrieved tabular
// example's websocket server: a short write deadline, a pong wait several
// times longer than the ping period, and a grace period before a forced
// close.
const (
	writeWait        = 2 * time.Second
	pongWait         = 10 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	closeGracePeriod = 2 * time.Second
	maxMessageSize   = 1 << 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// FrameKind discriminates the §4.4 protocol's three message types.
type FrameKind uint8

const (
	FrameCommand FrameKind = iota
	FrameHash
	FrameAck
)

// Frame is one message exchanged between peers: a command slot, a hash
// submission, or a tick acknowledgment (used to estimate RTT and the
// average scene time §4.4.3 paces against).
type Frame struct {
	Kind FrameKind

	// FrameCommand: one player's full command slot for one tick.
	CommandTick entities.GameTime
	CommandOwner entities.PlayerID
	Commands    []WireCommand

	// FrameHash
	Hash HashSubmission

	// FrameAck
	AckTick entities.GameTime
	SentAt  time.Time
}

// Peer wraps one established websocket connection to a remote participant.
type Peer struct {
	conn  *websocket.Conn
	index int
	out   chan Frame
}

// NewPeer wraps an already-upgraded connection and starts its write pump.
// The read pump is the caller's responsibility (ReadLoop), since the
// caller owns the Mailbox the read pump feeds into.
func NewPeer(conn *websocket.Conn, index int) *Peer {
	p := &Peer{conn: conn, index: index, out: make(chan Frame, 64)}
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go p.writePump()
	return p
}

// Send enqueues a frame for the write pump. Non-blocking: a full outbound
// queue drops the oldest rather than stalling the tick loop, since a
// dropped command slot is re-derived next submission and a dropped hash is
// resubmitted next tick.
func (p *Peer) Send(f Frame) {
	select {
	case p.out <- f:
	default:
		select {
		case <-p.out:
		default:
		}
		p.out <- f
	}
}

func (p *Peer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case f, ok := <-p.out:
			if !ok {
				p.closeGracefully()
				return
			}
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteJSON(f); err != nil {
				log.Printf("lockstep: peer %d write failed: %v", p.index, err)
				return
			}
		case <-ticker.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (p *Peer) closeGracefully() {
	_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = p.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	time.Sleep(closeGracePeriod)
	_ = p.conn.Close()
}

// ReadLoop pulls frames off the connection and publishes them as
// InboundMessages on out until the connection closes or ctx is canceled.
// Run this in its own goroutine per peer; its output feeds a Mailbox.
func (p *Peer) ReadLoop(ctx context.Context, out chan<- InboundMessage) {
	defer close(out)
	for {
		var f Frame
		if err := p.conn.ReadJSON(&f); err != nil {
			log.Printf("lockstep: peer %d read closed: %v", p.index, err)
			return
		}
		select {
		case out <- InboundMessage{PeerIndex: p.index, Frame: f}:
		case <-ctx.Done():
			return
		}
	}
}

// Close tears down the peer's outbound queue, triggering a graceful close
// handshake in the write pump.
func (p *Peer) Close() { close(p.out) }

// Upgrade promotes an HTTP request to a websocket connection, the same
// net/http + gorilla/websocket handshake the retrieved tabular example's
// server.serveWebsocket uses.
func Upgrade(w http.ResponseWriter, r *http.Request) (*websocket.Conn, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("lockstep: upgrade: %w", err)
	}
	return conn, nil
}

// Dial opens an outbound websocket connection to a peer's lockstep
// endpoint.
func Dial(url string) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("lockstep: dial %s: %w", url, err)
	}
	return conn, nil
}
