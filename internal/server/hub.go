package server

import (
	"context"
	"sync"

	"github.com/muurk/rffetap/internal/render"
)

// seqEvent is one published event with its position in the transcript.
// Sequence numbers let a client joining mid-stream stitch the replayed
// history and the live feed together without gaps or duplicates.
type seqEvent struct {
	seq   int
	event render.Event
}

// hub fans decoded events out to connected clients and retains them all
// for replay, so a client that joins after the decode finished still
// receives the full transcript.
type hub struct {
	mu      sync.Mutex
	history []render.Event

	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	events     chan seqEvent

	// closed unblocks pumps trying to reach a hub that has shut down.
	closed chan struct{}
}

func newHub() *hub {
	return &hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		events:     make(chan seqEvent, 256),
		closed:     make(chan struct{}),
	}
}

// publish records one event and offers it for live broadcast. It never
// blocks the decoder: when the broadcast channel is saturated the event
// still lands in history and late joiners will replay it.
func (h *hub) publish(e render.Event) {
	h.mu.Lock()
	seq := len(h.history)
	h.history = append(h.history, e)
	h.mu.Unlock()

	select {
	case h.events <- seqEvent{seq: seq, event: e}:
	default:
	}
}

// buffered returns the replay buffer length.
func (h *hub) buffered() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.history)
}

// snapshot copies the replay buffer for a newly joined client.
func (h *hub) snapshot() []render.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]render.Event, len(h.history))
	copy(out, h.history)
	return out
}

// run owns the client set until ctx is cancelled. Registration snapshots
// the history in the same goroutine that broadcasts, so every event is
// either in the client's replay or delivered live, never both.
func (h *hub) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				c.close()
				delete(h.clients, c)
			}
			close(h.closed)
			return

		case c := <-h.register:
			c.replay = h.snapshot()
			c.nextSeq = len(c.replay)
			h.clients[c] = true
			close(c.ready)

		case c := <-h.unregister:
			if h.clients[c] {
				delete(h.clients, c)
				c.close()
			}

		case se := <-h.events:
			for c := range h.clients {
				c.send(se)
			}
		}
	}
}
