package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/rffetap/internal/logging"
	"github.com/muurk/rffetap/internal/render"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer; clients only send control
	// frames
	maxMessageSize = 512

	// Per-client send queue depth before live events are dropped
	sendQueueSize = 512
)

// client is one WebSocket subscriber with a buffered send queue, so a
// slow reader never stalls the decoder or the other clients.
type client struct {
	conn       *websocket.Conn
	remoteAddr string
	queue      chan seqEvent

	// replay and nextSeq are set by the hub at registration; ready is
	// closed once they are valid.
	replay  []render.Event
	nextSeq int
	ready   chan struct{}

	closeOnce sync.Once
	done      chan struct{}

	dropped int
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:       conn,
		remoteAddr: conn.RemoteAddr().String(),
		queue:      make(chan seqEvent, sendQueueSize),
		ready:      make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// send enqueues one event, dropping it if the client's queue is full.
func (c *client) send(se seqEvent) {
	select {
	case c.queue <- se:
	default:
		c.dropped++
	}
}

// close releases the connection; safe to call more than once.
func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
		if c.dropped > 0 {
			logging.LogAnnotationDrop(c.remoteAddr, c.dropped)
		}
		logging.LogClient(c.remoteAddr, "websocket_closed")
	})
}

func (c *client) writeEvent(e render.Event) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(e)
}

// writePump replays the transcript snapshot, then drains the live queue,
// skipping events the replay already covered. Pings keep the peer alive
// between events.
func (c *client) writePump(h *hub) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.leave(h)
	}()

	select {
	case <-c.ready:
	case <-c.done:
		return
	case <-h.closed:
		return
	}
	for _, e := range c.replay {
		if err := c.writeEvent(e); err != nil {
			logging.Debug("Client replay failed",
				zap.String("remote_addr", c.remoteAddr),
				zap.Error(err),
			)
			return
		}
	}
	c.replay = nil

	for {
		select {
		case <-c.done:
			return

		case se := <-c.queue:
			if se.seq < c.nextSeq {
				continue
			}
			if err := c.writeEvent(se.event); err != nil {
				logging.Debug("Client write failed",
					zap.String("remote_addr", c.remoteAddr),
					zap.Error(err),
				)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// leave hands the client back to the hub, or closes it directly when
// the hub has already shut down.
func (c *client) leave(h *hub) {
	select {
	case h.unregister <- c:
	case <-h.closed:
		c.close()
	}
}

// readPump consumes the connection for control frames and detects the
// peer going away.
func (c *client) readPump(h *hub) {
	defer c.leave(h)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
