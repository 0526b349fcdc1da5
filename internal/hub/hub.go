package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// DefaultPingInterval bounds the observer set to connections that
	// answered a probe within the last two intervals.
	DefaultPingInterval = 30 * time.Second

	writeWait     = 10 * time.Second
	readLimit     = 512
	sendQueueSize = 32
)

// SnapshotFunc produces the serialized init message for a new observer.
// Called under the hub lock so the snapshot and the registration are one
// atomic step: no broadcast can land between them.
type SnapshotFunc func(ctx context.Context) ([]byte, error)

// Client is one observer connection.
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once

	// guarded by Hub.mu; cleared on each probe, set by pong
	alive bool
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// Hub owns the live observer set and fans change events out to it. It also
// runs the liveness monitor that evicts connections which stop answering
// pings. Delivery is at-most-once; a missed event is reconciled by the
// reconnect snapshot.
type Hub struct {
	mu       sync.Mutex
	clients  map[*Client]bool
	snapshot SnapshotFunc
	interval time.Duration
	logger   *zap.Logger
}

func New(snapshot SnapshotFunc, interval time.Duration, logger *zap.Logger) *Hub {
	if interval <= 0 {
		interval = DefaultPingInterval
	}
	return &Hub{
		clients:  make(map[*Client]bool),
		snapshot: snapshot,
		interval: interval,
		logger:   logger,
	}
}

// Register takes ownership of an upgraded connection. The init snapshot is
// loaded and queued under the hub lock, so the first frame the observer
// receives is always init and every later mutation is either in the
// snapshot or delivered as an event, never lost in between.
func (h *Hub) Register(ctx context.Context, conn *websocket.Conn) (*Client, error) {
	c := &Client{
		ID:    uuid.NewString(),
		conn:  conn,
		send:  make(chan []byte, sendQueueSize),
		done:  make(chan struct{}),
		alive: true,
	}
	conn.SetReadLimit(readLimit)
	conn.SetPongHandler(func(string) error {
		h.markAlive(c)
		return nil
	})

	h.mu.Lock()
	snap, err := h.snapshot(ctx)
	if err != nil {
		h.mu.Unlock()
		return nil, err
	}
	c.send <- snap
	h.clients[c] = true
	h.mu.Unlock()

	h.logger.Info("observer connected", zap.String("conn_id", c.ID))
	go c.writePump(h)
	return c, nil
}

// Unregister drops the client from the broadcast set and closes the
// connection. Safe to call more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, known := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
	if known {
		h.logger.Info("observer disconnected", zap.String("conn_id", c.ID))
	}
}

// Broadcast serializes the event once and queues it to every registered
// client. A client whose send queue is full (or that is mid-close) is
// skipped; it catches up from the snapshot on its next connect.
func (h *Hub) Broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal event", zap.Error(err))
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
}

// ClientCount reports the current observer set size.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Run drives the liveness monitor until ctx is cancelled, then closes every
// remaining connection. Each tick evicts clients that never answered the
// previous probe and pings the rest.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case <-ticker.C:
			h.probe()
		}
	}
}

func (h *Hub) probe() {
	h.mu.Lock()
	var stale, live []*Client
	for c := range h.clients {
		if !c.alive {
			stale = append(stale, c)
			continue
		}
		c.alive = false
		live = append(live, c)
	}
	for _, c := range stale {
		delete(h.clients, c)
	}
	h.mu.Unlock()

	for _, c := range stale {
		h.logger.Info("evicting unresponsive observer", zap.String("conn_id", c.ID))
		c.close()
	}
	for _, c := range live {
		_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
	}
}

func (h *Hub) markAlive(c *Client) {
	h.mu.Lock()
	c.alive = true
	h.mu.Unlock()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*Client]bool)
	h.mu.Unlock()
	for _, c := range clients {
		c.close()
	}
}

// ReadLoop consumes inbound frames until the peer goes away. Observers send
// nothing the server acts on; reading keeps pong and close processing
// alive. Blocks, so the HTTP handler runs it inline.
func (c *Client) ReadLoop(h *Hub) {
	defer h.Unregister(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump(h *Hub) {
	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.Unregister(c)
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
