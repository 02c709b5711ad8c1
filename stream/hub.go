package stream

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/parameter"
)

// Options configures a Hub; zero fields take parameter defaults
type Options struct {
	QueueSize       int
	ClientQueueSize int
	StarEvery       int
	WriteTimeout    time.Duration
	// OnDrop is called for every frame dropped because a queue was full
	OnDrop func()
	Log    *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.QueueSize <= 0 {
		o.QueueSize = parameter.StreamQueueSize
	}
	if o.ClientQueueSize <= 0 {
		o.ClientQueueSize = parameter.StreamClientQueueSize
	}
	if o.StarEvery <= 0 {
		o.StarEvery = parameter.StreamStarEvery
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = parameter.StreamWriteTimeout
	}
	if o.OnDrop == nil {
		o.OnDrop = func() {}
	}
	if o.Log == nil {
		o.Log = zap.NewNop()
	}
	return o
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	// needStars is set until the client has received one frame with stars
	needStars bool
}

// Hub fans snapshots out to websocket clients
// Publish never blocks the tick: a full inbound queue drops its oldest snapshot
type Hub struct {
	opts Options
	in   chan *engine.Snapshot

	mu      sync.Mutex
	clients map[*client]struct{}

	upgrader websocket.Upgrader

	// Owned by Run
	frames uint64
	lastFP uint64
	sent   bool
}

// NewHub creates a hub; call Run to start broadcasting
func NewHub(opts Options) *Hub {
	opts = opts.withDefaults()
	return &Hub{
		opts:    opts,
		in:      make(chan *engine.Snapshot, opts.QueueSize),
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  parameter.StreamReadBufferSize,
			WriteBufferSize: parameter.StreamWriteBufferSize,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Publish queues a snapshot for broadcast; single producer
func (h *Hub) Publish(s *engine.Snapshot) {
	select {
	case h.in <- s:
		return
	default:
	}
	// Full: discard the oldest and retry once
	select {
	case <-h.in:
		h.opts.OnDrop()
	default:
	}
	select {
	case h.in <- s:
	default:
		h.opts.OnDrop()
	}
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Run broadcasts queued snapshots until ctx is done, then disconnects every client
func (h *Hub) Run(ctx context.Context) error {
	defer h.closeAll()
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-h.in:
			h.broadcast(s)
		}
	}
}

func (h *Hub) broadcast(s *engine.Snapshot) {
	fp := s.Fingerprint()
	if h.sent && fp == h.lastFP {
		return
	}
	h.lastFP, h.sent = fp, true

	full := h.frames%uint64(h.opts.StarEvery) == 0
	h.frames++

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.clients) == 0 {
		return
	}

	needFull := full
	for c := range h.clients {
		needFull = needFull || c.needStars
	}

	var light, heavy []byte
	var err error
	if !full {
		if light, err = Encode(s, false); err != nil {
			h.opts.Log.Error("encode frame", zap.Uint64("tick", s.Tick), zap.Error(err))
			return
		}
	}
	if needFull {
		if heavy, err = Encode(s, true); err != nil {
			h.opts.Log.Error("encode frame", zap.Uint64("tick", s.Tick), zap.Error(err))
			return
		}
	}

	for c := range h.clients {
		msg := light
		if full || c.needStars {
			msg = heavy
		}
		select {
		case c.send <- msg:
			c.needStars = false
		default:
			h.opts.OnDrop()
		}
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// remove closes the client's queue exactly once
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()
	for _, c := range clients {
		h.remove(c)
	}
}

// ServeHTTP upgrades the request and streams frames until the peer leaves
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.opts.Log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &client{
		conn:      conn,
		send:      make(chan []byte, h.opts.ClientQueueSize),
		needStars: true,
	}
	h.add(c)
	h.opts.Log.Info("stream client connected", zap.String("remote", r.RemoteAddr))

	// Reader detects peer close; inbound messages are ignored
	go func() {
		defer h.remove(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.opts.Log.Debug("stream client read", zap.Error(err))
				}
				return
			}
		}
	}()

	defer func() {
		h.remove(c)
		conn.Close()
		h.opts.Log.Info("stream client disconnected", zap.String("remote", r.RemoteAddr))
	}()

	for msg := range c.send {
		_ = conn.SetWriteDeadline(time.Now().Add(h.opts.WriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutdown"),
		time.Now().Add(h.opts.WriteTimeout))
}
