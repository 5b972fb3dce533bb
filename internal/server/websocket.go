package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zeusync/skyloop/internal/core/buffer"
	"github.com/zeusync/skyloop/internal/core/config"
	"github.com/zeusync/skyloop/internal/core/events"
	"github.com/zeusync/skyloop/internal/core/geom"
	"github.com/zeusync/skyloop/internal/core/observability/log"
	"github.com/zeusync/skyloop/pkg/generic"
)

const writeWait = 2 * time.Second

var encodeBuffers = generic.NewHotPool(func() *bytes.Buffer { return new(bytes.Buffer) }, (*bytes.Buffer).Reset, 4)

// encode marshals v through a pooled buffer. The returned bytes are owned by
// the caller.
func encode(v any) ([]byte, error) {
	buf := encodeBuffers.Get()
	defer encodeBuffers.Put(buf)
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

// Clicker receives spectator clicks; the engine implements it.
type Clicker interface {
	Click(p geom.Point)
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Spectator streams drawn frames and published events to websocket clients
// and forwards their clicks to the engine. Frames are dropped for clients
// that cannot keep up rather than slowing down the draw loop.
type Spectator struct {
	cfg      config.Spectator
	logger   log.Log
	clicker  Clicker
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*client
	closed  bool

	frames  uint64
	dropped atomic.Uint64
}

func NewSpectator(cfg config.Spectator, clicker Clicker, logger log.Log) *Spectator {
	return &Spectator{
		cfg:     cfg,
		logger:  logger.With(log.String("component", "spectator")),
		clicker: clicker,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[string]*client),
	}
}

// Render sends every FrameInterval-th frame to all clients. It is called
// from the draw loop with the readable slot.
func (s *Spectator) Render(slot *buffer.Slot) {
	s.frames++
	if s.cfg.FrameInterval > 1 && s.frames%uint64(s.cfg.FrameInterval) != 0 {
		return
	}
	if s.Clients() == 0 {
		return
	}
	data, err := encode(newFrame(slot))
	if err != nil {
		s.logger.Warn("encode frame", log.Error(err))
		return
	}
	s.broadcast(data)
}

// OnEvent is an event bus handler forwarding published events.
func (s *Spectator) OnEvent(ev events.Event) error {
	data, err := encode(newEvent(ev))
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	s.broadcast(data)
	return nil
}

// Clients is the number of connected spectators.
func (s *Spectator) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Dropped counts messages skipped because a client's buffer was full.
func (s *Spectator) Dropped() uint64 { return s.dropped.Load() }

func (s *Spectator) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("upgrade failed", log.Error(err))
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, max(s.cfg.ClientBuffer, 1)),
	}
	if !s.register(c) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ErrServerClosed.Error()))
		_ = conn.Close()
		return
	}
	s.logger.Info("spectator connected", log.String("client", c.id), log.String("remote", conn.RemoteAddr().String()))

	go s.writeLoop(c)
	s.readLoop(c)
}

// Close disconnects every client and refuses new ones.
func (s *Spectator) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for id, c := range s.clients {
		close(c.send)
		delete(s.clients, id)
	}
}

func (s *Spectator) register(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.clients[c.id] = c
	return true
}

func (s *Spectator) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.id]; ok {
		close(c.send)
		delete(s.clients, c.id)
	}
}

func (s *Spectator) broadcast(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		select {
		case c.send <- data:
		default:
			s.dropped.Add(1)
		}
	}
}

func (s *Spectator) writeLoop(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.Debug("write failed", log.String("client", c.id), log.Error(err))
			s.unregister(c)
			return
		}
	}
}

func (s *Spectator) readLoop(c *client) {
	defer s.unregister(c)
	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			s.logger.Info("spectator disconnected", log.String("client", c.id))
			return
		}
		var msg controlMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logger.Debug("discarding malformed message", log.String("client", c.id), log.Error(fmt.Errorf("%w: %w", ErrInvalidMessage, err)))
			continue
		}
		switch msg.Action {
		case actionClick:
			s.clicker.Click(geom.P(msg.X, msg.Y))
		default:
			s.logger.Debug("unknown action", log.String("client", c.id), log.String("action", msg.Action))
		}
	}
}
