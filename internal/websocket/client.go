package websocket

import (
	"context"
	"errors"
	"sync"
	"time"

	"chat-backend/internal/models"
	"chat-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	inboxSize      = 32

	DefaultSendBuffer = 256
)

// Dispatcher handles one inbound frame of a connection.
type Dispatcher interface {
	Dispatch(ctx context.Context, c *Client, frame []byte)
}

// Client is one authenticated websocket connection. It runs three
// goroutines: ReadPump, ProcessEvents and WritePump.
type Client struct {
	id        string
	principal models.Principal
	conn      *websocket.Conn

	mu     sync.RWMutex
	send   chan []byte
	closed bool
	done   chan struct{}

	inbox chan []byte

	// guarded by the registry lock
	rooms map[Room]struct{}
}

func NewClient(conn *websocket.Conn, principal models.Principal, sendBuffer int) *Client {
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}
	return &Client{
		id:        uuid.NewString(),
		principal: principal,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		done:      make(chan struct{}),
		inbox:     make(chan []byte, inboxSize),
		rooms:     make(map[Room]struct{}),
	}
}

func (c *Client) ID() string                  { return c.id }
func (c *Client) Principal() models.Principal { return c.principal }

// Outbound exposes the queue drained by WritePump.
func (c *Client) Outbound() <-chan []byte { return c.send }

// Done is closed once the client has been closed.
func (c *Client) Done() <-chan struct{} { return c.done }

// Send queues data without blocking. It returns false when the client is
// closed or when its buffer is full, in which case the client is evicted.
func (c *Client) Send(data []byte) bool {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return false
	}
	select {
	case c.send <- data:
		c.mu.RUnlock()
		return true
	default:
		c.mu.RUnlock()
	}

	logger.Warnw("evicting slow connection", "conn", c.id, "user", c.principal.ID)
	c.evict()
	return false
}

// SendEvent encodes ev and queues it.
func (c *Client) SendEvent(ev models.Outbound) bool {
	data, err := Encode(ev)
	if err != nil {
		logger.Errorw("encode event", "event", ev.Name(), "error", err)
		return false
	}
	return c.Send(data)
}

// Close stops delivery. Queued frames are still flushed by WritePump, which
// then closes the socket. Close is idempotent.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	close(c.done)
}

func (c *Client) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// evict closes the client and drops the socket without flushing.
func (c *Client) evict() {
	c.Close()
	if c.conn != nil {
		c.conn.Close()
	}
}

// ReadPump reads frames into the inbox until the socket fails, then
// deregisters the client right away.
func (c *Client) ReadPump(reg *Registry) {
	defer func() {
		if err := reg.Deregister(c); err != nil && !errors.Is(err, ErrConnNotFound) {
			logger.Error("Error deregistering connection %s: %v", c.id, err)
		}
		close(c.inbox)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("WebSocket error on %s: %v", c.id, err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		select {
		case c.inbox <- message:
		case <-c.done:
			return
		}
	}
}

// ProcessEvents dispatches inbox frames one at a time, in arrival order.
// Frames still queued when the client closes are discarded.
func (c *Client) ProcessEvents(ctx context.Context, d Dispatcher) {
	for {
		select {
		case <-c.done:
			return
		case frame, ok := <-c.inbox:
			if !ok || c.Closed() {
				return
			}
			d.Dispatch(ctx, c, frame)
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("Write error on %s: %v", c.id, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
