package websocket

import (
	"errors"
	"sync"

	"chat-backend/internal/models"
	"chat-backend/pkg/logger"

	"github.com/samber/lo"
)

var (
	ErrRegistryClosed = errors.New("registry closed")
	ErrConnNotFound   = errors.New("connection not found")
)

type Option func(*Registry)

// WithRegisterHook runs fn after a connection has been registered.
func WithRegisterHook(fn func(*Client)) Option {
	return func(r *Registry) { r.onRegister = fn }
}

// WithDeregisterHook runs fn after a connection has been removed.
func WithDeregisterHook(fn func(*Client)) Option {
	return func(r *Registry) { r.onDeregister = fn }
}

// Registry tracks live connections and the rooms they are subscribed to.
//
// Fanout holds the read lock while it enqueues, and enqueueing never blocks,
// so a Subscribe racing with a Fanout lands entirely before or after it.
type Registry struct {
	mu     sync.RWMutex
	conns  map[string]*Client
	rooms  map[Room]map[string]*Client
	closed bool

	onRegister   func(*Client)
	onDeregister func(*Client)
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		conns: make(map[string]*Client),
		rooms: make(map[Room]map[string]*Client),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register records c and subscribes it to its principal's user room.
func (r *Registry) Register(c *Client) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRegistryClosed
	}
	r.conns[c.id] = c
	r.subscribeLocked(c, UserRoom(c.principal.ID))
	r.mu.Unlock()

	logger.Debugw("connection registered", "conn", c.id, "user", c.principal.ID)
	if r.onRegister != nil {
		r.onRegister(c)
	}
	return nil
}

// Subscribe adds c to room. Subscribing twice is a no-op. A connection that
// is no longer registered is not subscribed.
func (r *Registry) Subscribe(c *Client, room Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[c.id]; !ok {
		return ErrConnNotFound
	}
	r.subscribeLocked(c, room)
	return nil
}

func (r *Registry) subscribeLocked(c *Client, room Room) {
	subs, ok := r.rooms[room]
	if !ok {
		subs = make(map[string]*Client)
		r.rooms[room] = subs
	}
	subs[c.id] = c
	c.rooms[room] = struct{}{}
}

func (r *Registry) Unsubscribe(c *Client, room Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[c.id]; !ok {
		return ErrConnNotFound
	}
	r.unsubscribeLocked(c, room)
	return nil
}

// UnsubscribeUser removes every connection of userID from room and returns
// how many were removed.
func (r *Registry) UnsubscribeUser(userID string, room Room) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, c := range r.rooms[room] {
		if c.principal.ID == userID {
			r.unsubscribeLocked(c, room)
			n++
		}
	}
	return n
}

func (r *Registry) unsubscribeLocked(c *Client, room Room) {
	if subs, ok := r.rooms[room]; ok {
		delete(subs, c.id)
		if len(subs) == 0 {
			delete(r.rooms, room)
		}
	}
	delete(c.rooms, room)
}

// Fanout delivers ev to every subscriber of room and returns the number of
// connections it was queued for.
func (r *Registry) Fanout(room Room, ev models.Outbound) int {
	return r.FanoutExcept(room, ev, nil)
}

// FanoutExcept is Fanout skipping except, which may be nil.
func (r *Registry) FanoutExcept(room Room, ev models.Outbound, except *Client) int {
	data, err := Encode(ev)
	if err != nil {
		logger.Errorw("encode event", "event", ev.Name(), "room", room.String(), "error", err)
		return 0
	}
	return r.FanoutRaw(room, data, except)
}

// FanoutRaw delivers an already encoded frame.
func (r *Registry) FanoutRaw(room Room, data []byte, except *Client) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for id, c := range r.rooms[room] {
		if except != nil && id == except.id {
			continue
		}
		if c.Send(data) {
			n++
		}
	}
	return n
}

// Deregister removes c from every room. It returns ErrConnNotFound when c was
// already removed, which callers may ignore.
func (r *Registry) Deregister(c *Client) error {
	r.mu.Lock()
	if _, ok := r.conns[c.id]; !ok {
		r.mu.Unlock()
		return ErrConnNotFound
	}
	delete(r.conns, c.id)
	for room := range c.rooms {
		r.unsubscribeLocked(c, room)
	}
	r.mu.Unlock()

	c.Close()
	logger.Debugw("connection deregistered", "conn", c.id, "user", c.principal.ID)
	if r.onDeregister != nil {
		r.onDeregister(c)
	}
	return nil
}

// Close stops accepting connections and closes every live one.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	clients := lo.Values(r.conns)
	r.conns = make(map[string]*Client)
	r.rooms = make(map[Room]map[string]*Client)
	r.mu.Unlock()

	for _, c := range clients {
		c.Close()
		if r.onDeregister != nil {
			r.onDeregister(c)
		}
	}
	logger.Info("Registry closed, %d connections dropped", len(clients))
}

// Clients returns a snapshot of the live connections.
func (r *Registry) Clients() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Values(r.conns)
}

// Subscribers returns the ids of the connections subscribed to room.
func (r *Registry) Subscribers(room Room) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(r.rooms[room])
}

// UserConnections returns how many live connections userID holds on this node.
func (r *Registry) UserConnections(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[UserRoom(userID)])
}

// RoomsOf returns the rooms c is subscribed to.
func (r *Registry) RoomsOf(c *Client) []Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(c.rooms)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
