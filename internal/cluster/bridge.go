// Package cluster relays room fan-out between server nodes over NATS.
//
// Each node delivers to its own connections first and then publishes the
// encoded frame on a shared subject. Peers deliver envelopes from other
// nodes to their local subscribers of the same room.
package cluster

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"chat-backend/internal/models"
	ws "chat-backend/internal/websocket"
	"chat-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

type EnvelopeKind string

const (
	// KindFanout carries an encoded frame for the subscribers of Room.
	KindFanout EnvelopeKind = "fanout"
	// KindUnsubscribeUser removes every connection of UserID from Room.
	KindUnsubscribeUser EnvelopeKind = "unsubscribe-user"
)

// Envelope is the message published on the fan-out subject. An empty Kind is
// a fan-out.
type Envelope struct {
	Kind    EnvelopeKind    `json:"kind,omitempty"`
	Node    string          `json:"node"`
	Room    string          `json:"room"`
	UserID  string          `json:"userId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Conn is the part of *nats.Conn the bridge needs.
type Conn interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error)
}

// Connect dials NATS with unlimited reconnects.
func Connect(url, name string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(500 * time.Millisecond),
		nats.ReconnectJitter(100*time.Millisecond, 500*time.Millisecond),
		nats.Timeout(3 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected to %s", nc.ConnectedUrl())
		}),
	}
	return nats.Connect(url, opts...)
}

// Bridge implements the service hub on top of a local registry.
type Bridge struct {
	local   *ws.Registry
	conn    Conn
	subject string
	node    string

	mu      sync.Mutex
	started bool
	sub     *nats.Subscription
}

func NewBridge(local *ws.Registry, conn Conn, subject, node string) *Bridge {
	if node == "" {
		node = uuid.NewString()
	}
	return &Bridge{local: local, conn: conn, subject: subject, node: node}
}

func (b *Bridge) Node() string { return b.node }

// Start subscribes to the fan-out subject.
func (b *Bridge) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return errors.New("bridge already started")
	}
	sub, err := b.conn.Subscribe(b.subject, b.handleMsg)
	if err != nil {
		return err
	}
	b.started, b.sub = true, sub
	logger.Info("Cluster bridge %s listening on %s", b.node, b.subject)
	return nil
}

// Close drains the subscription. The connection itself is owned by the
// caller.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sub == nil {
		return nil
	}
	err := b.sub.Drain()
	b.sub = nil
	return err
}

// Subscribe is node-local: each node only tracks its own connections.
func (b *Bridge) Subscribe(c *ws.Client, room ws.Room) error {
	return b.local.Subscribe(c, room)
}

// UnsubscribeUser removes the user's local connections from room and tells
// peers to do the same. It is published on the fan-out subject, so peers
// apply it before any later fan-out from this node. The count is local only.
func (b *Bridge) UnsubscribeUser(userID string, room ws.Room) int {
	n := b.local.UnsubscribeUser(userID, room)
	b.publish(Envelope{Kind: KindUnsubscribeUser, Room: room.String(), UserID: userID})
	return n
}

// Fanout delivers locally and publishes to peers. The count is local only.
func (b *Bridge) Fanout(room ws.Room, ev models.Outbound) int {
	return b.FanoutExcept(room, ev, nil)
}

func (b *Bridge) FanoutExcept(room ws.Room, ev models.Outbound, except *ws.Client) int {
	data, err := ws.Encode(ev)
	if err != nil {
		logger.Errorw("encode event", "event", ev.Name(), "room", room.String(), "error", err)
		return 0
	}
	n := b.local.FanoutRaw(room, data, except)
	b.publish(Envelope{Kind: KindFanout, Room: room.String(), Payload: data})
	return n
}

func (b *Bridge) publish(env Envelope) {
	env.Node = b.node
	data, err := json.Marshal(env)
	if err != nil {
		logger.Errorw("encode envelope", "kind", env.Kind, "room", env.Room, "error", err)
		return
	}
	if err := b.conn.Publish(b.subject, data); err != nil {
		logger.Warnw("publish envelope", "kind", env.Kind, "room", env.Room, "error", err)
	}
}

func (b *Bridge) handleMsg(msg *nats.Msg) {
	var env Envelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		logger.Warnw("drop malformed envelope", "error", err)
		return
	}
	if env.Node == b.node {
		return
	}
	room, err := ws.ParseRoom(env.Room)
	if err != nil {
		logger.Warnw("drop envelope", "node", env.Node, "error", err)
		return
	}

	switch env.Kind {
	case KindFanout, "":
		b.local.FanoutRaw(room, env.Payload, nil)
	case KindUnsubscribeUser:
		if env.UserID == "" {
			logger.Warnw("drop envelope without user", "node", env.Node, "room", env.Room)
			return
		}
		n := b.local.UnsubscribeUser(env.UserID, room)
		logger.Debugw("peer unsubscribed user", "node", env.Node, "user", env.UserID, "room", env.Room, "conns", n)
	default:
		logger.Warnw("drop envelope", "node", env.Node, "kind", env.Kind)
	}
}
