package websocket

import (
	"encoding/json"
	"sync"
	"testing"

	"chat-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func newTestClient(userID string) *Client {
	return NewClient(nil, models.Principal{ID: userID, Role: models.RoleUser}, 16)
}

// drain returns the event names queued for c without blocking.
func drain(c *Client) []models.EventName {
	var names []models.EventName
	for {
		select {
		case data, ok := <-c.Outbound():
			if !ok {
				return names
			}
			var f models.Frame
			if err := json.Unmarshal(data, &f); err == nil {
				names = append(names, f.Event)
			}
		default:
			return names
		}
	}
}

func TestRegistry_Register_BindsUserRoom(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	c := newTestClient("u1")

	// When a connection registers
	req.NoError(registry.Register(c))

	// Then it is subscribed to its user room only
	req.Equal(1, registry.Len())
	req.Equal([]Room{UserRoom("u1")}, registry.RoomsOf(c))
	req.Equal([]string{c.ID()}, registry.Subscribers(UserRoom("u1")))
}

func TestRegistry_MultiDevice(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	phone, laptop := newTestClient("u1"), newTestClient("u1")
	req.NoError(registry.Register(phone))
	req.NoError(registry.Register(laptop))

	n := registry.Fanout(UserRoom("u1"), models.DirectMessageDelivered{ID: "m1"})

	req.Equal(2, n)
	req.Equal(2, registry.UserConnections("u1"))
	req.Equal([]models.EventName{models.EventDirectMessage}, drain(phone))
	req.Equal([]models.EventName{models.EventDirectMessage}, drain(laptop))
}

func TestRegistry_Subscribe_Idempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	c := newTestClient("u1")
	req.NoError(registry.Register(c))

	req.NoError(registry.Subscribe(c, GroupRoom("g1")))
	req.NoError(registry.Subscribe(c, GroupRoom("g1")))

	req.Len(registry.Subscribers(GroupRoom("g1")), 1)
	req.Equal(1, registry.Fanout(GroupRoom("g1"), models.GroupJoined{GroupID: "g1"}))
}

func TestRegistry_Subscribe_UnknownConnection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	c := newTestClient("u1")

	req.ErrorIs(registry.Subscribe(c, GroupRoom("g1")), ErrConnNotFound)
	req.Empty(registry.Subscribers(GroupRoom("g1")))
}

func TestRegistry_FanoutExcept(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	a, b, c := newTestClient("a"), newTestClient("b"), newTestClient("c")
	for _, cl := range []*Client{a, b, c} {
		req.NoError(registry.Register(cl))
		req.NoError(registry.Subscribe(cl, GroupRoom("g1")))
	}

	n := registry.FanoutExcept(GroupRoom("g1"), models.UserJoined{GroupID: "g1", UserID: "a"}, a)

	req.Equal(2, n)
	req.Empty(drain(a))
	req.Equal([]models.EventName{models.EventUserJoined}, drain(b))
	req.Equal([]models.EventName{models.EventUserJoined}, drain(c))
}

func TestRegistry_Fanout_PartitionCorrect(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	in, out := newTestClient("in"), newTestClient("out")
	req.NoError(registry.Register(in))
	req.NoError(registry.Register(out))
	req.NoError(registry.Subscribe(in, GroupRoom("g1")))
	req.NoError(registry.Subscribe(out, GroupRoom("g2")))

	registry.Fanout(GroupRoom("g1"), models.GroupMessageDelivered{ID: "m"})

	req.Len(drain(in), 1)
	req.Empty(drain(out))
}

func TestRegistry_Unsubscribe(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	c := newTestClient("u1")
	req.NoError(registry.Register(c))
	req.NoError(registry.Subscribe(c, GroupRoom("g1")))

	req.NoError(registry.Unsubscribe(c, GroupRoom("g1")))
	req.NoError(registry.Unsubscribe(c, GroupRoom("g1")))

	req.Equal(0, registry.Fanout(GroupRoom("g1"), models.GroupLeft{GroupID: "g1"}))
	req.Equal([]Room{UserRoom("u1")}, registry.RoomsOf(c))
}

func TestRegistry_UnsubscribeUser(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	phone, laptop, other := newTestClient("u1"), newTestClient("u1"), newTestClient("u2")
	for _, cl := range []*Client{phone, laptop, other} {
		req.NoError(registry.Register(cl))
		req.NoError(registry.Subscribe(cl, GroupRoom("g1")))
	}

	req.Equal(2, registry.UnsubscribeUser("u1", GroupRoom("g1")))
	req.Equal([]string{other.ID()}, registry.Subscribers(GroupRoom("g1")))
}

func TestRegistry_Deregister_ExactlyOnce(t *testing.T) {
	req := require.New(t)
	var hooks int
	registry := NewRegistry(WithDeregisterHook(func(*Client) { hooks++ }))
	c := newTestClient("u1")
	req.NoError(registry.Register(c))
	req.NoError(registry.Subscribe(c, GroupRoom("g1")))

	req.NoError(registry.Deregister(c))
	req.ErrorIs(registry.Deregister(c), ErrConnNotFound)

	req.Equal(1, hooks)
	req.Equal(0, registry.Len())
	req.True(c.Closed())
	// no delivery after deregistration
	req.Equal(0, registry.Fanout(GroupRoom("g1"), models.GroupMessageDelivered{}))
	req.Equal(0, registry.Fanout(UserRoom("u1"), models.DirectMessageDelivered{}))
}

func TestRegistry_Close(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	c := newTestClient("u1")
	req.NoError(registry.Register(c))

	registry.Close()
	registry.Close()

	req.True(c.Closed())
	req.Equal(0, registry.Len())
	req.ErrorIs(registry.Register(newTestClient("u2")), ErrRegistryClosed)
	req.ErrorIs(registry.Deregister(c), ErrConnNotFound)
}

func TestRegistry_RegisterHook(t *testing.T) {
	req := require.New(t)
	var got []string
	registry := NewRegistry(WithRegisterHook(func(c *Client) { got = append(got, c.Principal().ID) }))

	req.NoError(registry.Register(newTestClient("u1")))

	req.Equal([]string{"u1"}, got)
}

func TestRegistry_ConcurrentSubscribeAndFanout(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	sender := newTestClient("s")
	req.NoError(registry.Register(sender))

	clients := make([]*Client, 50)
	for i := range clients {
		clients[i] = NewClient(nil, models.Principal{ID: "u"}, 64)
		req.NoError(registry.Register(clients[i]))
	}

	var wg sync.WaitGroup
	for _, c := range clients {
		wg.Add(2)
		go func(c *Client) {
			defer wg.Done()
			_ = registry.Subscribe(c, GroupRoom("g1"))
		}(c)
		go func() {
			defer wg.Done()
			registry.Fanout(GroupRoom("g1"), models.GroupMessageDelivered{ID: "m"})
		}()
	}
	wg.Wait()

	for _, c := range clients {
		req.False(c.Closed())
		req.LessOrEqual(len(drain(c)), len(clients))
	}
	req.Len(registry.Subscribers(GroupRoom("g1")), len(clients))
}
