package websocket

import (
	"context"
	"sync"
	"testing"
	"time"

	"chat-backend/internal/models"

	"github.com/stretchr/testify/require"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	frames []string
	seen   chan struct{}
}

func (d *recordingDispatcher) Dispatch(_ context.Context, _ *Client, frame []byte) {
	d.mu.Lock()
	d.frames = append(d.frames, string(frame))
	d.mu.Unlock()
	d.seen <- struct{}{}
}

func TestClient_ProcessEvents_InOrder(t *testing.T) {
	req := require.New(t)
	c := newTestClient("u1")
	d := &recordingDispatcher{seen: make(chan struct{}, 8)}

	c.inbox <- []byte("1")
	c.inbox <- []byte("2")
	c.inbox <- []byte("3")

	done := make(chan struct{})
	go func() {
		c.ProcessEvents(context.Background(), d)
		close(done)
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-d.seen:
		case <-time.After(time.Second):
			t.Fatal("frame not dispatched")
		}
	}
	c.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ProcessEvents did not stop after Close")
	}
	req.Equal([]string{"1", "2", "3"}, d.frames)
}

func TestClient_ProcessEvents_DiscardsAfterClose(t *testing.T) {
	c := newTestClient("u1")
	d := &recordingDispatcher{seen: make(chan struct{}, 8)}

	c.Close()
	c.inbox <- []byte("late")
	c.ProcessEvents(context.Background(), d)

	require.Empty(t, d.frames)
}

func TestClient_Send_AfterClose(t *testing.T) {
	req := require.New(t)
	c := newTestClient("u1")

	c.Close()
	c.Close()

	req.False(c.Send([]byte("x")))
	req.False(c.SendEvent(models.ErrorEvent{Message: "x"}))
}

func TestClient_Send_EvictsSlowConsumer(t *testing.T) {
	req := require.New(t)
	c := NewClient(nil, models.Principal{ID: "u1"}, 2)

	req.True(c.Send([]byte("1")))
	req.True(c.Send([]byte("2")))
	req.False(c.Send([]byte("3")))

	req.True(c.Closed())
	select {
	case <-c.Done():
	default:
		t.Fatal("evicted client not closed")
	}
}

func TestRegistry_EvictionDoesNotStopFanout(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	slow := NewClient(nil, models.Principal{ID: "slow"}, 1)
	fast := newTestClient("fast")
	for _, c := range []*Client{slow, fast} {
		req.NoError(registry.Register(c))
		req.NoError(registry.Subscribe(c, GroupRoom("g1")))
	}

	registry.Fanout(GroupRoom("g1"), models.GroupMessageDelivered{ID: "1"})
	registry.Fanout(GroupRoom("g1"), models.GroupMessageDelivered{ID: "2"})

	req.True(slow.Closed())
	req.Len(drain(fast), 2)
}
