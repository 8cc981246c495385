// Package presence records which users hold live connections.
package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Status struct {
	UserID      string `json:"userId"`
	Online      bool   `json:"online"`
	Connections int    `json:"connections"`
}

// Session identifies one live connection of a user.
type Session struct {
	UserID string
	ConnID string
}

type Tracker interface {
	Online(ctx context.Context, s Session) error
	Offline(ctx context.Context, s Session) error
	Refresh(ctx context.Context, sessions []Session) error
	Lookup(ctx context.Context, userID string) (Status, error)
}

// presence key: chat:presence:<user>, a set of connection ids whose TTL is
// renewed by Online and Refresh.
func presenceKey(userID string) string { return "chat:presence:" + userID }

type RedisTracker struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

func NewRedisTracker(rdb redis.UniversalClient, ttl time.Duration) *RedisTracker {
	return &RedisTracker{rdb: rdb, ttl: ttl}
}

// Connect opens a client and checks it can reach the server.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return rdb, nil
}

func (t *RedisTracker) Online(ctx context.Context, s Session) error {
	key := presenceKey(s.UserID)
	_, err := t.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, key, s.ConnID)
		pipe.Expire(ctx, key, t.ttl)
		return nil
	})
	return err
}

func (t *RedisTracker) Offline(ctx context.Context, s Session) error {
	return t.rdb.SRem(ctx, presenceKey(s.UserID), s.ConnID).Err()
}

// Refresh re-adds every session and renews its TTL.
func (t *RedisTracker) Refresh(ctx context.Context, sessions []Session) error {
	if len(sessions) == 0 {
		return nil
	}
	_, err := t.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, s := range sessions {
			key := presenceKey(s.UserID)
			pipe.SAdd(ctx, key, s.ConnID)
			pipe.Expire(ctx, key, t.ttl)
		}
		return nil
	})
	return err
}

func (t *RedisTracker) Lookup(ctx context.Context, userID string) (Status, error) {
	n, err := t.rdb.SCard(ctx, presenceKey(userID)).Result()
	if err != nil {
		return Status{}, err
	}
	return Status{UserID: userID, Online: n > 0, Connections: int(n)}, nil
}

// ConnectionCounter reports live connections held by this node.
type ConnectionCounter interface {
	UserConnections(userID string) int
}

// LocalTracker answers lookups from this node's registry alone. It is used
// when no Redis is configured.
type LocalTracker struct {
	counter ConnectionCounter
}

func NewLocalTracker(counter ConnectionCounter) *LocalTracker {
	return &LocalTracker{counter: counter}
}

func (t *LocalTracker) Online(context.Context, Session) error    { return nil }
func (t *LocalTracker) Offline(context.Context, Session) error   { return nil }
func (t *LocalTracker) Refresh(context.Context, []Session) error { return nil }

func (t *LocalTracker) Lookup(_ context.Context, userID string) (Status, error) {
	n := t.counter.UserConnections(userID)
	return Status{UserID: userID, Online: n > 0, Connections: n}, nil
}

// Keepalive calls Refresh with the current sessions every interval until ctx
// is done.
func Keepalive(ctx context.Context, t Tracker, interval time.Duration, sessions func() []Session, onErr func(error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.Refresh(ctx, sessions()); err != nil && onErr != nil {
				onErr(err)
			}
		}
	}
}
