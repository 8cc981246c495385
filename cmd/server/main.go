package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chat-backend/internal/auth"
	"chat-backend/internal/cluster"
	"chat-backend/internal/config"
	"chat-backend/internal/database"
	"chat-backend/internal/handlers"
	"chat-backend/internal/presence"
	"chat-backend/internal/services"
	ws "chat-backend/internal/websocket"
	"chat-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

func main() {
	if err := run(); err != nil {
		logger.Fatal("Server stopped: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.SetLevel(cfg.LogLevel)
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	authService := auth.NewService(db, []byte(cfg.JWT.Secret), cfg.JWT.ExpiresIn)

	// tracker is assigned below; hooks only fire once the server accepts
	// connections
	var tracker presence.Tracker
	registry := ws.NewRegistry(
		ws.WithRegisterHook(func(c *ws.Client) { trackPresence(tracker.Online, c) }),
		ws.WithDeregisterHook(func(c *ws.Client) { trackPresence(tracker.Offline, c) }),
	)

	if cfg.Redis.Addr != "" {
		rdb, err := presence.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		defer rdb.Close()
		tracker = presence.NewRedisTracker(rdb, cfg.Redis.PresenceTTL)
		go presence.Keepalive(ctx, tracker, cfg.Redis.PresenceTTL/2, func() []presence.Session {
			return lo.Map(registry.Clients(), func(c *ws.Client, _ int) presence.Session { return session(c) })
		}, func(err error) { logger.Warnw("presence refresh failed", "error", err) })
		logger.Info("Presence tracking via Redis at %s", cfg.Redis.Addr)
	} else {
		tracker = presence.NewLocalTracker(registry)
	}

	var hub services.Hub = registry
	if cfg.NATS.URL != "" {
		nc, err := cluster.Connect(cfg.NATS.URL, "chat-backend")
		if err != nil {
			return fmt.Errorf("connect nats: %w", err)
		}
		defer nc.Drain()

		bridge := cluster.NewBridge(registry, nc, cfg.NATS.Subject, cfg.NATS.NodeID)
		if err := bridge.Start(); err != nil {
			return fmt.Errorf("start cluster bridge: %w", err)
		}
		defer bridge.Close()
		hub = bridge
	}

	members := services.NewMembershipService(db, hub)
	router := services.NewRouter(db, hub, members)
	groups := services.NewGroupService(db, members)

	origins := cfg.AllowedOrigins()
	engine := handlers.NewEngine(authService,
		handlers.NewWebSocketHandlers(ctx, authService, registry, router, origins, cfg.Server.SendBufferSize),
		handlers.NewGroupHandlers(groups, tracker),
		origins)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server started on http://localhost%s", cfg.Server.Port)
		logger.Info("WebSocket endpoint: ws://localhost%s/ws", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Server shutting down, closing %d connections...", registry.Len())
	registry.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (database.Database, error) {
	switch cfg.Storage {
	case config.StorageBadger:
		db, err := database.NewBadgerDB(cfg.BadgerPath)
		if err != nil {
			return nil, fmt.Errorf("open badger: %w", err)
		}
		return db, nil
	default:
		db, err := database.NewPostgresDB(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return db, nil
	}
}

func session(c *ws.Client) presence.Session {
	return presence.Session{UserID: c.Principal().ID, ConnID: c.ID()}
}

func trackPresence(fn func(context.Context, presence.Session) error, c *ws.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := fn(ctx, session(c)); err != nil {
		logger.Warnw("presence update failed", "conn", c.ID(), "user", c.Principal().ID, "error", err)
	}
}
