package handlers

import (
	"context"
	"net/http"

	ws "chat-backend/internal/websocket"
	"chat-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type WebSocketHandlers struct {
	verifier   CredentialVerifier
	registry   *ws.Registry
	dispatcher ws.Dispatcher
	sendBuffer int
	upgrader   websocket.Upgrader

	// event handlers run under this context rather than the request's,
	// which ends as soon as the upgrade returns
	ctx context.Context
}

func NewWebSocketHandlers(ctx context.Context, verifier CredentialVerifier, registry *ws.Registry, dispatcher ws.Dispatcher, allowedOrigins []string, sendBuffer int) *WebSocketHandlers {
	return &WebSocketHandlers{
		ctx:        ctx,
		verifier:   verifier,
		registry:   registry,
		dispatcher: dispatcher,
		sendBuffer: sendBuffer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return OriginAllowed(allowedOrigins, r.Header.Get("Origin"))
			},
		},
	}
}

// HandleWebSocket authenticates the handshake, upgrades it and starts the
// connection's pumps. Nothing is registered when authentication fails.
func (h *WebSocketHandlers) HandleWebSocket(c *gin.Context) {
	p, err := h.verifier.VerifyCredential(c.Request.Context(), BearerToken(c.Request))
	if err != nil {
		abortUnauthenticated(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("Upgrade error: %v", err)
		return
	}

	client := ws.NewClient(conn, *p, h.sendBuffer)
	if err := h.registry.Register(client); err != nil {
		logger.Warnw("refusing connection", "user", p.ID, "error", err)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		return
	}
	logger.Infow("connection opened", "conn", client.ID(), "user", p.ID)

	go client.WritePump()
	go client.ProcessEvents(h.ctx, h.dispatcher)
	go client.ReadPump(h.registry)
}
