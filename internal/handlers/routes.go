package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

// NewEngine builds the HTTP surface: health, the websocket endpoint and the
// authenticated REST API.
func NewEngine(verifier CredentialVerifier, wsh *WebSocketHandlers, gh *GroupHandlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), CORS(allowedOrigins))

	r.GET("/health", Health)
	r.GET("/ws", wsh.HandleWebSocket)

	api := r.Group("/api", AuthMiddleware(verifier))
	api.POST("/groups", gh.CreateGroup)
	api.GET("/groups", gh.ListGroups)
	api.GET("/groups/:id/members", gh.GetGroupMembers)
	api.GET("/users/:id/presence", gh.GetPresence)
	return r
}
