package services

import (
	"chat-backend/internal/models"
	ws "chat-backend/internal/websocket"
)

// Hub is the live delivery surface used by the services. It is implemented by
// *websocket.Registry on a single node and by *cluster.Bridge across nodes.
type Hub interface {
	Subscribe(c *ws.Client, room ws.Room) error
	UnsubscribeUser(userID string, room ws.Room) int
	Fanout(room ws.Room, ev models.Outbound) int
	FanoutExcept(room ws.Room, ev models.Outbound, except *ws.Client) int
}
