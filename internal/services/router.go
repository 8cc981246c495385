package services

import (
	"context"
	"errors"
	"fmt"

	"chat-backend/internal/database"
	"chat-backend/internal/errs"
	"chat-backend/internal/models"
	ws "chat-backend/internal/websocket"
	"chat-backend/pkg/logger"
)

const (
	msgReceiverNotFound = "Receiver not found"
	msgSendFailed       = "Failed to send message"
	msgJoinFailed       = "Failed to join group"
	msgLeaveFailed      = "Failed to leave group"
	msgUnknownEvent     = "Unknown event"
	msgInvalidPayload   = "Invalid payload"
)

// Router turns inbound frames into persisted messages and fan-out.
type Router struct {
	db      database.Database
	hub     Hub
	members *MembershipService
}

func NewRouter(db database.Database, hub Hub, members *MembershipService) *Router {
	return &Router{db: db, hub: hub, members: members}
}

// Dispatch decodes one frame and runs its handler. Failures are reported to
// the sending connection as an error event and never close it.
func (r *Router) Dispatch(ctx context.Context, c *ws.Client, frame []byte) {
	ev, err := ws.DecodeInbound(frame)
	if err != nil {
		logger.Debugw("rejected frame", "conn", c.ID(), "error", err)
		msg := msgInvalidPayload
		if errors.Is(err, ws.ErrUnknownEvent) {
			msg = msgUnknownEvent
		}
		c.SendEvent(models.ErrorEvent{Message: msg})
		return
	}

	var fallback string
	switch e := ev.(type) {
	case models.SendDirectMessage:
		err, fallback = r.HandleDirectMessage(ctx, c, e.ReceiverID, e.Content), msgSendFailed
	case models.JoinGroup:
		err, fallback = r.HandleGroupJoin(ctx, c, e.GroupID), msgJoinFailed
	case models.LeaveGroup:
		err, fallback = r.HandleGroupLeave(ctx, c, e.GroupID), msgLeaveFailed
	case models.SendGroupMessage:
		err, fallback = r.HandleGroupMessage(ctx, c, e.GroupID, e.Content), msgSendFailed
	}
	if err != nil {
		r.fail(c, ev.Name(), err, fallback)
	}
}

func (r *Router) fail(c *ws.Client, event models.EventName, err error, fallback string) {
	if !errs.IsPublic(err) {
		logger.Errorw("event failed", "event", event, "user", c.Principal().ID, "conn", c.ID(), "error", err)
	}
	c.SendEvent(models.ErrorEvent{Message: errs.PublicMessage(err, fallback)})
}

func (r *Router) HandleDirectMessage(ctx context.Context, c *ws.Client, receiverID, content string) error {
	if _, err := r.db.GetUserByID(ctx, receiverID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NotFound(msgReceiverNotFound)
		}
		return fmt.Errorf("lookup receiver: %w", err)
	}

	msg, err := r.db.CreateDirectMessage(ctx, c.Principal().ID, receiverID, content)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NotFound(msgReceiverNotFound)
		}
		return fmt.Errorf("store direct message: %w", err)
	}

	r.hub.Fanout(ws.UserRoom(receiverID), models.DirectMessageDelivered{
		ID:        msg.ID,
		Content:   msg.Content,
		SenderID:  msg.SenderID,
		CreatedAt: msg.CreatedAt,
	})
	c.SendEvent(models.MessageSent{
		ID:         msg.ID,
		Content:    msg.Content,
		ReceiverID: msg.ReceiverID,
		CreatedAt:  msg.CreatedAt,
	})
	return nil
}

func (r *Router) HandleGroupJoin(ctx context.Context, c *ws.Client, groupID string) error {
	if err := r.members.Join(ctx, c, groupID); err != nil {
		return err
	}
	c.SendEvent(models.GroupJoined{GroupID: groupID})
	return nil
}

func (r *Router) HandleGroupLeave(ctx context.Context, c *ws.Client, groupID string) error {
	if err := r.members.Leave(ctx, c, groupID); err != nil {
		return err
	}
	c.SendEvent(models.GroupLeft{GroupID: groupID})
	return nil
}

// HandleGroupMessage stores the message and delivers it to every subscriber
// of the group, the sender included.
func (r *Router) HandleGroupMessage(ctx context.Context, c *ws.Client, groupID, content string) error {
	p := c.Principal()
	if err := r.members.RequireMember(ctx, p, groupID); err != nil {
		return err
	}

	msg, err := r.db.CreateGroupMessage(ctx, p.ID, groupID, content)
	if err != nil {
		return fmt.Errorf("store group message: %w", err)
	}

	r.hub.Fanout(ws.GroupRoom(groupID), models.GroupMessageDelivered{
		ID:        msg.ID,
		Content:   msg.Content,
		UserID:    msg.UserID,
		GroupID:   msg.GroupID,
		CreatedAt: msg.CreatedAt,
	})
	return nil
}
