package services

import (
	"context"
	"errors"
	"fmt"

	"chat-backend/internal/database"
	"chat-backend/internal/errs"
	"chat-backend/internal/models"
	ws "chat-backend/internal/websocket"
)

const (
	msgGroupNotFound = "Group not found"
	msgNotMember     = "You are not a member of this group"
	msgNotJoined     = "Not a member of this group"
)

// MembershipService keeps persisted group membership and live room
// subscriptions in step.
type MembershipService struct {
	db  database.Database
	hub Hub
}

func NewMembershipService(db database.Database, hub Hub) *MembershipService {
	return &MembershipService{db: db, hub: hub}
}

// Join makes the connection's principal a member of the group, subscribes the
// connection and tells the other subscribers. Joining again is allowed and
// announces the user again.
func (s *MembershipService) Join(ctx context.Context, c *ws.Client, groupID string) error {
	userID := c.Principal().ID

	if _, err := s.db.GetGroupByID(ctx, groupID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NotFound(msgGroupNotFound)
		}
		return fmt.Errorf("join group %s: %w", groupID, err)
	}

	if _, err := s.db.GetMembership(ctx, userID, groupID); err != nil {
		if !errors.Is(err, errs.ErrNotFound) {
			return fmt.Errorf("join group %s: %w", groupID, err)
		}
		_, err = s.db.CreateMembership(ctx, userID, groupID)
		switch {
		case err == nil, errors.Is(err, errs.ErrAlreadyExists):
			// a concurrent join created the row first
		case errors.Is(err, errs.ErrNotFound):
			return errs.NotFound(msgGroupNotFound)
		default:
			return fmt.Errorf("join group %s: %w", groupID, err)
		}
	}

	room := ws.GroupRoom(groupID)
	if err := s.hub.Subscribe(c, room); err != nil && !errors.Is(err, ws.ErrConnNotFound) {
		return fmt.Errorf("subscribe %s: %w", room, err)
	}
	s.hub.FanoutExcept(room, models.UserJoined{GroupID: groupID, UserID: userID}, c)
	return nil
}

// Leave removes the membership. Every live connection of the principal stops
// receiving the group, and the remaining subscribers are told.
//
// Two concurrent leaves race on the delete: one succeeds, the other reports
// that the user is not a member.
func (s *MembershipService) Leave(ctx context.Context, c *ws.Client, groupID string) error {
	userID := c.Principal().ID

	if err := s.db.DeleteMembership(ctx, userID, groupID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.NotFound(msgNotJoined)
		}
		return fmt.Errorf("leave group %s: %w", groupID, err)
	}

	room := ws.GroupRoom(groupID)
	s.hub.UnsubscribeUser(userID, room)
	s.hub.FanoutExcept(room, models.UserLeft{GroupID: groupID, UserID: userID}, c)
	return nil
}

// RequireMember fails with errs.ErrForbidden unless p is a member of the group.
func (s *MembershipService) RequireMember(ctx context.Context, p models.Principal, groupID string) error {
	if _, err := s.db.GetMembership(ctx, p.ID, groupID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.Forbidden(msgNotMember)
		}
		return fmt.Errorf("check membership %s: %w", groupID, err)
	}
	return nil
}
