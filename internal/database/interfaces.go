//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=../mocks/mock_database.go -package=mocks
package database

import (
	"context"

	"chat-backend/internal/models"
)

// Lookups return an error wrapping errs.ErrNotFound when the row is missing.
// Any other failure wraps errs.ErrStorage.

type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

type GroupRepository interface {
	GetGroupByID(ctx context.Context, id string) (*models.Group, error)
	// CreateGroup stores the group and makes creatorID its first member.
	CreateGroup(ctx context.Context, name, creatorID string) (*models.Group, error)
	ListUserGroups(ctx context.Context, userID string) ([]*models.GroupSummary, error)
}

type MembershipRepository interface {
	GetMembership(ctx context.Context, userID, groupID string) (*models.Membership, error)
	// CreateMembership fails with errs.ErrAlreadyExists when the pair exists.
	CreateMembership(ctx context.Context, userID, groupID string) (*models.Membership, error)
	// DeleteMembership fails with errs.ErrNotFound when no row was removed.
	DeleteMembership(ctx context.Context, userID, groupID string) error
	ListGroupMembers(ctx context.Context, groupID string) ([]*models.Member, error)
}

type MessageRepository interface {
	CreateDirectMessage(ctx context.Context, senderID, receiverID, content string) (*models.DirectMessage, error)
	CreateGroupMessage(ctx context.Context, userID, groupID, content string) (*models.GroupMessage, error)
}

type Database interface {
	UserRepository
	GroupRepository
	MembershipRepository
	MessageRepository
	Close() error
}
