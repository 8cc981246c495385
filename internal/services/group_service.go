package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chat-backend/internal/database"
	"chat-backend/internal/errs"
	"chat-backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// GroupService backs the REST endpoints for groups.
type GroupService struct {
	db       database.Database
	members  *MembershipService
	validate *validator.Validate
}

func NewGroupService(db database.Database, members *MembershipService) *GroupService {
	return &GroupService{
		db:       db,
		members:  members,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateGroup creates a group with the caller as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, p models.Principal, req *models.CreateGroupRequest) (*models.Group, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		return nil, errs.Invalid("Group name must be between 3 and 100 characters")
	}

	group, err := s.db.CreateGroup(ctx, req.Name, p.ID)
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return group, nil
}

func (s *GroupService) ListGroups(ctx context.Context, p models.Principal) ([]*models.GroupSummary, error) {
	groups, err := s.db.ListUserGroups(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	if groups == nil {
		groups = []*models.GroupSummary{}
	}
	return groups, nil
}

// GetGroupMembers lists the members of a group the caller belongs to.
func (s *GroupService) GetGroupMembers(ctx context.Context, p models.Principal, groupID string) ([]*models.Member, error) {
	if _, err := s.db.GetGroupByID(ctx, groupID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.NotFound(msgGroupNotFound)
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	if err := s.members.RequireMember(ctx, p, groupID); err != nil {
		return nil, err
	}

	members, err := s.db.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	if members == nil {
		members = []*models.Member{}
	}
	return members, nil
}
