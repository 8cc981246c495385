package models

import "time"

type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Membership struct {
	UserID   string    `json:"userId"`
	GroupID  string    `json:"groupId"`
	JoinedAt time.Time `json:"joinedAt"`
}

// GroupSummary is a group as seen by one of its members.
type GroupSummary struct {
	Group
	MemberCount int       `json:"memberCount"`
	JoinedAt    time.Time `json:"joinedAt"`
}

type Member struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	JoinedAt  time.Time `json:"joinedAt"`
}

type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=3,max=100"`
}

type DirectMessage struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type GroupMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	GroupID   string    `json:"groupId"`
	CreatedAt time.Time `json:"createdAt"`
}
