package models

import (
	"encoding/json"
	"time"
)

type EventName string

const (
	EventDirectMessage EventName = "direct-message"
	EventJoinGroup     EventName = "join-group"
	EventLeaveGroup    EventName = "leave-group"
	EventGroupMessage  EventName = "group-message"
	EventMessageSent   EventName = "message-sent"
	EventGroupJoined   EventName = "group-joined"
	EventUserJoined    EventName = "user-joined"
	EventGroupLeft     EventName = "group-left"
	EventUserLeft      EventName = "user-left"
	EventError         EventName = "error"
)

// Frame is the envelope of every websocket text message in both directions.
type Frame struct {
	Event EventName       `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Inbound is one of the events a client may send.
type Inbound interface {
	Name() EventName
	inbound()
}

type SendDirectMessage struct {
	ReceiverID string `json:"receiverId" validate:"required,uuid"`
	Content    string `json:"content" validate:"required"`
}

type JoinGroup struct {
	GroupID string `json:"groupId" validate:"required,uuid"`
}

type LeaveGroup struct {
	GroupID string `json:"groupId" validate:"required,uuid"`
}

type SendGroupMessage struct {
	GroupID string `json:"groupId" validate:"required,uuid"`
	Content string `json:"content" validate:"required"`
}

func (SendDirectMessage) Name() EventName { return EventDirectMessage }
func (JoinGroup) Name() EventName         { return EventJoinGroup }
func (LeaveGroup) Name() EventName        { return EventLeaveGroup }
func (SendGroupMessage) Name() EventName  { return EventGroupMessage }

func (SendDirectMessage) inbound() {}
func (JoinGroup) inbound()         {}
func (LeaveGroup) inbound()        {}
func (SendGroupMessage) inbound()  {}

// Outbound is one of the events the server emits.
type Outbound interface {
	Name() EventName
	outbound()
}

type DirectMessageDelivered struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	SenderID  string    `json:"senderId"`
	CreatedAt time.Time `json:"createdAt"`
}

type MessageSent struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	ReceiverID string    `json:"receiverId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type GroupJoined struct {
	GroupID string `json:"groupId"`
}

type UserJoined struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
}

type GroupLeft struct {
	GroupID string `json:"groupId"`
}

type UserLeft struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
}

type GroupMessageDelivered struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	GroupID   string    `json:"groupId"`
	CreatedAt time.Time `json:"createdAt"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}

func (DirectMessageDelivered) Name() EventName { return EventDirectMessage }
func (MessageSent) Name() EventName            { return EventMessageSent }
func (GroupJoined) Name() EventName            { return EventGroupJoined }
func (UserJoined) Name() EventName             { return EventUserJoined }
func (GroupLeft) Name() EventName              { return EventGroupLeft }
func (UserLeft) Name() EventName               { return EventUserLeft }
func (GroupMessageDelivered) Name() EventName  { return EventGroupMessage }
func (ErrorEvent) Name() EventName             { return EventError }

func (DirectMessageDelivered) outbound() {}
func (MessageSent) outbound()            {}
func (GroupJoined) outbound()            {}
func (UserJoined) outbound()             {}
func (GroupLeft) outbound()              {}
func (UserLeft) outbound()               {}
func (GroupMessageDelivered) outbound()  {}
func (ErrorEvent) outbound()             {}
