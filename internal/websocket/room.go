package websocket

import (
	"fmt"
	"strings"
)

type RoomKind uint8

const (
	RoomUser RoomKind = iota + 1
	RoomGroup
)

// Room is a delivery target: the implicit room of a user or a group room.
type Room struct {
	Kind RoomKind
	ID   string
}

func UserRoom(userID string) Room   { return Room{Kind: RoomUser, ID: userID} }
func GroupRoom(groupID string) Room { return Room{Kind: RoomGroup, ID: groupID} }

func (r Room) String() string {
	switch r.Kind {
	case RoomUser:
		return "user:" + r.ID
	case RoomGroup:
		return "group:" + r.ID
	default:
		return "unknown:" + r.ID
	}
}

// ParseRoom is the inverse of Room.String.
func ParseRoom(s string) (Room, error) {
	kind, id, ok := strings.Cut(s, ":")
	if !ok || id == "" {
		return Room{}, fmt.Errorf("malformed room %q", s)
	}
	switch kind {
	case "user":
		return UserRoom(id), nil
	case "group":
		return GroupRoom(id), nil
	default:
		return Room{}, fmt.Errorf("unknown room kind %q", kind)
	}
}
