package websocket

import (
	"encoding/json"
	"errors"
	"fmt"

	"chat-backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnknownEvent   = errors.New("unknown event")
	ErrInvalidPayload = errors.New("invalid payload")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeInbound parses a client frame into one of the inbound event types and
// validates its payload.
func DecodeInbound(raw []byte) (models.Inbound, error) {
	var frame models.Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var ev models.Inbound
	switch frame.Event {
	case models.EventDirectMessage:
		ev = &models.SendDirectMessage{}
	case models.EventJoinGroup:
		ev = &models.JoinGroup{}
	case models.EventLeaveGroup:
		ev = &models.LeaveGroup{}
	case models.EventGroupMessage:
		ev = &models.SendGroupMessage{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, frame.Event)
	}

	if len(frame.Data) == 0 {
		return nil, fmt.Errorf("%w: missing data", ErrInvalidPayload)
	}
	if err := json.Unmarshal(frame.Data, ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := validate.Struct(ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return deref(ev), nil
}

func deref(ev models.Inbound) models.Inbound {
	switch e := ev.(type) {
	case *models.SendDirectMessage:
		return *e
	case *models.JoinGroup:
		return *e
	case *models.LeaveGroup:
		return *e
	case *models.SendGroupMessage:
		return *e
	}
	return ev
}

// Encode renders an outbound event as a wire frame.
func Encode(ev models.Outbound) ([]byte, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return json.Marshal(models.Frame{Event: ev.Name(), Data: data})
}
