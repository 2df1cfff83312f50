package ws

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Frame is one inbound client request on any channel. Channels ignore
// actions they do not serve.
type Frame struct {
	Action         string `json:"action" validate:"required,oneof=joinChat leaveChat sendMessage joinUserNotifications joinAdminMonitoring"`
	ConversationID string `json:"conversationId,omitempty" validate:"max=128"`
	UserID         string `json:"userId,omitempty" validate:"max=128"`
	Body           string `json:"body,omitempty" validate:"max=4000"`
}

func ValidateFrame(f Frame) error {
	return validate.Struct(f)
}

// outboundFrame wraps a domain event for the wire: the event name tags
// the payload so clients can dispatch on it.
type outboundFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}
