package event

import (
	"encoding/json"
	"market-hub/domain"
	"strings"
	"time"
)

// DomainEvent is anything the broadcaster can push to a group.
type DomainEvent interface {
	GroupName() string
	EventName() string
}

// ChatMessageReceived carries one chat message to every member of a
// conversation group.
type ChatMessageReceived struct {
	Group   string
	Message domain.ChatMessage
}

func (e ChatMessageReceived) GroupName() string { return e.Group }
func (e ChatMessageReceived) EventName() string { return "ReceiveChatMessage" }

// MarshalJSON flattens the envelope: members receive the message itself,
// the group is routing metadata and never goes on the wire.
func (e ChatMessageReceived) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Message)
}

// MonitoringUpdated is the envelope pushed over the admin monitoring group
// after a trigger wins the debounce gate.
type MonitoringUpdated struct {
	Source        string    `json:"Source"`
	AffectedCount int       `json:"AffectedCount"`
	AtUtc         time.Time `json:"AtUtc"`
}

// NewMonitoringUpdated sanitizes the raw trigger payload: a blank source
// becomes "unknown" and a negative affected count is clamped to zero.
func NewMonitoringUpdated(source string, affectedCount int, at time.Time) MonitoringUpdated {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		trimmed = "unknown"
	}
	if affectedCount < 0 {
		affectedCount = 0
	}
	return MonitoringUpdated{Source: trimmed, AffectedCount: affectedCount, AtUtc: at.UTC()}
}

func (e MonitoringUpdated) GroupName() string { return domain.AdminMonitoringGroup }
func (e MonitoringUpdated) EventName() string { return "MonitoringUpdated" }

// UserNotification targets one user's personal group. What it announces
// (proposal invalidated, appointment moved, ...) is decided by the
// external domain caller; this layer only routes it.
type UserNotification struct {
	Group string         `json:"-"`
	Kind  string         `json:"kind"`
	Data  map[string]any `json:"data,omitempty"`
	AtUtc time.Time      `json:"atUtc"`
}

func (e UserNotification) GroupName() string { return e.Group }
func (e UserNotification) EventName() string { return "ReceiveNotification" }
