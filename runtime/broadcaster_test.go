package runtime

import (
	"context"
	"log/slog"
	"market-hub/domain/event"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []event.DomainEvent
}

func (s *recordingSink) Consume(_ context.Context, e event.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *recordingSink) Events() []event.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]event.DomainEvent(nil), s.events...)
}

type failingSink struct{}

func (failingSink) Consume(context.Context, event.DomainEvent) error {
	return context.Canceled
}

func testEvent(group string) event.DomainEvent {
	return event.ChatMessageReceived{Group: group}
}

func TestBroadcaster_Delivers_To_All_Group_Members(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry()
	broadcaster := NewBroadcaster(log, registry, time.Second)

	first := &recordingSink{}
	second := &recordingSink{}
	firstID, secondID := uuid.NewString(), uuid.NewString()
	registry.Connect(firstID, first)
	registry.Connect(secondID, second)
	registry.Join(firstID, "chat:req-123")
	registry.Join(secondID, "chat:req-123")

	// When broadcasting to the group
	broadcaster.Broadcast(context.Background(), "chat:req-123", testEvent("chat:req-123"))

	// Then both members received exactly one event
	req.Len(first.Events(), 1)
	req.Len(second.Events(), 1)
}

func TestBroadcaster_Respects_Group_Isolation(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry()
	broadcaster := NewBroadcaster(log, registry, time.Second)

	member := &recordingSink{}
	outsider := &recordingSink{}
	memberID, outsiderID := uuid.NewString(), uuid.NewString()
	registry.Connect(memberID, member)
	registry.Connect(outsiderID, outsider)
	registry.Join(memberID, "chat:req-123")
	registry.Join(outsiderID, "chat:req-456")

	// When broadcasting to req-123 only
	broadcaster.Broadcast(context.Background(), "chat:req-123", testEvent("chat:req-123"))

	// Then the req-456 member never sees it
	req.Len(member.Events(), 1)
	req.Empty(outsider.Events())
}

func TestBroadcaster_Failed_Send_Does_Not_Abort_Others(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry()
	broadcaster := NewBroadcaster(log, registry, time.Second)

	healthy := &recordingSink{}
	healthyID, brokenID := uuid.NewString(), uuid.NewString()
	registry.Connect(brokenID, failingSink{})
	registry.Connect(healthyID, healthy)
	registry.Join(brokenID, "chat:req-123")
	registry.Join(healthyID, "chat:req-123")

	// When one member's send fails mid-broadcast
	broadcaster.Broadcast(context.Background(), "chat:req-123", testEvent("chat:req-123"))

	// Then the healthy member still got the event
	req.Len(healthy.Events(), 1)
}

func TestBroadcaster_Unknown_Group_Is_NoOp(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry()
	broadcaster := NewBroadcaster(log, registry, time.Second)

	// Broadcasting into the void must not panic or error
	broadcaster.Broadcast(context.Background(), "nobody-home", testEvent("nobody-home"))
}
