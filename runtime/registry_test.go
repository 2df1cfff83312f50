package runtime

import (
	"context"
	"market-hub/domain/event"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type Sink struct{}

func (s Sink) Consume(ctx context.Context, e event.DomainEvent) error {
	return nil
}

func TestRegistry_Join_One_Group_One_Connection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := uuid.NewString()
	sink := Sink{}

	// Given a connected session
	registry.Connect(connID, sink)

	// When the connection joins a group
	registry.Join(connID, "chat:req-123")

	// Then the group holds exactly that sink
	req.Len(registry.SinksFor("chat:req-123"), 1)
	req.Contains(registry.SinksFor("chat:req-123"), sink)
	req.Equal([]string{connID}, registry.MembersOf("chat:req-123"))
}

func TestRegistry_Join_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := uuid.NewString()
	registry.Connect(connID, Sink{})

	// When the same connection joins the same group twice
	registry.Join(connID, "chat:req-123")
	registry.Join(connID, "chat:req-123")

	// Then the member set is the same as joining once
	req.Len(registry.MembersOf("chat:req-123"), 1)
	req.Len(registry.SinksFor("chat:req-123"), 1)
}

func TestRegistry_Join_Rejects_Blank_Group(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := uuid.NewString()
	registry.Connect(connID, Sink{})

	// When joining blank or whitespace group names
	registry.Join(connID, "")
	registry.Join(connID, "   ")

	// Then no membership was created
	req.Empty(registry.MembersOf(""))
	req.Empty(registry.MembersOf("   "))
	_, groups := registry.Stats()
	req.Zero(groups)
}

func TestRegistry_Join_Requires_Connected_Session(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	// When an unknown connection joins
	registry.Join(uuid.NewString(), "chat:req-123")

	// Then the group stays empty
	req.Empty(registry.SinksFor("chat:req-123"))
}

func TestRegistry_Leave_NonMember_Is_NoOp(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	member := uuid.NewString()
	stranger := uuid.NewString()
	registry.Connect(member, Sink{})
	registry.Connect(stranger, Sink{})
	registry.Join(member, "chat:req-123")

	// When a non-member leaves
	registry.Leave(stranger, "chat:req-123")

	// Then the member set is untouched
	req.Len(registry.MembersOf("chat:req-123"), 1)
}

func TestRegistry_Unknown_Group_Is_Empty_Set(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	req.Nil(registry.SinksFor("never-created"))
	req.Empty(registry.MembersOf("never-created"))
}

func TestRegistry_OnDisconnect_Cleans_All_Groups(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	connID := uuid.NewString()
	other := uuid.NewString()
	registry.Connect(connID, Sink{})
	registry.Connect(other, Sink{})

	// Given a connection joined to groups A and B
	registry.Join(connID, "A")
	registry.Join(connID, "B")
	registry.Join(other, "A")

	// When the connection disconnects
	registry.OnDisconnect(connID)

	// Then it is absent from every group immediately
	req.NotContains(registry.MembersOf("A"), connID)
	req.NotContains(registry.MembersOf("B"), connID)

	// And the other member is still there
	req.Equal([]string{other}, registry.MembersOf("A"))

	// And empty groups disappeared entirely
	connections, groups := registry.Stats()
	req.Equal(1, connections)
	req.Equal(1, groups)
}

func TestRegistry_Group_Isolation(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	first := uuid.NewString()
	second := uuid.NewString()
	registry.Connect(first, Sink{})
	registry.Connect(second, Sink{})

	// Given two connections in two different groups
	registry.Join(first, "chat:req-123")
	registry.Join(second, "chat:req-456")

	// Then neither group sees the other's member
	req.Equal([]string{first}, registry.MembersOf("chat:req-123"))
	req.Equal([]string{second}, registry.MembersOf("chat:req-456"))
}

func TestRegistry_Concurrent_Join_Leave(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	// When many goroutines join and leave independent connections
	var wg sync.WaitGroup
	const n = 100
	ids := make([]string, n)
	for i := 0; i < n; i++ {
		ids[i] = uuid.NewString()
		registry.Connect(ids[i], Sink{})
	}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(connID string) {
			defer wg.Done()
			registry.Join(connID, "shared")
			registry.Join(connID, "private:"+connID)
			registry.Leave(connID, "private:"+connID)
		}(ids[i])
	}
	wg.Wait()

	// Then every connection made it into the shared group exactly once
	req.Len(registry.MembersOf("shared"), n)
	_, groups := registry.Stats()
	req.Equal(1, groups)
}
