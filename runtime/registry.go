// Package runtime holds the shared connection registry, the group
// broadcaster, and the debounce coordinator. It propagates events without
// containing business logic or domain rules.
package runtime

import (
	"market-hub/contract"
	"strings"
	"sync"
)

type Set map[string]struct{}

// Registry is the only globally shared mutable structure of the realtime
// layer. It binds connection ids to their sinks and tracks which groups
// each connection belongs to. Groups have no lifecycle of their own: a
// group is simply the set of connections sharing a name, and an unknown
// name is an empty set.
type Registry struct {
	mu           sync.RWMutex
	sessions     map[string]contract.EventSink // conn id -> delivery sink
	groupMembers map[string]Set                // group -> conn ids
	memberships  map[string]Set                // conn id -> groups, for disconnect cleanup
}

func NewRegistry() *Registry {
	return &Registry{
		sessions:     make(map[string]contract.EventSink),
		groupMembers: make(map[string]Set),
		memberships:  make(map[string]Set),
	}
}

// Connect registers a connection's delivery sink. Must be called before
// any Join for that connection.
func (r *Registry) Connect(connID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[connID] = sink
}

// Join adds the connection to a group. Idempotent: joining twice has no
// additional effect. A blank group name is silently rejected so a bad key
// can never become a broadcast-to-everyone bug.
func (r *Registry) Join(connID, group string) {
	if strings.TrimSpace(group) == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[connID]; !ok {
		return
	}
	if _, ok := r.groupMembers[group]; !ok {
		r.groupMembers[group] = make(Set)
	}
	r.groupMembers[group][connID] = struct{}{}

	if _, ok := r.memberships[connID]; !ok {
		r.memberships[connID] = make(Set)
	}
	r.memberships[connID][group] = struct{}{}
}

// Leave removes one membership. No-op when the connection is not a member.
func (r *Registry) Leave(connID, group string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeMembership(connID, group)
}

// OnDisconnect removes the connection from every group it belonged to and
// drops its sink. Called exactly once per connection lifecycle, even when
// the peer dropped without an explicit leave.
func (r *Registry) OnDisconnect(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for group := range r.memberships[connID] {
		r.removeMembership(connID, group)
	}
	delete(r.memberships, connID)
	delete(r.sessions, connID)
}

// SinksFor returns a point-in-time snapshot of the member sinks of a
// group. A connection disconnecting mid-broadcast may still receive or
// may miss that event: delivery is best effort, not transactional.
func (r *Registry) SinksFor(group string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.groupMembers[group]
	if !ok {
		return nil
	}
	var activeSinks []contract.EventSink
	for connID := range members {
		if sink, exists := r.sessions[connID]; exists {
			activeSinks = append(activeSinks, sink)
		}
	}
	return activeSinks
}

// MembersOf returns a snapshot of the member connection ids of a group.
func (r *Registry) MembersOf(group string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]string, 0, len(r.groupMembers[group]))
	for connID := range r.groupMembers[group] {
		members = append(members, connID)
	}
	return members
}

// Stats reports connection and group counts for the reporter worker and
// the stats endpoint.
func (r *Registry) Stats() (connections, groups int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions), len(r.groupMembers)
}

// removeMembership assumes r.mu is held for writing.
func (r *Registry) removeMembership(connID, group string) {
	if members, ok := r.groupMembers[group]; ok {
		delete(members, connID)

		// If no one is left in the group, remove the entry entirely
		if len(members) == 0 {
			delete(r.groupMembers, group)
		}
	}
	if groups, ok := r.memberships[connID]; ok {
		delete(groups, group)
	}
}
