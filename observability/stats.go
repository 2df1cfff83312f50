package observability

import (
	"sync"
	"time"
)

type Channel string

const (
	ChatChannel          Channel = "chat"
	NotificationsChannel Channel = "notifications"
	MonitoringChannel    Channel = "monitoring"
)

// HubStats counts live connections per channel. Purely informational:
// the registry stays the source of truth for membership.
type HubStats struct {
	mu        sync.RWMutex
	startedAt time.Time
	connected map[Channel]int
	total     map[Channel]uint64
}

func NewHubStats() *HubStats {
	return &HubStats{
		startedAt: time.Now().UTC(),
		connected: make(map[Channel]int),
		total:     make(map[Channel]uint64),
	}
}

func (s *HubStats) ConnectionOpened(ch Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected[ch]++
	s.total[ch]++
}

func (s *HubStats) ConnectionClosed(ch Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.connected[ch] > 0 {
		s.connected[ch]--
	}
}

func (s *HubStats) Connected() map[Channel]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[Channel]int, len(s.connected))
	for ch, n := range s.connected {
		out[ch] = n
	}
	return out
}

func (s *HubStats) GetSnapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]any)
	snapshot["started_at"] = s.startedAt
	for ch, n := range s.connected {
		snapshot[string(ch)+"_connected"] = n
	}
	for ch, n := range s.total {
		snapshot[string(ch)+"_total"] = n
	}
	return snapshot
}
