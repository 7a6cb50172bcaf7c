package notify

import (
	"context"
	"sync"
)

// MemoryNotifier records events per user. Used in tests and when no
// REDIS_URL is configured.
type MemoryNotifier struct {
	mu     sync.Mutex
	events map[string][]string
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{events: make(map[string][]string)}
}

func (n *MemoryNotifier) record(userID, event string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events[userID] = append(n.events[userID], event)
}

func (n *MemoryNotifier) HabitsChanged(ctx context.Context, userID string) error {
	n.record(userID, "habits-changed")
	return nil
}

func (n *MemoryNotifier) NudgeReceived(ctx context.Context, userID string) error {
	n.record(userID, "nudge-received")
	return nil
}

// Events returns the events recorded for a user, in order.
func (n *MemoryNotifier) Events(userID string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events[userID]))
	copy(out, n.events[userID])
	return out
}
