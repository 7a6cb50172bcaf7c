package memcache

import (
	"sync"
	"time"
)

// InviteCodeCache maps invite codes to group ids. Entries are
// re-derivable from the partitions at any time, so the cache is safe
// to discard and a short TTL keeps stale mappings from lingering
// after a group is recreated.
type InviteCodeCache interface {
	Remember(code string, groupID string, ttl time.Duration)
	Lookup(code string) (string, bool)
}

type entry struct {
	groupID   string
	expiresAt time.Time
}

type InviteCodes struct {
	mu   sync.RWMutex
	data map[string]entry
}

func NewInviteCodes() *InviteCodes {
	return &InviteCodes{
		data: make(map[string]entry),
	}
}

func (c *InviteCodes) Remember(code string, groupID string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[code] = entry{
		groupID:   groupID,
		expiresAt: time.Now().Add(ttl),
	}
}

func (c *InviteCodes) Lookup(code string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.data[code]
	if !ok || time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.groupID, true
}
