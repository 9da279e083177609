// Package session holds the per-process session state: the credential, the
// resolved account, user settings and the single cached transaction set.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/Veraticus/robux-must-flow/internal/model"
	"github.com/Veraticus/robux-must-flow/internal/roblox"
)

// DefaultTTL is how long a fetched set is considered fresh.
const DefaultTTL = 30 * time.Minute

// Entry is one fetched transaction set and how its fetch ended.
type Entry struct {
	FetchedAt    time.Time
	Stop         roblox.StopReason
	Transactions []model.Transaction
	Pages        int
}

// Partial reports whether the fetch behind the entry ended early.
func (e Entry) Partial() bool {
	return roblox.FetchResult{Stop: e.Stop}.Partial()
}

// Cache holds at most one Entry. Freshness is advisory: entries are never
// evicted, callers decide whether to refetch based on Valid.
type Cache struct {
	entry *Entry
	ttl   time.Duration
	mu    sync.RWMutex
}

// NewCache creates an empty cache. ttl <= 0 uses DefaultTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{ttl: ttl}
}

// TTL returns the freshness window.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Store replaces the cached set.
func (c *Cache) Store(e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = &e
}

// Entry returns the cached set, if any. The returned slice is shared and
// must be treated as read-only.
func (c *Cache) Entry() (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return Entry{}, false
	}
	return *c.entry, true
}

// Clear drops the cached set.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}

// Valid reports whether a set is cached and younger than the TTL at now.
func (c *Cache) Valid(now time.Time) bool {
	age, ok := c.Age(now)
	return ok && age < c.ttl
}

// Age is how long ago the cached set was fetched.
func (c *Cache) Age(now time.Time) (time.Duration, bool) {
	e, ok := c.Entry()
	if !ok {
		return 0, false
	}
	return now.Sub(e.FetchedAt), true
}

// ExpiresIn is the time left before the cached set goes stale, floored at 0.
func (c *Cache) ExpiresIn(now time.Time) time.Duration {
	age, ok := c.Age(now)
	if !ok || age >= c.ttl {
		return 0
	}
	return c.ttl - age
}

// AgeText describes the cache age for display, e.g. "5 minutes ago".
func (c *Cache) AgeText(now time.Time) string {
	age, ok := c.Age(now)
	if !ok {
		return "Never"
	}
	return AgeText(age)
}

// AgeText formats a duration as whole seconds, minutes or hours ago.
func AgeText(age time.Duration) string {
	if age < 0 {
		age = 0
	}
	switch {
	case age < time.Minute:
		return plural(int(age/time.Second), "second")
	case age < time.Hour:
		return plural(int(age/time.Minute), "minute")
	default:
		return plural(int(age/time.Hour), "hour")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
