package cache

import (
	"context"
	"sync"
	"time"

	"github.com/lshigami/certpool/internal/monitoring"
)

const DefaultMaxEntries = 1000

type memoryEntry struct {
	ids       []uint
	expiresAt time.Time
}

type memoryQuestionIDCache struct {
	mu         sync.Mutex
	entries    map[uint]memoryEntry
	maxEntries int
	now        func() time.Time
}

func NewMemoryQuestionIDCache(maxEntries int) QuestionIDCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &memoryQuestionIDCache{
		entries:    make(map[uint]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *memoryQuestionIDCache) Backend() string { return "memory" }

func (c *memoryQuestionIDCache) Get(_ context.Context, examID uint) ([]uint, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[examID]
	if !ok || !c.now().Before(e.expiresAt) {
		if ok {
			delete(c.entries, examID)
		}
		monitoring.CacheRequests.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	monitoring.CacheRequests.WithLabelValues("hit").Inc()
	return append([]uint(nil), e.ids...), true, nil
}

func (c *memoryQuestionIDCache) Set(_ context.Context, examID uint, ids []uint, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[examID]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked()
	}
	c.entries[examID] = memoryEntry{
		ids:       append([]uint(nil), ids...),
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

func (c *memoryQuestionIDCache) Invalidate(_ context.Context, examID uint) error {
	c.mu.Lock()
	delete(c.entries, examID)
	c.mu.Unlock()
	return nil
}

// evictLocked drops expired entries, or failing that the one closest to expiry.
func (c *memoryQuestionIDCache) evictLocked() {
	now := c.now()
	var (
		victim   uint
		earliest time.Time
		found    bool
	)
	for id, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, id)
			continue
		}
		if !found || e.expiresAt.Before(earliest) {
			victim, earliest, found = id, e.expiresAt, true
		}
	}
	if len(c.entries) >= c.maxEntries && found {
		delete(c.entries, victim)
	}
}
