// Package cache keeps downloaded documents around for the link-expiry
// window so a re-run after a partial failure does not hit the portal
// again for bytes it already has.
package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/double232/autorouter/internal/core"
)

type memoryEntry struct {
	doc       *core.DocumentBytes
	expiresAt time.Time
}

// MemoryCache is an in-memory implementation of the core.DocumentCache
// interface. Contents survive re-runs within one process only.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	logger  *zap.Logger
}

// NewMemoryCache creates a new in-memory document cache
func NewMemoryCache(ttl time.Duration, logger *zap.Logger) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		logger:  logger,
	}
}

// Get retrieves a cached document by source URL
func (c *MemoryCache) Get(_ context.Context, url string) (*core.DocumentBytes, bool) {
	c.mu.RLock()
	entry, ok := c.entries[url]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.doc, true
}

// Put stores a downloaded document
func (c *MemoryCache) Put(_ context.Context, doc *core.DocumentBytes) error {
	c.mu.Lock()
	c.entries[doc.SourceURL] = memoryEntry{doc: doc, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}
