package gameserver

import (
	"sync"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
)

const (
	idempotencyTTL      = 24 * time.Hour
	idempotencyMaxItems = 1000
)

// idempotencyEntry stores a cached response with timestamp
type idempotencyEntry struct {
	response  *structpb.Struct
	createdAt time.Time
}

// IdempotencyManager caches Fire responses by request id so a retried shot
// is answered instead of resolved twice
type IdempotencyManager struct {
	cache map[string]*idempotencyEntry
	mu    sync.RWMutex
	now   func() time.Time
}

// NewIdempotencyManager creates a new idempotency manager
func NewIdempotencyManager(now func() time.Time) *IdempotencyManager {
	if now == nil {
		now = time.Now
	}
	return &IdempotencyManager{
		cache: make(map[string]*idempotencyEntry),
		now:   now,
	}
}

// Check returns the cached response for key, or nil
func (im *IdempotencyManager) Check(key string) *structpb.Struct {
	if key == "" {
		return nil
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	entry, exists := im.cache[key]
	if !exists {
		return nil
	}

	if im.now().Sub(entry.createdAt) > idempotencyTTL {
		return nil
	}

	return entry.response
}

// Store caches a response under key
func (im *IdempotencyManager) Store(key string, resp *structpb.Struct) {
	if key == "" {
		return
	}

	im.mu.Lock()
	defer im.mu.Unlock()

	im.cache[key] = &idempotencyEntry{
		response:  resp,
		createdAt: im.now(),
	}

	if len(im.cache) > idempotencyMaxItems {
		im.cleanupOldEntriesLocked()
	}
}

// Len returns the number of cached responses
func (im *IdempotencyManager) Len() int {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return len(im.cache)
}

// cleanupOldEntriesLocked removes expired entries. Must be called with mu held.
func (im *IdempotencyManager) cleanupOldEntriesLocked() {
	cutoff := im.now().Add(-idempotencyTTL)
	for key, entry := range im.cache {
		if entry.createdAt.Before(cutoff) {
			delete(im.cache, key)
		}
	}
}
