package repository

import (
	"context"
	"sync"
)

// MemoryViewRepository implements ViewRepository using in-memory storage.
// Counts do not survive a restart; it backs local development and tests, and
// the server falls back to it when the configured store is unreachable.
type MemoryViewRepository struct {
	mutex  sync.RWMutex
	counts map[string]int64
}

// NewMemoryViewRepository creates a new in-memory view repository
func NewMemoryViewRepository() *MemoryViewRepository {
	return &MemoryViewRepository{
		counts: make(map[string]int64),
	}
}

// IncrementView atomically increments the count for a slug and returns the
// new count.
func (r *MemoryViewRepository) IncrementView(ctx context.Context, slug string) (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.counts[slug]++
	return r.counts[slug], nil
}

// GetViewCount retrieves the count for a slug. Unseen slugs read as 0.
func (r *MemoryViewRepository) GetViewCount(ctx context.Context, slug string) (int64, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return r.counts[slug], nil
}

// GetViewCounts retrieves counts for multiple slugs
func (r *MemoryViewRepository) GetViewCounts(ctx context.Context, slugs []string) (map[string]int64, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	counts := make(map[string]int64, len(slugs))
	for _, slug := range slugs {
		counts[slug] = r.counts[slug]
	}
	return counts, nil
}

// Ping always succeeds for the in-memory store
func (r *MemoryViewRepository) Ping(ctx context.Context) error {
	return nil
}

// Close releases nothing for the in-memory store
func (r *MemoryViewRepository) Close() error {
	return nil
}
