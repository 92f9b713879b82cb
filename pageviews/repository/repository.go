// Copyright (c) 2025 solstack.dev
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
)

// ViewRepository defines the interface for view counter storage operations.
// Implementations are keyed by post slug; how the slug maps onto the
// underlying store (Redis key with a configured prefix, table row, map entry)
// is an implementation detail.
type ViewRepository interface {
	// IncrementView atomically increments the view count for a slug and
	// returns the new count. A slug that has never been seen starts at 1.
	IncrementView(ctx context.Context, slug string) (int64, error)

	// GetViewCount retrieves the view count for a slug. A slug with no
	// recorded views returns 0, not an error.
	GetViewCount(ctx context.Context, slug string) (int64, error)

	// GetViewCounts retrieves view counts for multiple slugs in one round
	// trip. Slugs with no recorded views map to 0.
	GetViewCounts(ctx context.Context, slugs []string) (map[string]int64, error)

	// Ping tests the store connection
	Ping(ctx context.Context) error

	// Close releases the store connection
	Close() error
}
