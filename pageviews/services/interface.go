package services

import (
	"context"
)

// ViewService defines the interface for view counter operations
type ViewService interface {
	// RecordView atomically increments the view count for a slug. The
	// increment is unconditional; there is no per-viewer deduplication.
	RecordView(ctx context.Context, slug string) error

	// GetViewCount retrieves the view count for a slug. Reads degrade to 0
	// when the store is unreachable, so a broken counter never takes a page
	// down with it.
	GetViewCount(ctx context.Context, slug string) int64

	// GetViewCounts retrieves view counts for multiple slugs. Reads degrade
	// to all zeros when the store is unreachable.
	GetViewCounts(ctx context.Context, slugs []string) map[string]int64
}
