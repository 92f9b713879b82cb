// Copyright (c) 2025 solstack.dev
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"

	"github.com/solstack/site/posts/models"
)

// PostRepository defines the interface for post lookup operations.
// Posts are authored as markdown files and compiled into the binary, so
// implementations answer from an in-memory index rather than a database.
type PostRepository interface {
	// FindBySlug retrieves a post by its exact slug. Matching is
	// case-sensitive and does not consider the published flag, so drafts
	// remain reachable by direct link.
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)

	// FindPublished retrieves all published posts, newest first
	FindPublished(ctx context.Context) ([]models.Post, error)
}
