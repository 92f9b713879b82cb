package services

import (
	"context"

	"github.com/solstack/site/posts/models"
)

// PostService defines the interface for post operations
type PostService interface {
	// GetPostBySlug retrieves a post by its exact slug, published or not.
	// A miss is reported as posts/errors.ErrPostNotFound.
	GetPostBySlug(ctx context.Context, slug string) (*models.Post, error)

	// ListPublished retrieves all published posts, newest first
	ListPublished(ctx context.Context) ([]models.Post, error)
}
