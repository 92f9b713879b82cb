// Copyright (c) 2025 solstack.dev
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"fmt"

	"github.com/solstack/site/internal/content"
	postsErrors "github.com/solstack/site/posts/errors"
	"github.com/solstack/site/posts/models"
)

// contentRepository implements PostRepository over the embedded content index
type contentRepository struct {
	index *content.Index
}

// NewContentRepository creates a repository backed by the content index
func NewContentRepository(index *content.Index) PostRepository {
	return &contentRepository{index: index}
}

// FindBySlug retrieves a post by its exact slug
func (r *contentRepository) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	post, ok := r.index.BySlug(slug)
	if !ok {
		return nil, fmt.Errorf("%w: %s", postsErrors.ErrPostNotFound, slug)
	}
	return &post, nil
}

// FindPublished retrieves all published posts, newest first
func (r *contentRepository) FindPublished(ctx context.Context) ([]models.Post, error) {
	return r.index.Published(), nil
}
