package services

import (
	"context"
	"fmt"
	"strings"

	postsErrors "github.com/solstack/site/posts/errors"
	"github.com/solstack/site/posts/models"
	"github.com/solstack/site/posts/repository"
)

// postService implements the PostService interface
type postService struct {
	repo repository.PostRepository
}

// NewPostService creates a new post service
func NewPostService(repo repository.PostRepository) PostService {
	return &postService{repo: repo}
}

// GetPostBySlug retrieves a post by its exact slug. The published flag is
// intentionally not consulted here; whether drafts are listed is a concern
// of the listing paths, not of direct resolution.
func (s *postService) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, postsErrors.ErrInvalidSlug
	}

	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	return post, nil
}

// ListPublished retrieves all published posts, newest first
func (s *postService) ListPublished(ctx context.Context) ([]models.Post, error) {
	posts, err := s.repo.FindPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list published posts: %w", err)
	}
	return posts, nil
}
