package services

import (
	"context"
	"fmt"

	"github.com/solstack/site/internal/pkg/log"
	viewErrors "github.com/solstack/site/pageviews/errors"
	"github.com/solstack/site/pageviews/repository"
	"github.com/solstack/site/pageviews/validation"
)

// viewService implements the ViewService interface
type viewService struct {
	repo repository.ViewRepository
}

// NewViewService creates a new view service
func NewViewService(repo repository.ViewRepository) ViewService {
	return &viewService{repo: repo}
}

// RecordView increments the counter for a slug. Store failures are logged
// and wrapped; callers on the beacon path ignore the result, so a dead
// store costs a view, not a page.
func (s *viewService) RecordView(ctx context.Context, slug string) error {
	if err := validation.ValidateSlug(slug); err != nil {
		return fmt.Errorf("%w: %v", viewErrors.ErrInvalidSlug, err)
	}

	if _, err := s.repo.IncrementView(ctx, slug); err != nil {
		log.ErrorWithContext(ctx, "Repository.IncrementView failed for slug %s: %v", slug, err)
		return viewErrors.WrapStoreError(err)
	}

	return nil
}

// GetViewCount retrieves the count for a slug, serving 0 when the store
// errors or the slug has never been viewed.
func (s *viewService) GetViewCount(ctx context.Context, slug string) int64 {
	count, err := s.repo.GetViewCount(ctx, slug)
	if err != nil {
		log.WarnWithContext(ctx, "Repository.GetViewCount failed for slug %s, serving 0: %v", slug, err)
		return 0
	}
	return count
}

// GetViewCounts retrieves counts for multiple slugs, serving zeros for all
// of them when the store errors.
func (s *viewService) GetViewCounts(ctx context.Context, slugs []string) map[string]int64 {
	counts, err := s.repo.GetViewCounts(ctx, slugs)
	if err != nil {
		log.WarnWithContext(ctx, "Repository.GetViewCounts failed for %d slugs, serving zeros: %v", len(slugs), err)
		counts = make(map[string]int64, len(slugs))
		for _, slug := range slugs {
			counts[slug] = 0
		}
	}
	return counts
}
