package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/solstack/site/internal/platform/config"
)

// ErrUnknownBackend is returned when the configured views backend is not one
// of the supported values.
var ErrUnknownBackend = errors.New("unknown views backend")

// NewViewRepository creates a view repository for the configured backend.
func NewViewRepository(ctx context.Context, cfg *config.Config) (ViewRepository, error) {
	switch cfg.Views.Backend {
	case config.ViewsBackendRedis:
		return NewRedisViewRepository(&cfg.Views.Redis, cfg.Views.KeyPrefix)
	case config.ViewsBackendPostgres:
		return NewPostgresViewRepository(ctx, &cfg.Views.Postgres)
	case config.ViewsBackendMemory:
		return NewMemoryViewRepository(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Views.Backend)
	}
}
