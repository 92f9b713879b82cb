// Copyright (c) 2025 solstack.dev
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/solstack/site/internal/database/postgres"
	"github.com/solstack/site/internal/platform/config"
	viewErrors "github.com/solstack/site/pageviews/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresViewRepository implements ViewRepository backed by a page_views
// table. Increments are single upsert statements, so concurrent page loads
// contend on the row lock instead of losing updates.
type PostgresViewRepository struct {
	client *postgres.Client
}

// NewPostgresViewRepository creates a PostgreSQL-backed view repository and
// runs pending schema migrations before returning.
func NewPostgresViewRepository(ctx context.Context, cfg *config.PostgresConfig) (*PostgresViewRepository, error) {
	client, err := postgres.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", viewErrors.ErrStoreUnavailable, err)
	}

	if err := migrate(client.DB().DB); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to migrate view store: %w", err)
	}

	return &PostgresViewRepository{client: client}, nil
}

// migrate runs all pending schema migrations using goose
func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// IncrementView atomically increments the count for a slug and returns the
// new count. The first view of a slug inserts the row at 1.
func (r *PostgresViewRepository) IncrementView(ctx context.Context, slug string) (int64, error) {
	query := `
		INSERT INTO page_views (slug, view_count)
		VALUES ($1, 1)
		ON CONFLICT (slug) DO UPDATE
		SET view_count = page_views.view_count + 1,
		    updated_at = NOW()
		RETURNING view_count
	`

	var count int64
	if err := r.client.DB().GetContext(ctx, &count, query, slug); err != nil {
		return 0, fmt.Errorf("failed to increment view count: %w", err)
	}

	return count, nil
}

// GetViewCount retrieves the count for a slug. A slug with no row reads as 0.
func (r *PostgresViewRepository) GetViewCount(ctx context.Context, slug string) (int64, error) {
	query := `SELECT view_count FROM page_views WHERE slug = $1`

	var count int64
	if err := r.client.DB().GetContext(ctx, &count, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get view count: %w", err)
	}

	return count, nil
}

// GetViewCounts retrieves counts for multiple slugs in a single query.
func (r *PostgresViewRepository) GetViewCounts(ctx context.Context, slugs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(slugs))
	if len(slugs) == 0 {
		return counts, nil
	}

	query := `SELECT slug, view_count FROM page_views WHERE slug = ANY($1)`

	var rows []struct {
		Slug      string `db:"slug"`
		ViewCount int64  `db:"view_count"`
	}
	if err := r.client.DB().SelectContext(ctx, &rows, query, pq.Array(slugs)); err != nil {
		return nil, fmt.Errorf("failed to get view counts: %w", err)
	}

	for _, slug := range slugs {
		counts[slug] = 0
	}
	for _, row := range rows {
		counts[row.Slug] = row.ViewCount
	}

	return counts, nil
}

// Ping tests the database connection
func (r *PostgresViewRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

// Close closes the database connection
func (r *PostgresViewRepository) Close() error {
	return r.client.Close()
}
