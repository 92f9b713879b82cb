package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/solstack/site/internal/platform/config"
	viewErrors "github.com/solstack/site/pageviews/errors"
)

// RedisViewRepository implements ViewRepository using Redis. Counts live in
// plain string keys and all increments go through INCR, so concurrent page
// loads never lose updates.
type RedisViewRepository struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisViewRepository creates a Redis-backed view repository and verifies
// the connection before returning.
func NewRedisViewRepository(cfg *config.RedisConfig, keyPrefix string) (*RedisViewRepository, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", viewErrors.ErrStoreUnavailable, err)
	}

	client := redis.NewClient(opts)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", viewErrors.ErrStoreUnavailable, err)
	}

	return &RedisViewRepository{
		client: client,
		prefix: keyPrefix,
	}, nil
}

// redisOptions builds client options from configuration. A connection URL
// takes precedence over discrete fields; hosted stores hand out a single
// rediss:// URL with the token embedded as the password.
func redisOptions(cfg *config.RedisConfig) (*redis.Options, error) {
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		if cfg.PoolSize > 0 {
			opts.PoolSize = cfg.PoolSize
		}
		if cfg.MinIdleConns > 0 {
			opts.MinIdleConns = cfg.MinIdleConns
		}
		return opts, nil
	}

	return &redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.Database,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

// IncrementView atomically increments the count for a slug via INCR.
// A missing key is created at 1.
func (r *RedisViewRepository) IncrementView(ctx context.Context, slug string) (int64, error) {
	result, err := r.client.Incr(ctx, r.key(slug)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis increment error: %w", err)
	}
	return result, nil
}

// GetViewCount retrieves the count for a slug. A missing key reads as 0.
func (r *RedisViewRepository) GetViewCount(ctx context.Context, slug string) (int64, error) {
	count, err := r.client.Get(ctx, r.key(slug)).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get error: %w", err)
	}
	return count, nil
}

// GetViewCounts retrieves counts for multiple slugs with a single MGET.
func (r *RedisViewRepository) GetViewCounts(ctx context.Context, slugs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(slugs))
	if len(slugs) == 0 {
		return counts, nil
	}

	keys := make([]string, len(slugs))
	for i, slug := range slugs {
		keys[i] = r.key(slug)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget error: %w", err)
	}

	for i, slug := range slugs {
		counts[slug] = 0
		if i >= len(values) || values[i] == nil {
			continue
		}
		if raw, ok := values[i].(string); ok {
			if count, err := strconv.ParseInt(raw, 10, 64); err == nil {
				counts[slug] = count
			}
		}
	}

	return counts, nil
}

// Ping tests the Redis connection
func (r *RedisViewRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisViewRepository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

func (r *RedisViewRepository) key(slug string) string {
	return r.prefix + slug
}
