// Package testutil assembles the full application for end-to-end tests.
// Tests get the same app main runs, just with the in-memory view store so
// nothing external is dialed.
package testutil

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/solstack/site/internal/content"
	platformconfig "github.com/solstack/site/internal/platform/config"
	"github.com/solstack/site/internal/server"
	viewRepository "github.com/solstack/site/pageviews/repository"
)

// TestConfig returns a configuration suitable for tests: memory view backend,
// no external stores, fixed site identity.
func TestConfig(t *testing.T) *platformconfig.Config {
	t.Helper()

	cfg, err := platformconfig.LoadFromMap(map[string]string{
		"VIEWS_BACKEND": platformconfig.ViewsBackendMemory,
		"SITE_NAME":     "solstack.dev",
		"SITE_AUTHOR":   "solstack",
	})
	require.NoError(t, err, "test configuration must validate")

	return cfg
}

// NewSiteApp builds the complete application over the embedded post content
// and a fresh in-memory view store. Each call returns an isolated app, so
// counts recorded in one test never leak into another.
func NewSiteApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := TestConfig(t)

	index, err := content.Load()
	require.NoError(t, err, "embedded post content must load")

	app, err := server.New(cfg, index, viewRepository.NewMemoryViewRepository())
	require.NoError(t, err, "app assembly must succeed")

	return app
}
