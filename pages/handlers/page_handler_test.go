package handlers_test

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/solstack/site/internal/platform/config"
	"github.com/solstack/site/internal/web"
	"github.com/solstack/site/pages/handlers"
	"github.com/solstack/site/posts/models"
)

// MockPostService implements the PostService interface for testing
type MockPostService struct {
	listPublishedFunc func(ctx context.Context) ([]models.Post, error)
}

func (m *MockPostService) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return nil, nil
}

func (m *MockPostService) ListPublished(ctx context.Context) ([]models.Post, error) {
	if m.listPublishedFunc != nil {
		return m.listPublishedFunc(ctx)
	}
	return nil, nil
}

// MockViewService implements the ViewService interface for testing
type MockViewService struct {
	getViewCountsFunc func(ctx context.Context, slugs []string) map[string]int64
}

func (m *MockViewService) RecordView(ctx context.Context, slug string) error { return nil }

func (m *MockViewService) GetViewCount(ctx context.Context, slug string) int64 { return 0 }

func (m *MockViewService) GetViewCounts(ctx context.Context, slugs []string) map[string]int64 {
	if m.getViewCountsFunc != nil {
		return m.getViewCountsFunc(ctx, slugs)
	}
	return map[string]int64{}
}

func newPagesTestApp(t *testing.T, postService *MockPostService, viewService *MockViewService) *fiber.App {
	t.Helper()

	cfg, err := config.LoadFromMap(map[string]string{
		"VIEWS_BACKEND": config.ViewsBackendMemory,
	})
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	renderer, err := web.NewRenderer(cfg)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}

	handler := handlers.NewPageHandler(postService, viewService, renderer)
	app := fiber.New()
	app.Get("/", handler.Home)
	app.Get("/healthz", handler.Healthz)
	return app
}

func TestPageHandler_Home_ShowsRecentPostsOnly(t *testing.T) {
	published := []models.Post{
		{Slug: "p1", Title: "Post One", Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Published: true},
		{Slug: "p2", Title: "Post Two", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Published: true},
		{Slug: "p3", Title: "Post Three", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Published: true},
		{Slug: "p4", Title: "Post Four", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Published: true},
	}

	mockPosts := &MockPostService{
		listPublishedFunc: func(ctx context.Context) ([]models.Post, error) {
			return published, nil
		},
	}
	mockViews := &MockViewService{
		getViewCountsFunc: func(ctx context.Context, slugs []string) map[string]int64 {
			if len(slugs) != 3 {
				t.Errorf("Expected counts for the 3 recent posts, got %d slugs", len(slugs))
			}
			return map[string]int64{"p1": 5, "p2": 2, "p3": 1}
		},
	}

	app := newPagesTestApp(t, mockPosts, mockViews)
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	page := string(body)

	for _, title := range []string{"Post One", "Post Two", "Post Three"} {
		if !strings.Contains(page, title) {
			t.Errorf("Expected home page to contain %q", title)
		}
	}
	if strings.Contains(page, "Post Four") {
		t.Error("Expected home page to cut off after the recent posts")
	}
	if !strings.Contains(page, "5 views") {
		t.Error("Expected home page to show view counts")
	}
}

func TestPageHandler_Healthz(t *testing.T) {
	app := newPagesTestApp(t, &MockPostService{}, &MockViewService{})
	resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Errorf("Expected body 'ok', got '%s'", string(body))
	}
}
