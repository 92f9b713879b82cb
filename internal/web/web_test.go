package web_test

import (
	"html/template"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solstack/site/internal/platform/config"
	"github.com/solstack/site/internal/web"
	"github.com/solstack/site/posts/models"
)

func newTestRenderer(t *testing.T) *web.Renderer {
	t.Helper()

	cfg, err := config.LoadFromMap(map[string]string{
		"VIEWS_BACKEND": config.ViewsBackendMemory,
		"SITE_NAME":     "solstack.dev",
	})
	require.NoError(t, err)

	renderer, err := web.NewRenderer(cfg)
	require.NoError(t, err)
	return renderer
}

func renderToString(t *testing.T, renderer *web.Renderer, name string, data fiber.Map, status int) (string, int, string) {
	t.Helper()

	app := fiber.New()
	app.Get("/render", func(c *fiber.Ctx) error {
		return renderer.Render(c, name, data, status)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/render", nil))
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(body), resp.StatusCode, resp.Header.Get(fiber.HeaderCacheControl)
}

func TestRenderer_PostPage(t *testing.T) {
	renderer := newTestRenderer(t)

	post := models.Post{
		Slug:      "contract-creation",
		Published: true,
		Title:     "CREATE, CREATE2, CREATE3",
		Date:      time.Date(2023, 1, 29, 0, 0, 0, 0, time.UTC),
		Author:    "solstack",
		Body:      template.HTML("<p>Deploying contracts.</p>"),
	}

	body, status, cacheControl := renderToString(t, renderer, "post.html", fiber.Map{
		"Post":  post,
		"Views": int64(42),
	}, fiber.StatusOK)

	assert.Equal(t, 200, status)
	assert.Equal(t, "public, max-age=3600", cacheControl)

	assert.Contains(t, body, "CREATE, CREATE2, CREATE3")
	assert.Contains(t, body, "<p>Deploying contracts.</p>")
	assert.Contains(t, body, "42 views")
	assert.Contains(t, body, "Jan 29, 2023")

	// The beacon fires after load; the server render must not count views
	assert.Contains(t, body, "/api/views/")
	assert.Contains(t, body, `method: "POST"`)
}

func TestRenderer_PostPage_SingularViewLabel(t *testing.T) {
	renderer := newTestRenderer(t)

	post := models.Post{
		Slug:      "single",
		Published: true,
		Title:     "Single",
		Date:      time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
		Author:    "solstack",
	}

	body, _, _ := renderToString(t, renderer, "post.html", fiber.Map{
		"Post":  post,
		"Views": int64(1),
	}, fiber.StatusOK)

	assert.Contains(t, body, "1 view")
	assert.NotContains(t, body, "1 views")
}

func TestRenderer_PostPage_ExternalLinksShowDomain(t *testing.T) {
	renderer := newTestRenderer(t)

	post := models.Post{
		Slug:       "linked",
		Published:  true,
		Title:      "Linked",
		Date:       time.Date(2023, 6, 8, 0, 0, 0, 0, time.UTC),
		Author:     "solstack",
		URL:        "https://docs.soliditylang.org/en/latest/",
		Repository: "https://github.com/solstack/create3-factory",
	}

	body, _, _ := renderToString(t, renderer, "post.html", fiber.Map{
		"Post":  post,
		"Views": int64(0),
	}, fiber.StatusOK)

	assert.Contains(t, body, "Further reading at soliditylang.org")
	assert.Contains(t, body, "Code for this post on github.com")
}

func TestRenderer_DraftShowsDraftNote(t *testing.T) {
	renderer := newTestRenderer(t)

	post := models.Post{
		Slug:      "wip",
		Published: false,
		Title:     "Work in Progress",
		Date:      time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC),
		Author:    "solstack",
	}

	body, status, _ := renderToString(t, renderer, "post.html", fiber.Map{
		"Post":  post,
		"Views": int64(0),
	}, fiber.StatusOK)

	assert.Equal(t, 200, status)
	assert.Contains(t, body, "Draft")
}

func TestRenderer_NotFoundPage(t *testing.T) {
	renderer := newTestRenderer(t)

	body, status, cacheControl := renderToString(t, renderer, "notfound.html", nil, fiber.StatusNotFound)

	assert.Equal(t, 404, status)
	assert.Equal(t, "no-store", cacheControl)
	assert.Contains(t, body, "This page could not be found")
}

func TestRenderer_ListingShowsCounts(t *testing.T) {
	renderer := newTestRenderer(t)

	listings := []web.PostListing{
		{
			Post: models.Post{
				Slug:      "a",
				Title:     "Post A",
				Date:      time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
				Published: true,
			},
			Views: 7,
		},
		{
			Post: models.Post{
				Slug:      "b",
				Title:     "Post B",
				Date:      time.Date(2022, 8, 15, 0, 0, 0, 0, time.UTC),
				Published: true,
			},
			Views: 0,
		},
	}

	body, status, _ := renderToString(t, renderer, "posts.html", fiber.Map{
		"Posts": listings,
	}, fiber.StatusOK)

	assert.Equal(t, 200, status)
	assert.Contains(t, body, "Post A")
	assert.Contains(t, body, "7 views")
	assert.Contains(t, body, "Post B")
	assert.Contains(t, body, "0 views")
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	renderer := newTestRenderer(t)

	app := fiber.New()
	app.Get("/render", func(c *fiber.Ctx) error {
		return renderer.Render(c, "nope.html", nil, fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/render", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}
