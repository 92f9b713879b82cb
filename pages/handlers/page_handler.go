package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/solstack/site/internal/pkg/log"
	"github.com/solstack/site/internal/web"
	viewServices "github.com/solstack/site/pageviews/services"
	"github.com/solstack/site/posts/services"
)

// recentPostCount is how many posts the home page shows
const recentPostCount = 3

// PageHandler handles the site's top-level pages
type PageHandler struct {
	postService services.PostService
	viewService viewServices.ViewService
	renderer    *web.Renderer
}

// NewPageHandler creates a new PageHandler with injected dependencies
func NewPageHandler(postService services.PostService, viewService viewServices.ViewService, renderer *web.Renderer) *PageHandler {
	return &PageHandler{
		postService: postService,
		viewService: viewService,
		renderer:    renderer,
	}
}

// Home renders the landing page with the most recent published posts
func (h *PageHandler) Home(c *fiber.Ctx) error {
	posts, err := h.postService.ListPublished(c.Context())
	if err != nil {
		log.ErrorWithContext(c.Context(), "PostService.ListPublished failed: %v", err)
		return h.renderer.Render(c, "error.html", nil, fiber.StatusInternalServerError)
	}

	if len(posts) > recentPostCount {
		posts = posts[:recentPostCount]
	}

	slugs := make([]string, len(posts))
	for i, post := range posts {
		slugs[i] = post.Slug
	}
	counts := h.viewService.GetViewCounts(c.Context(), slugs)

	listings := make([]web.PostListing, len(posts))
	for i, post := range posts {
		listings[i] = web.PostListing{
			Post:  post,
			Views: counts[post.Slug],
		}
	}

	return h.renderer.Render(c, "home.html", fiber.Map{
		"Posts": listings,
	}, fiber.StatusOK)
}

// Healthz reports process liveness. It deliberately skips the view store;
// the site is expected to keep serving pages with the counter down.
func (h *PageHandler) Healthz(c *fiber.Ctx) error {
	return c.SendString("ok")
}
