package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/solstack/site/internal/pkg/log"
	"github.com/solstack/site/internal/web"
	viewServices "github.com/solstack/site/pageviews/services"
	postsErrors "github.com/solstack/site/posts/errors"
	"github.com/solstack/site/posts/services"
)

// PostHandler handles all post page HTTP requests
type PostHandler struct {
	postService services.PostService
	viewService viewServices.ViewService
	renderer    *web.Renderer
}

// NewPostHandler creates a new PostHandler with injected dependencies
func NewPostHandler(postService services.PostService, viewService viewServices.ViewService, renderer *web.Renderer) *PostHandler {
	return &PostHandler{
		postService: postService,
		viewService: viewService,
		renderer:    renderer,
	}
}

// GetPost renders a single post page. The displayed count is whatever the
// store holds right now; this visit is recorded later by the beacon the page
// carries, so rendering never writes to the store.
func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	slug := c.Params("slug")

	post, err := h.postService.GetPostBySlug(c.Context(), slug)
	if err != nil {
		if postsErrors.IsNotFound(err) {
			return h.renderer.Render(c, "notfound.html", nil, fiber.StatusNotFound)
		}
		log.ErrorWithContext(c.Context(), "PostService.GetPostBySlug failed for slug %s: %v", slug, err)
		return h.renderer.Render(c, "error.html", nil, fiber.StatusInternalServerError)
	}

	views := h.viewService.GetViewCount(c.Context(), post.Slug)

	return h.renderer.Render(c, "post.html", fiber.Map{
		"Post":  post,
		"Views": views,
	}, fiber.StatusOK)
}

// ListPosts renders the index of published posts with their view counts
func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.postService.ListPublished(c.Context())
	if err != nil {
		log.ErrorWithContext(c.Context(), "PostService.ListPublished failed: %v", err)
		return h.renderer.Render(c, "error.html", nil, fiber.StatusInternalServerError)
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

	return h.renderer.Render(c, "posts.html", fiber.Map{
		"Posts": listings,
	}, fiber.StatusOK)
}
