package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	viewErrors "github.com/solstack/site/pageviews/errors"
	"github.com/solstack/site/pageviews/services"
	"github.com/solstack/site/pageviews/validation"
)

// batchLimit bounds how many slugs a single counts query may ask for
const batchLimit = 100

// ViewHandler handles all view counter HTTP requests
type ViewHandler struct {
	viewService services.ViewService
}

// NewViewHandler creates a new ViewHandler with injected dependencies
func NewViewHandler(viewService services.ViewService) *ViewHandler {
	return &ViewHandler{
		viewService: viewService,
	}
}

// RecordView handles the beacon fired by a post page after it loads.
// The response is 202 whether or not the store took the increment; the
// client has nothing useful to do with a counter failure.
func (h *ViewHandler) RecordView(c *fiber.Ctx) error {
	slug := c.Params("slug")

	err := h.viewService.RecordView(c.Context(), slug)
	if errors.Is(err, viewErrors.ErrInvalidSlug) {
		return viewErrors.HandleInvalidSlugError(c, "Invalid slug")
	}

	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"slug": slug,
	})
}

// GetViewCount handles retrieving the view count for a single slug
func (h *ViewHandler) GetViewCount(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if err := validation.ValidateSlug(slug); err != nil {
		return viewErrors.HandleInvalidSlugError(c, "Invalid slug")
	}

	count := h.viewService.GetViewCount(c.Context(), slug)

	return c.JSON(fiber.Map{
		"slug":  slug,
		"views": count,
	})
}

// GetViewCounts handles retrieving view counts for a comma-separated list
// of slugs, e.g. GET /api/views?slugs=a,b,c
func (h *ViewHandler) GetViewCounts(c *fiber.Ctx) error {
	raw := c.Query("slugs")
	if raw == "" {
		return viewErrors.HandleInvalidSlugError(c, "slugs query parameter is required")
	}

	slugs := strings.Split(raw, ",")
	if len(slugs) > batchLimit {
		return viewErrors.HandleInvalidSlugError(c, "too many slugs requested")
	}

	for _, slug := range slugs {
		if err := validation.ValidateSlug(slug); err != nil {
			return viewErrors.HandleInvalidSlugError(c, "Invalid slug")
		}
	}

	counts := h.viewService.GetViewCounts(c.Context(), slugs)

	return c.JSON(fiber.Map{
		"views": counts,
	})
}
