package pageviews

import (
	"github.com/gofiber/fiber/v2"

	"github.com/solstack/site/internal/middleware/ratelimit"
	platformconfig "github.com/solstack/site/internal/platform/config"
	"github.com/solstack/site/pageviews/handlers"
)

// ViewsHandlers holds all the handlers this router needs.
type ViewsHandlers struct {
	ViewHandler *handlers.ViewHandler
}

// RegisterRoutes is the single entry point for setting up view counter
// routes. The record endpoint is hit by the beacon script on every post page
// load, so everything here stays public.
func RegisterRoutes(app *fiber.App, handlers *ViewsHandlers, cfg *platformconfig.Config) {
	group := app.Group("/api/views")

	group.Get("/", handlers.ViewHandler.GetViewCounts)
	group.Get("/:slug", handlers.ViewHandler.GetViewCount)
	group.Post("/:slug", ratelimit.NewBeaconLimiter(), handlers.ViewHandler.RecordView)
}
