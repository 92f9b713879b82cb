package pages

import (
	"github.com/gofiber/fiber/v2"

	platformconfig "github.com/solstack/site/internal/platform/config"
	"github.com/solstack/site/pages/handlers"
)

// PagesHandlers holds all the handlers this router needs.
type PagesHandlers struct {
	PageHandler *handlers.PageHandler
}

// RegisterRoutes is the single entry point for setting up top-level routes
func RegisterRoutes(app *fiber.App, handlers *PagesHandlers, cfg *platformconfig.Config) {
	app.Get("/", handlers.PageHandler.Home)
	app.Get("/healthz", handlers.PageHandler.Healthz)
}
