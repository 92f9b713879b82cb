// Package server assembles the fiber application: middleware, routes, and
// error pages. Both main and the end-to-end tests build the app through New,
// so what the tests exercise is what production runs.
package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/solstack/site/internal/content"
	"github.com/solstack/site/internal/middleware/requestid"
	"github.com/solstack/site/internal/pkg/log"
	platformconfig "github.com/solstack/site/internal/platform/config"
	"github.com/solstack/site/internal/web"
	"github.com/solstack/site/pages"
	pageHandlers "github.com/solstack/site/pages/handlers"
	"github.com/solstack/site/pageviews"
	viewHandlers "github.com/solstack/site/pageviews/handlers"
	viewRepository "github.com/solstack/site/pageviews/repository"
	viewServices "github.com/solstack/site/pageviews/services"
	"github.com/solstack/site/posts"
	postHandlers "github.com/solstack/site/posts/handlers"
	postsRepository "github.com/solstack/site/posts/repository"
	postsServices "github.com/solstack/site/posts/services"
)

// New builds the application around an already loaded post index and a ready
// view store. Callers own the store's lifecycle; New never dials anything.
func New(cfg *platformconfig.Config, index *content.Index, viewRepo viewRepository.ViewRepository) (*fiber.App, error) {
	renderer, err := web.NewRenderer(cfg)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.Site.Name,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: newErrorHandler(renderer),
	})

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(recover.New())

	if cfg.Server.EnableCORS {
		// Only needed when the view API is read from another origin; the
		// beacon on our own pages is same-origin.
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.Server.AllowedOrigins,
			AllowHeaders: "Origin, Content-Type, Accept",
			AllowMethods: "GET, POST, OPTIONS",
		}))
	}

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       web.Static(),
		PathPrefix: "static",
		MaxAge:     3600,
	}))

	postService := postsServices.NewPostService(postsRepository.NewContentRepository(index))
	viewService := viewServices.NewViewService(viewRepo)

	pages.RegisterRoutes(app, &pages.PagesHandlers{
		PageHandler: pageHandlers.NewPageHandler(postService, viewService, renderer),
	}, cfg)

	posts.RegisterRoutes(app, &posts.PostsHandlers{
		PostHandler: postHandlers.NewPostHandler(postService, viewService, renderer),
	}, cfg)

	pageviews.RegisterRoutes(app, &pageviews.ViewsHandlers{
		ViewHandler: viewHandlers.NewViewHandler(viewService),
	}, cfg)

	return app, nil
}

// newErrorHandler routes errors that escape the handlers. API paths answer in
// JSON; everything else gets a rendered page. Unmatched routes arrive here as
// fiber's 404 error, which is how stray URLs end up on the not-found page.
func newErrorHandler(renderer *web.Renderer) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		// If response already set by handler, don't override it
		if len(c.Response().Body()) > 0 {
			return nil
		}

		if strings.HasPrefix(c.Path(), "/api/") {
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if code == fiber.StatusNotFound {
			return renderer.Render(c, "notfound.html", nil, code)
		}

		log.ErrorWithContext(requestid.LogContext(c), "[ErrorHandler] Path: %s, Error: %v, Code: %d", c.Path(), err, code)
		return renderer.Render(c, "error.html", nil, code)
	}
}
