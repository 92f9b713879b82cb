package posts

import (
	"github.com/gofiber/fiber/v2"

	platformconfig "github.com/solstack/site/internal/platform/config"
	"github.com/solstack/site/posts/handlers"
)

// PostsHandlers holds all the handlers this router needs.
type PostsHandlers struct {
	PostHandler *handlers.PostHandler
}

// RegisterRoutes is the single entry point for setting up post page routes.
// The slug route resolves drafts too; whether a post is listed and whether
// it is reachable are different questions.
func RegisterRoutes(app *fiber.App, handlers *PostsHandlers, cfg *platformconfig.Config) {
	group := app.Group("/posts")

	group.Get("/", handlers.PostHandler.ListPosts)
	group.Get("/:slug", handlers.PostHandler.GetPost)
}
