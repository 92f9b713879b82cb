// Package web renders the site's HTML pages from templates compiled into
// the binary and serves the static assets that go with them.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/solstack/site/internal/platform/config"
	"github.com/solstack/site/posts/models"
)

// PostListing pairs a post with its view count for the listing templates
type PostListing struct {
	Post  models.Post
	Views int64
}

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// pages are the renderable templates; each is parsed together with the
// shared layout so they can define the content block it expects.
var pages = []string{
	"home.html",
	"posts.html",
	"post.html",
	"notfound.html",
	"error.html",
}

// Renderer executes page templates with shared site context. Templates are
// parsed once at startup; a malformed template is a build defect, not a
// runtime condition.
type Renderer struct {
	templates map[string]*template.Template
	site      config.SiteConfig
}

// NewRenderer parses all page templates and returns a ready renderer
func NewRenderer(cfg *config.Config) (*Renderer, error) {
	funcs := template.FuncMap{
		"viewsLabel": viewsLabel,
		"domain":     domain,
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templatesFS,
			"templates/layout.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		templates[page] = tmpl
	}

	return &Renderer{
		templates: templates,
		site:      cfg.Site,
	}, nil
}

// Render executes the named page template and writes it as the response.
// Successful pages are cacheable; error pages are not.
func (r *Renderer) Render(c *fiber.Ctx, name string, data fiber.Map, status int) error {
	tmpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template: %s", name)
	}

	if data == nil {
		data = fiber.Map{}
	}
	data["Site"] = r.site
	data["Year"] = time.Now().Year()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("failed to render template %s: %w", name, err)
	}

	c.Type("html", "utf-8")
	if status < fiber.StatusBadRequest {
		c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	} else {
		c.Set(fiber.HeaderCacheControl, "no-store")
	}

	return c.Status(status).Send(buf.Bytes())
}

// Static returns the embedded static asset tree for the filesystem
// middleware.
func Static() http.FileSystem {
	return http.FS(staticFS)
}

func viewsLabel(count int64) string {
	if count == 1 {
		return "1 view"
	}
	return fmt.Sprintf("%d views", count)
}

// domain reduces a link to its registrable domain for display next to
// external references. An unparseable or bare-host link yields "" and the
// template drops the suffix.
func domain(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	parts := strings.Split(u.Hostname(), ".")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2] + "." + parts[len(parts)-1]
}
