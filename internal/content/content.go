// Package content builds the static post index from markdown sources
// embedded at build time. Each source file is YAML front matter followed by
// a markdown body; the file base name is the post slug.
package content

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/solstack/site/internal/markdown"
	"github.com/solstack/site/posts/models"
)

//go:embed posts/*.md
var contentFS embed.FS

const (
	frontMatterDelimiter = "---"
	dateLayout           = "2006-01-02"
	excerptLength        = 160
)

// frontMatter is the YAML header of a post source file
type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"`
	Author      string `yaml:"author"`
	Published   bool   `yaml:"published"`
	URL         string `yaml:"url"`
	Repository  string `yaml:"repository"`
}

// Index is the immutable, in-memory collection of all posts.
// It is built once at startup and never mutated afterwards.
type Index struct {
	bySlug    map[string]models.Post
	published []models.Post
}

// Load parses every embedded post source and builds the index.
// It fails on the first malformed source so a bad deploy dies at startup
// instead of serving broken pages.
func Load() (*Index, error) {
	return LoadFS(contentFS)
}

// LoadFS builds an index from an arbitrary fs.FS holding posts/*.md.
// Split out from Load so tests can feed their own fixtures.
func LoadFS(fsys fs.FS) (*Index, error) {
	entries, err := fs.Glob(fsys, "posts/*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to list post sources: %w", err)
	}

	index := &Index{
		bySlug: make(map[string]models.Post, len(entries)),
	}

	for _, entry := range entries {
		slug := strings.TrimSuffix(path.Base(entry), ".md")

		raw, err := fs.ReadFile(fsys, entry)
		if err != nil {
			return nil, fmt.Errorf("failed to read post source %s: %w", entry, err)
		}

		post, err := parsePost(slug, raw)
		if err != nil {
			return nil, fmt.Errorf("post %s: %w", slug, err)
		}

		if _, exists := index.bySlug[slug]; exists {
			return nil, fmt.Errorf("post %s: duplicate slug", slug)
		}
		index.bySlug[slug] = post

		if post.Published {
			index.published = append(index.published, post)
		}
	}

	// Newest first; slug breaks ties so the order is stable
	sort.Slice(index.published, func(i, j int) bool {
		if !index.published[i].Date.Equal(index.published[j].Date) {
			return index.published[i].Date.After(index.published[j].Date)
		}
		return index.published[i].Slug < index.published[j].Slug
	})

	return index, nil
}

// BySlug resolves a post by exact, case-sensitive slug match. The published
// flag is not consulted here; filtering unpublished posts out of listings is
// the caller's concern.
func (i *Index) BySlug(slug string) (models.Post, bool) {
	post, ok := i.bySlug[slug]
	return post, ok
}

// Published returns all published posts, newest first. The returned slice is
// a copy; callers may not mutate the index through it.
func (i *Index) Published() []models.Post {
	out := make([]models.Post, len(i.published))
	copy(out, i.published)
	return out
}

// Len returns the total number of posts, drafts included
func (i *Index) Len() int {
	return len(i.bySlug)
}

func parsePost(slug string, raw []byte) (models.Post, error) {
	fm, body, err := splitFrontMatter(raw)
	if err != nil {
		return models.Post{}, err
	}

	var meta frontMatter
	if err := yaml.Unmarshal(fm, &meta); err != nil {
		return models.Post{}, fmt.Errorf("invalid front matter: %w", err)
	}

	if strings.TrimSpace(meta.Title) == "" {
		return models.Post{}, fmt.Errorf("missing required field: title")
	}
	if strings.TrimSpace(meta.Date) == "" {
		return models.Post{}, fmt.Errorf("missing required field: date")
	}

	date, err := time.Parse(dateLayout, meta.Date)
	if err != nil {
		return models.Post{}, fmt.Errorf("invalid date %q: %w", meta.Date, err)
	}

	description := strings.TrimSpace(meta.Description)
	if description == "" {
		description = markdown.Excerpt(string(body), excerptLength)
	}

	return models.Post{
		Slug:        slug,
		Published:   meta.Published,
		Title:       meta.Title,
		Description: description,
		Date:        date,
		Author:      meta.Author,
		URL:         meta.URL,
		Repository:  meta.Repository,
		Body:        markdown.ToHTML(string(body)),
	}, nil
}

// splitFrontMatter separates the YAML header from the markdown body.
// The header must start at the first byte of the file.
func splitFrontMatter(raw []byte) ([]byte, []byte, error) {
	trimmed := bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")) // strip UTF-8 BOM

	if !bytes.HasPrefix(trimmed, []byte(frontMatterDelimiter+"\n")) && !bytes.HasPrefix(trimmed, []byte(frontMatterDelimiter+"\r\n")) {
		return nil, nil, fmt.Errorf("missing front matter header")
	}

	rest := trimmed[len(frontMatterDelimiter):]
	// Skip the newline after the opening delimiter
	rest = bytes.TrimPrefix(rest, []byte("\r\n"))
	rest = bytes.TrimPrefix(rest, []byte("\n"))

	end := bytes.Index(rest, []byte("\n"+frontMatterDelimiter))
	if end < 0 {
		return nil, nil, fmt.Errorf("unterminated front matter header")
	}

	fm := rest[:end]
	body := rest[end+len("\n"+frontMatterDelimiter):]
	// Drop the trailing newline of the closing delimiter line, if present
	body = bytes.TrimPrefix(body, []byte("\r\n"))
	body = bytes.TrimPrefix(body, []byte("\n"))

	return fm, body, nil
}
