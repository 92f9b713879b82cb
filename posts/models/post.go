package models

import (
	"html/template"
	"time"
)

// Post is one entry of the static content index. Posts are produced at
// startup from the embedded markdown sources and are immutable afterwards.
type Post struct {
	Slug        string        `json:"slug"`
	Published   bool          `json:"published"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Date        time.Time     `json:"date"`
	Author      string        `json:"author"`
	URL         string        `json:"url,omitempty"`
	Repository  string        `json:"repository,omitempty"`
	Body        template.HTML `json:"-"`
}

// FormattedDate returns the publication date for display
func (p *Post) FormattedDate() string {
	return p.Date.Format("Jan 2, 2006")
}

// HasExternalLink reports whether the post links to an external page
func (p *Post) HasExternalLink() bool {
	return p.URL != ""
}

// HasRepository reports whether the post links to a source repository
func (p *Post) HasRepository() bool {
	return p.Repository != ""
}
