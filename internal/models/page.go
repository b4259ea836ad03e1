package models

import "time"

// DocPage is a single documentation article. The Content field holds raw
// Markdown; rendering happens at the presentation layer. Pages are the only
// entity kind written through to durable storage on every mutation.
type DocPage struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Content     string     `json:"content"`
	CategoryID  string     `json:"categoryId"`
	Order       int        `json:"order"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Author      string     `json:"author,omitempty"`
	Views       int        `json:"views"`
}

// IsPublished returns true if the page has a publication timestamp.
// Only published pages appear on recent/featured surfaces.
func (p *DocPage) IsPublished() bool {
	return p.PublishedAt != nil
}
