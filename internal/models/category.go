package models

// Category groups doc pages into a navigable section of the portal.
// Categories are seeded from the bootstrap dataset at startup and are not
// durably persisted.
type Category struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Order       int     `json:"order"`
	Description string  `json:"description,omitempty"`
	ParentID    *string `json:"parentId,omitempty"` // reserved for nesting, unused by any operation
}
