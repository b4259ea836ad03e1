package docstore

import (
	"sort"
	"strings"

	"github.com/Shad0wcrushers/IDGuides/internal/models"
)

// Snapshot is an immutable point-in-time view of the store. Consumers may
// sort and filter it freely; nothing they do to a snapshot reaches the
// store.
type Snapshot struct {
	Version     uint64
	Categories  []models.Category
	Pages       []models.DocPage
	Users       []models.User
	CurrentUser *models.User
	CurrentPage *models.DocPage
}

// Snapshot returns the current version-stamped snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Version:    s.version,
		Categories: make([]models.Category, len(s.categories)),
		Pages:      make([]models.DocPage, len(s.pages)),
		Users:      make([]models.User, len(s.users)),
	}
	for i, c := range s.categories {
		snap.Categories[i] = cloneCategory(c)
	}
	for i, p := range s.pages {
		snap.Pages[i] = clonePage(p)
	}
	copy(snap.Users, s.users)
	if s.currentUser != nil {
		u := *s.currentUser
		snap.CurrentUser = &u
	}
	if s.currentPage != nil {
		p := clonePage(*s.currentPage)
		snap.CurrentPage = &p
	}
	return snap
}

func cloneCategory(c models.Category) models.Category {
	if c.ParentID != nil {
		parent := *c.ParentID
		c.ParentID = &parent
	}
	return c
}

func clonePage(p models.DocPage) models.DocPage {
	if p.PublishedAt != nil {
		published := *p.PublishedAt
		p.PublishedAt = &published
	}
	return p
}

// CategoriesByOrder returns categories sorted ascending by Order.
func (s Snapshot) CategoriesByOrder() []models.Category {
	out := make([]models.Category, len(s.Categories))
	copy(out, s.Categories)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// PagesInCategory returns the category's pages sorted ascending by Order.
func (s Snapshot) PagesInCategory(categoryID string) []models.DocPage {
	var out []models.DocPage
	for _, p := range s.Pages {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// RecentPages returns up to n published pages, most recently updated first.
func (s Snapshot) RecentPages(n int) []models.DocPage {
	var out []models.DocPage
	for _, p := range s.Pages {
		if p.IsPublished() {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// MostViewed returns up to n pages with at least one view, by descending
// view count, ties broken by most recent update.
func (s Snapshot) MostViewed(n int) []models.DocPage {
	var out []models.DocPage
	for _, p := range s.Pages {
		if p.Views > 0 {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Views != out[j].Views {
			return out[i].Views > out[j].Views
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// CategoryByID returns the category and whether it exists.
func (s Snapshot) CategoryByID(id string) (models.Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

// CategoryBySlug returns the category and whether it exists. Slugs are the
// external lookup key for categories; the store does not enforce their
// uniqueness, so the first match by insertion order wins.
func (s Snapshot) CategoryBySlug(slug string) (models.Category, bool) {
	for _, c := range s.Categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return models.Category{}, false
}

// PageByID returns the page and whether it exists.
func (s Snapshot) PageByID(id string) (models.DocPage, bool) {
	for _, p := range s.Pages {
		if p.ID == id {
			return p, true
		}
	}
	return models.DocPage{}, false
}

// PageBySlug returns the page with the given slug inside one category.
func (s Snapshot) PageBySlug(categoryID, slug string) (models.DocPage, bool) {
	for _, p := range s.Pages {
		if p.CategoryID == categoryID && p.Slug == slug {
			return p, true
		}
	}
	return models.DocPage{}, false
}

// UserByID returns the user and whether it exists.
func (s Snapshot) UserByID(id string) (models.User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// UserByEmail returns the user and whether it exists.
func (s Snapshot) UserByEmail(email string) (models.User, bool) {
	for _, u := range s.Users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

// SearchResult pairs a matching page with its category for link building.
type SearchResult struct {
	Category models.Category
	Page     models.DocPage
}

// Search runs a case-insensitive substring match over page titles,
// excerpts, and content. Results come back grouped by category order, then
// page order within the category. Pages whose category no longer exists
// are unreachable and excluded.
func (s Snapshot) Search(query string) []SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var out []SearchResult
	for _, cat := range s.CategoriesByOrder() {
		for _, p := range s.PagesInCategory(cat.ID) {
			if strings.Contains(strings.ToLower(p.Title), query) ||
				strings.Contains(strings.ToLower(p.Excerpt), query) ||
				strings.Contains(strings.ToLower(p.Content), query) {
				out = append(out, SearchResult{Category: cat, Page: p})
			}
		}
	}
	return out
}
