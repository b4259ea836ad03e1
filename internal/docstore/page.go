package docstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/Shad0wcrushers/IDGuides/internal/models"
)

// PageInput holds the fields for a new page. The store assigns the ID and
// both timestamps.
type PageInput struct {
	Title       string
	Slug        string
	Content     string
	CategoryID  string
	Order       int
	PublishedAt *time.Time
	Excerpt     string
	Author      string
	Views       int
}

// PagePatch is a partial update. Nil fields are left unchanged.
// UnsetPublishedAt clears the publication timestamp (unpublish); it wins
// over PublishedAt when both are set.
type PagePatch struct {
	Title            *string
	Slug             *string
	Content          *string
	CategoryID       *string
	Order            *int
	PublishedAt      *time.Time
	UnsetPublishedAt bool
	Excerpt          *string
	Author           *string
	Views            *int
}

// UpdateOption adjusts UpdatePage behavior.
type UpdateOption func(*updateOpts)

type updateOpts struct {
	suppressNotice bool
}

// SuppressNotice silences the success notice for one update. Used for
// view-count increments, which must not spam the user.
func SuppressNotice() UpdateOption {
	return func(o *updateOpts) { o.suppressNotice = true }
}

// AddPage assigns a fresh ID, sets CreatedAt and UpdatedAt to now, appends
// the page, and persists the page collection before returning.
func (s *Store) AddPage(in PageInput) models.DocPage {
	s.mu.Lock()
	now := s.now()
	page := models.DocPage{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Slug:        in.Slug,
		Content:     in.Content,
		CategoryID:  in.CategoryID,
		Order:       in.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
		PublishedAt: in.PublishedAt,
		Excerpt:     in.Excerpt,
		Author:      in.Author,
		Views:       in.Views,
	}
	s.pages = append(s.pages, page)
	s.persistPagesLocked()
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.deliver(snap, Change{Op: OpPageAdd, ID: page.ID}, subs)
	s.notifySuccess("Page %q has been created", in.Title)
	return page
}

// UpdatePage shallow-merges patch onto the matching page and refreshes its
// UpdatedAt regardless of what changed. If the mutated page is the
// currently viewed one, the pointer receives the merged patch too — but
// deliberately without the timestamp refresh, mirroring the pointer's
// bypass of the collection merge path. An unknown id changes nothing; the
// success notice fires regardless unless suppressed.
func (s *Store) UpdatePage(id string, patch PagePatch, opts ...UpdateOption) {
	var o updateOpts
	for _, opt := range opts {
		opt(&o)
	}

	s.mu.Lock()
	for i := range s.pages {
		if s.pages[i].ID != id {
			continue
		}
		applyPagePatch(&s.pages[i], patch)
		s.pages[i].UpdatedAt = s.now()
		break
	}

	if s.currentPage != nil && s.currentPage.ID == id {
		applyPagePatch(s.currentPage, patch)
	}

	s.persistPagesLocked()
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.deliver(snap, Change{Op: OpPageUpdate, ID: id, Silent: o.suppressNotice}, subs)
	if !o.suppressNotice {
		s.notifySuccess("Page has been updated")
	}
}

func applyPagePatch(p *models.DocPage, patch PagePatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
	if patch.Order != nil {
		p.Order = *patch.Order
	}
	if patch.UnsetPublishedAt {
		p.PublishedAt = nil
	} else if patch.PublishedAt != nil {
		p.PublishedAt = patch.PublishedAt
	}
	if patch.Excerpt != nil {
		p.Excerpt = *patch.Excerpt
	}
	if patch.Author != nil {
		p.Author = *patch.Author
	}
	if patch.Views != nil {
		p.Views = *patch.Views
	}
}

// DeletePage removes the page, clears the currently-viewed pointer if it
// referenced it, and persists.
func (s *Store) DeletePage(id string) {
	s.mu.Lock()
	for i := range s.pages {
		if s.pages[i].ID == id {
			s.pages = append(s.pages[:i], s.pages[i+1:]...)
			break
		}
	}
	if s.currentPage != nil && s.currentPage.ID == id {
		s.currentPage = nil
	}
	s.persistPagesLocked()
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.deliver(snap, Change{Op: OpPageDelete, ID: id}, subs)
	s.notifySuccess("Page has been deleted")
}

// SetCurrentPage looks the page up by id and sets the currently-viewed
// pointer. An empty id, or an unknown one, clears it.
func (s *Store) SetCurrentPage(id string) {
	s.mu.Lock()
	s.currentPage = nil
	if id != "" {
		for i := range s.pages {
			if s.pages[i].ID == id {
				page := clonePage(s.pages[i])
				s.currentPage = &page
				break
			}
		}
	}
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.deliver(snap, Change{Op: OpCurrentPage, ID: id, Silent: true}, subs)
}

// View records that the page has become the currently viewed one. A page
// that is already current is not re-counted: each distinct page identity
// gets exactly one silent view-count increment per viewing session. The
// pointer set and the increment commit together.
func (s *Store) View(id string) {
	s.mu.Lock()
	if s.currentPage != nil && s.currentPage.ID == id {
		s.mu.Unlock()
		return
	}

	idx := -1
	for i := range s.pages {
		if s.pages[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return
	}

	// The pointer keeps the pre-refresh UpdatedAt, same as an UpdatePage
	// on the currently viewed page.
	pointer := clonePage(s.pages[idx])
	pointer.Views++
	s.currentPage = &pointer

	s.pages[idx].Views++
	s.pages[idx].UpdatedAt = s.now()
	s.persistPagesLocked()
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.deliver(snap, Change{Op: OpPageUpdate, ID: id, Silent: true}, subs)
}

// ResetAllViews zeroes every page's view counter in one batch and persists
// once. The change is visible in the returned snapshot immediately.
func (s *Store) ResetAllViews() {
	s.mu.Lock()
	for i := range s.pages {
		s.pages[i].Views = 0
	}
	s.persistPagesLocked()
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.deliver(snap, Change{Op: OpViewsReset}, subs)
	s.notifySuccess("All page view counts have been reset")
}
