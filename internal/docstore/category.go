package docstore

import (
	"github.com/google/uuid"

	"github.com/Shad0wcrushers/IDGuides/internal/models"
)

// CategoryInput holds the fields for a new category. The store assigns
// the ID.
type CategoryInput struct {
	Title       string
	Slug        string
	Order       int
	Description string
	ParentID    *string
}

// CategoryPatch is a partial update. Nil fields are left unchanged; the
// merge is shallow.
type CategoryPatch struct {
	Title       *string
	Slug        *string
	Order       *int
	Description *string
	ParentID    *string
}

// AddCategory assigns a fresh ID, appends the category, and emits a
// success notice. Categories are not durably persisted — they reseed from
// the bootstrap set on restart.
func (s *Store) AddCategory(in CategoryInput) models.Category {
	s.mu.Lock()
	cat := models.Category{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Slug:        in.Slug,
		Order:       in.Order,
		Description: in.Description,
		ParentID:    in.ParentID,
	}
	s.categories = append(s.categories, cat)
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.deliver(snap, Change{Op: OpCategoryAdd, ID: cat.ID}, subs)
	s.notifySuccess("Category %q has been created", in.Title)
	return cat
}

// UpdateCategory shallow-merges patch onto the matching category. An
// unknown id is a silent no-op, but the success notice still fires — the
// original behaves this way and callers rely on it.
func (s *Store) UpdateCategory(id string, patch CategoryPatch) {
	s.mu.Lock()
	for i := range s.categories {
		if s.categories[i].ID != id {
			continue
		}
		c := &s.categories[i]
		if patch.Title != nil {
			c.Title = *patch.Title
		}
		if patch.Slug != nil {
			c.Slug = *patch.Slug
		}
		if patch.Order != nil {
			c.Order = *patch.Order
		}
		if patch.Description != nil {
			c.Description = *patch.Description
		}
		if patch.ParentID != nil {
			c.ParentID = patch.ParentID
		}
		break
	}
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.deliver(snap, Change{Op: OpCategoryUpdate, ID: id}, subs)
	s.notifySuccess("Category has been updated")
}

// DeleteCategory removes the category unless any page still references it,
// in which case it returns ErrCategoryInUse and leaves state unchanged.
func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	for i := range s.pages {
		if s.pages[i].CategoryID == id {
			s.mu.Unlock()
			s.notifyError("Cannot delete category with pages. Move or delete the pages first.")
			return ErrCategoryInUse
		}
	}

	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			break
		}
	}
	snap, subs := s.commitLocked()
	s.mu.Unlock()

	s.deliver(snap, Change{Op: OpCategoryDelete, ID: id}, subs)
	s.notifySuccess("Category has been deleted")
	return nil
}
