package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Shad0wcrushers/IDGuides/internal/docstore"
	"github.com/Shad0wcrushers/IDGuides/internal/middleware"
	"github.com/Shad0wcrushers/IDGuides/internal/models"
	"github.com/Shad0wcrushers/IDGuides/internal/render"
	"github.com/Shad0wcrushers/IDGuides/internal/slug"
)

// Admin groups the content-management handlers. Mutations go through the
// document store, which emits the notices shown on the next page load.
type Admin struct {
	store    *docstore.Store
	renderer *render.Renderer
	notices  *NoticeBuffer
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(store *docstore.Store, renderer *render.Renderer, notices *NoticeBuffer) *Admin {
	return &Admin{store: store, renderer: renderer, notices: notices}
}

func (a *Admin) page(w http.ResponseWriter, r *http.Request, tmpl, title, section string, data map[string]any) {
	a.renderer.Page(w, r, tmpl, &render.PageData{
		Title:     title,
		Section:   section,
		Principal: middleware.PrincipalFromCtx(r.Context()),
		CSRFToken: middleware.GetCSRFToken(r),
		Notices:   a.notices.Drain(),
		Snapshot:  a.store.Snapshot(),
		Data:      data,
	})
}

// Dashboard shows collection counts, recent edits, and view standings.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap := a.store.Snapshot()

	total := 0
	for _, p := range snap.Pages {
		total += p.Views
	}

	// Recent edits include drafts, unlike the public recent listing.
	recent := make([]models.DocPage, len(snap.Pages))
	copy(recent, snap.Pages)
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].UpdatedAt.After(recent[j].UpdatedAt)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}

	a.page(w, r, "dashboard", "Dashboard", "dashboard", map[string]any{
		"totalViews": total,
		"recent":     recent,
		"mostViewed": snap.MostViewed(2),
	})
}

// Categories renders the category management page.
func (a *Admin) Categories(w http.ResponseWriter, r *http.Request) {
	a.page(w, r, "admin_categories", "Categories", "categories", nil)
}

// CreateCategory handles the new-category form. A blank slug is derived
// from the title.
func (a *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	title := r.FormValue("title")
	catSlug := strings.TrimSpace(r.FormValue("slug"))
	if msg := validateCategory(title, catSlug); msg != "" {
		a.notices.Record(docstore.Notice{Level: docstore.NoticeError, Message: msg})
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}
	if catSlug == "" {
		catSlug = slug.Generate(title)
	}

	order, _ := strconv.Atoi(r.FormValue("order"))
	a.store.AddCategory(docstore.CategoryInput{
		Title:       strings.TrimSpace(title),
		Slug:        catSlug,
		Order:       order,
		Description: r.FormValue("description"),
	})
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// UpdateCategory applies the inline edit form. The row form always
// submits title and slug, so both are validated before the merge.
func (a *Admin) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	title := strings.TrimSpace(r.FormValue("title"))
	catSlug := strings.TrimSpace(r.FormValue("slug"))

	if msg := validateCategory(title, catSlug); msg != "" {
		a.notices.Record(docstore.Notice{Level: docstore.NoticeError, Message: msg})
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}
	if catSlug == "" {
		catSlug = slug.Generate(title)
	}

	patch := docstore.CategoryPatch{Title: &title, Slug: &catSlug}
	if v := r.FormValue("order"); v != "" {
		order, _ := strconv.Atoi(v)
		patch.Order = &order
	}
	if r.Form.Has("description") {
		v := r.FormValue("description")
		patch.Description = &v
	}

	a.store.UpdateCategory(id, patch)
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// DeleteCategory removes a category. The store refuses while pages still
// reference it and emits the error notice itself.
func (a *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	a.store.DeleteCategory(chi.URLParam(r, "id"))
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// Pages renders the page management screen.
func (a *Admin) Pages(w http.ResponseWriter, r *http.Request) {
	a.page(w, r, "admin_pages", "Pages", "pages", nil)
}

// EditPage renders the markdown editor for an existing page.
func (a *Admin) EditPage(w http.ResponseWriter, r *http.Request) {
	page, ok := a.store.Snapshot().PageByID(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	a.page(w, r, "admin_page_edit", "Edit: "+page.Title, "pages", map[string]any{
		"page": page,
	})
}

// CreatePage handles the new-page form.
func (a *Admin) CreatePage(w http.ResponseWriter, r *http.Request) {
	title := r.FormValue("title")
	pageSlug := strings.TrimSpace(r.FormValue("slug"))
	content := r.FormValue("content")
	excerpt := r.FormValue("excerpt")

	if msg := validatePage(title, pageSlug, content, excerpt); msg != "" {
		a.notices.Record(docstore.Notice{Level: docstore.NoticeError, Message: msg})
		http.Redirect(w, r, "/admin/pages", http.StatusSeeOther)
		return
	}
	if pageSlug == "" {
		pageSlug = slug.Generate(title)
	}

	var published *time.Time
	if r.FormValue("published") != "" {
		now := time.Now()
		published = &now
	}

	order, _ := strconv.Atoi(r.FormValue("order"))
	var author string
	if u := middleware.PrincipalFromCtx(r.Context()); u != nil {
		author = u.DisplayName()
	}

	a.store.AddPage(docstore.PageInput{
		Title:       strings.TrimSpace(title),
		Slug:        pageSlug,
		Content:     content,
		CategoryID:  r.FormValue("categoryId"),
		Order:       order,
		PublishedAt: published,
		Excerpt:     excerpt,
		Author:      author,
	})
	http.Redirect(w, r, "/admin/pages", http.StatusSeeOther)
}

// UpdatePage applies a partial edit from the markdown editor.
func (a *Admin) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, found := a.store.Snapshot().PageByID(id)
	patch := docstore.PagePatch{}

	if v := r.FormValue("title"); v != "" {
		v := strings.TrimSpace(v)
		patch.Title = &v
	}
	if v := r.FormValue("slug"); v != "" {
		patch.Slug = &v
	} else if patch.Title != nil && found && slug.IsAutoDerived(existing.Slug, existing.Title) {
		// Keep auto-derived slugs tracking the title until the editor
		// diverges the slug manually.
		derived := slug.Generate(*patch.Title)
		patch.Slug = &derived
	}
	if r.Form.Has("content") {
		v := r.FormValue("content")
		patch.Content = &v
	}
	if r.Form.Has("published") && found {
		if r.FormValue("published") != "" {
			// Keep the original publication date on already-live pages.
			if existing.PublishedAt == nil {
				now := time.Now()
				patch.PublishedAt = &now
			}
		} else {
			patch.UnsetPublishedAt = true
		}
	}
	if v := r.FormValue("categoryId"); v != "" {
		patch.CategoryID = &v
	}
	if v := r.FormValue("order"); v != "" {
		order, _ := strconv.Atoi(v)
		patch.Order = &order
	}
	if r.Form.Has("excerpt") {
		v := r.FormValue("excerpt")
		patch.Excerpt = &v
	}

	a.store.UpdatePage(id, patch)
	http.Redirect(w, r, "/admin/pages", http.StatusSeeOther)
}

// DeletePage removes a page.
func (a *Admin) DeletePage(w http.ResponseWriter, r *http.Request) {
	a.store.DeletePage(chi.URLParam(r, "id"))
	http.Redirect(w, r, "/admin/pages", http.StatusSeeOther)
}

// Users renders the account management screen.
func (a *Admin) Users(w http.ResponseWriter, r *http.Request) {
	filter := strings.TrimSpace(r.URL.Query().Get("email"))
	users := a.store.Snapshot().Users
	if filter != "" {
		needle := strings.ToLower(filter)
		filtered := make([]models.User, 0, len(users))
		for _, u := range users {
			if strings.Contains(strings.ToLower(u.Email), needle) {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}
	a.page(w, r, "admin_users", "Users", "users", map[string]any{
		"users":       users,
		"emailFilter": filter,
	})
}

// CreateUser handles the new-user form.
func (a *Admin) CreateUser(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	role := models.Role(r.FormValue("role"))

	if msg := validateUser(name, email, role); msg != "" {
		a.notices.Record(docstore.Notice{Level: docstore.NoticeError, Message: msg})
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	a.store.AddUser(docstore.UserInput{Name: name, Email: email, Role: role})
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// UpdateUser changes a user's role from the inline form.
func (a *Admin) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	roleValue := r.FormValue("role")
	if !models.ValidRole(roleValue) {
		a.notices.Record(docstore.Notice{Level: docstore.NoticeError, Message: "Unknown role."})
		http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
		return
	}

	role := models.Role(roleValue)
	a.store.UpdateUser(id, docstore.UserPatch{Role: &role})
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// DeleteUser removes an account. The signed-in user stays signed in even
// when deleting their own account.
func (a *Admin) DeleteUser(w http.ResponseWriter, r *http.Request) {
	a.store.DeleteUser(chi.URLParam(r, "id"))
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// ResetViews zeroes every page's view counter.
func (a *Admin) ResetViews(w http.ResponseWriter, r *http.Request) {
	a.store.ResetAllViews()
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
