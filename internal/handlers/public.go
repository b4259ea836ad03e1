package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shad0wcrushers/IDGuides/internal/cache"
	"github.com/Shad0wcrushers/IDGuides/internal/docstore"
	"github.com/Shad0wcrushers/IDGuides/internal/middleware"
	"github.com/Shad0wcrushers/IDGuides/internal/models"
	"github.com/Shad0wcrushers/IDGuides/internal/render"
)

// Public groups handlers for the reader-facing portal. When a page cache
// is configured it is checked before rendering, and rendered pages are
// stored on miss. View counting still runs on cache hits; those commits
// are silent and leave the cache alone, so the counts shown in cached
// HTML lag until the next content edit.
type Public struct {
	store     *docstore.Store
	renderer  *render.Renderer
	notices   *NoticeBuffer
	pageCache *cache.PageCache // nil when caching is disabled
}

// NewPublic creates a new Public handler group. pageCache may be nil.
func NewPublic(store *docstore.Store, renderer *render.Renderer, notices *NoticeBuffer, pageCache *cache.PageCache) *Public {
	return &Public{store: store, renderer: renderer, notices: notices, pageCache: pageCache}
}

// pageLink pairs a page with its category slug for URL building in
// templates.
type pageLink struct {
	CategorySlug string
	Page         models.DocPage
}

func (p *Public) links(snap docstore.Snapshot, pages []models.DocPage) []pageLink {
	var out []pageLink
	for _, page := range pages {
		cat, ok := snap.CategoryByID(page.CategoryID)
		if !ok {
			continue
		}
		out = append(out, pageLink{CategorySlug: cat.Slug, Page: page})
	}
	return out
}

// The shared cache holds anonymous renders only. A signed-in request is
// rendered fresh (its nav carries the account name and a logout form with
// that request's CSRF token) and never stored, so visitors can never be
// served another session's markup.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if p.pageCache == nil || middleware.PrincipalFromCtx(r.Context()) != nil {
		return false
	}
	cached, ok := p.pageCache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(cached)
	return true
}

func (p *Public) serveAndCache(w http.ResponseWriter, r *http.Request, key, tmpl string, data *render.PageData) {
	out, err := p.renderer.Render(tmpl, data)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	// Pending notices are also user-specific; keep those renders out of
	// the shared cache.
	if p.pageCache != nil && data.Principal == nil && len(data.Notices) == 0 {
		p.pageCache.Set(r.Context(), key, out)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(out)
}

// Home renders the portal home: category cards plus the recently updated
// and most viewed lists.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r, cache.HomeKey()) {
		return
	}

	snap := p.store.Snapshot()
	p.serveAndCache(w, r, cache.HomeKey(), "home", &render.PageData{
		Section:   "home",
		Principal: middleware.PrincipalFromCtx(r.Context()),
		CSRFToken: middleware.GetCSRFToken(r),
		Notices:   p.notices.Drain(),
		Snapshot:  snap,
		Data: map[string]any{
			"recent":  p.links(snap, snap.RecentPages(4)),
			"popular": p.links(snap, snap.MostViewed(5)),
		},
	})
}

// DocsIndex sends the reader to the first page of the first category, the
// portal's natural entry point when no guide is named.
func (p *Public) DocsIndex(w http.ResponseWriter, r *http.Request) {
	snap := p.store.Snapshot()
	for _, cat := range snap.CategoriesByOrder() {
		pages := snap.PagesInCategory(cat.ID)
		if len(pages) == 0 {
			continue
		}
		http.Redirect(w, r, "/docs/"+cat.Slug+"/"+pages[0].Slug, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Category renders a category's page listing.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	catSlug := chi.URLParam(r, "category")
	if p.serveCached(w, r, cache.CategoryKey(catSlug)) {
		return
	}

	snap := p.store.Snapshot()
	cat, ok := snap.CategoryBySlug(catSlug)
	if !ok {
		http.NotFound(w, r)
		return
	}

	p.serveAndCache(w, r, cache.CategoryKey(catSlug), "category", &render.PageData{
		Title:     cat.Title,
		Section:   "docs",
		Principal: middleware.PrincipalFromCtx(r.Context()),
		CSRFToken: middleware.GetCSRFToken(r),
		Notices:   p.notices.Drain(),
		Snapshot:  snap,
		Data: map[string]any{
			"category": cat,
			"pages":    snap.PagesInCategory(cat.ID),
		},
	})
}

// Page renders a single guide and records the visit. The view count is
// recorded even when the rendered HTML comes from the cache.
func (p *Public) Page(w http.ResponseWriter, r *http.Request) {
	catSlug := chi.URLParam(r, "category")
	pageSlug := chi.URLParam(r, "page")

	snap := p.store.Snapshot()
	cat, ok := snap.CategoryBySlug(catSlug)
	if !ok {
		http.NotFound(w, r)
		return
	}
	page, ok := snap.PageBySlug(cat.ID, pageSlug)
	if !ok {
		http.NotFound(w, r)
		return
	}

	p.store.View(page.ID)

	key := cache.PageKey(catSlug, pageSlug)
	if p.serveCached(w, r, key) {
		return
	}

	// Re-read so the rendered count includes this visit.
	snap = p.store.Snapshot()
	page, _ = snap.PageByID(page.ID)

	p.serveAndCache(w, r, key, "page", &render.PageData{
		Title:     page.Title,
		Section:   "docs",
		Principal: middleware.PrincipalFromCtx(r.Context()),
		CSRFToken: middleware.GetCSRFToken(r),
		Notices:   p.notices.Drain(),
		Snapshot:  snap,
		Data: map[string]any{
			"category": cat,
			"page":     page,
		},
	})
}

// Search renders full-text search results. Never cached: the query space
// is unbounded.
func (p *Public) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	snap := p.store.Snapshot()

	p.renderer.Page(w, r, "search", &render.PageData{
		Title:     "Search",
		Section:   "search",
		Principal: middleware.PrincipalFromCtx(r.Context()),
		CSRFToken: middleware.GetCSRFToken(r),
		Notices:   p.notices.Drain(),
		Snapshot:  snap,
		Data: map[string]any{
			"query":   query,
			"results": snap.Search(query),
		},
	})
}

// Health is the liveness endpoint.
func (p *Public) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
