package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Shad0wcrushers/IDGuides/internal/docstore"
	"github.com/Shad0wcrushers/IDGuides/internal/persist"
	"github.com/Shad0wcrushers/IDGuides/internal/render"
)

// testEnv wires a store, renderer, and handler groups over an in-memory
// KV, with no page cache.
type testEnv struct {
	store   *docstore.Store
	notices *NoticeBuffer
	public  *Public
	auth    *Auth
	admin   *Admin
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	notices := &NoticeBuffer{}
	store, err := docstore.New(persist.NewMem(), docstore.WithNotifier(notices.Record))
	if err != nil {
		t.Fatalf("docstore.New: %v", err)
	}
	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	return &testEnv{
		store:   store,
		notices: notices,
		public:  NewPublic(store, renderer, notices, nil),
		auth:    NewAuth(store, renderer, notices),
		admin:   NewAdmin(store, renderer, notices),
	}
}

// get runs a request through a chi router so URL params resolve.
func routed(pattern string, method string, h http.HandlerFunc) chi.Router {
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, h)
	return r
}

func TestHomeListsCategories(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.public.Home(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Getting Started", "Minecraft Hosting", "FAQ &amp; Troubleshooting"} {
		if !strings.Contains(body, want) {
			t.Errorf("home missing %q", want)
		}
	}
}

func TestCategoryPage(t *testing.T) {
	env := newTestEnv(t)
	r := routed("/docs/{category}", "GET", env.public.Category)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/docs/getting-started", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Welcome to Our Hosting Documentation") {
		t.Error("category listing missing its page")
	}
}

func TestCategoryNotFound(t *testing.T) {
	env := newTestEnv(t)
	r := routed("/docs/{category}", "GET", env.public.Category)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/docs/no-such-section", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDocsIndexRedirectsToFirstGuide(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.public.DocsIndex(rec, httptest.NewRequest("GET", "/docs", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/docs/getting-started/welcome" {
		t.Errorf("Location = %q", loc)
	}
}

func TestDocsIndexSkipsEmptyCategories(t *testing.T) {
	env := newTestEnv(t)
	for _, id := range []string{"page-1", "page-2"} {
		env.store.DeletePage(id)
	}

	rec := httptest.NewRecorder()
	env.public.DocsIndex(rec, httptest.NewRequest("GET", "/docs", nil))

	if loc := rec.Header().Get("Location"); loc != "/docs/minecraft-hosting/minecraft-server-setup" {
		t.Errorf("Location = %q", loc)
	}
}

func TestPageRendersAndCountsView(t *testing.T) {
	env := newTestEnv(t)
	r := routed("/docs/{category}/{page}", "GET", env.public.Page)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/docs/getting-started/welcome", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "1 views") {
		t.Error("rendered page should show the counted visit")
	}

	page, _ := env.store.Snapshot().PageByID("page-1")
	if page.Views != 1 {
		t.Errorf("views = %d, want 1", page.Views)
	}

	// Refreshing the same page does not count again.
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/docs/getting-started/welcome", nil))
	page, _ = env.store.Snapshot().PageByID("page-1")
	if page.Views != 1 {
		t.Errorf("views after refresh = %d, want 1", page.Views)
	}
}

func TestPageNotFound(t *testing.T) {
	env := newTestEnv(t)
	r := routed("/docs/{category}/{page}", "GET", env.public.Page)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/docs/getting-started/no-such-guide", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.public.Search(rec, httptest.NewRequest("GET", "/search?q=billing", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Managing Your Billing Information") {
		t.Error("search results missing the billing guide")
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.public.Health(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Body.String() != `{"status":"ok"}` {
		t.Errorf("body = %q", rec.Body.String())
	}
}
