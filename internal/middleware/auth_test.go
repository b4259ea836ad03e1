package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Shad0wcrushers/IDGuides/internal/docstore"
	"github.com/Shad0wcrushers/IDGuides/internal/models"
	"github.com/Shad0wcrushers/IDGuides/internal/persist"
)

func testStore(t *testing.T) *docstore.Store {
	t.Helper()
	s, err := docstore.New(persist.NewMem())
	if err != nil {
		t.Fatalf("docstore.New: %v", err)
	}
	return s
}

// okHandler records whether it was reached.
func okHandler(reached *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestLoadPrincipalWithoutSession(t *testing.T) {
	store := testStore(t)

	var principal *models.User
	h := LoadPrincipal(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal = PrincipalFromCtx(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if principal != nil {
		t.Errorf("principal = %+v, want nil", principal)
	}
}

func TestLoadPrincipalWithSession(t *testing.T) {
	store := testStore(t)
	if _, err := store.Login("admin@example.com", models.DemoPassword); err != nil {
		t.Fatalf("Login: %v", err)
	}

	var principal *models.User
	h := LoadPrincipal(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal = PrincipalFromCtx(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if principal == nil || principal.ID != "user-1" {
		t.Errorf("principal = %+v, want user-1", principal)
	}
}

func TestRequirePrincipalRedirects(t *testing.T) {
	var reached bool
	h := RequirePrincipal(okHandler(&reached))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/admin", nil))

	if reached {
		t.Error("handler reached without a principal")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("Location = %q", loc)
	}
}

func TestRequirePrincipalPassesThrough(t *testing.T) {
	store := testStore(t)
	if _, err := store.Login("user@example.com", models.DemoPassword); err != nil {
		t.Fatalf("Login: %v", err)
	}

	var reached bool
	h := LoadPrincipal(store)(RequirePrincipal(okHandler(&reached)))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/admin", nil))
	if !reached {
		t.Error("handler not reached with a principal")
	}
}

func TestRequireAdminForbidsNonAdmins(t *testing.T) {
	store := testStore(t)
	if _, err := store.Login("user@example.com", models.DemoPassword); err != nil {
		t.Fatalf("Login: %v", err)
	}

	var reached bool
	h := LoadPrincipal(store)(RequireAdmin(okHandler(&reached)))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/admin/users", nil))

	if reached {
		t.Error("handler reached by non-admin")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestRequireAdminAllowsAdmins(t *testing.T) {
	store := testStore(t)
	if _, err := store.Login("admin@example.com", models.DemoPassword); err != nil {
		t.Fatalf("Login: %v", err)
	}

	var reached bool
	h := LoadPrincipal(store)(RequireAdmin(okHandler(&reached)))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/admin/users", nil))
	if !reached {
		t.Error("handler not reached by admin")
	}
}
