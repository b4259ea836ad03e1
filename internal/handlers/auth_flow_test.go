package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Shad0wcrushers/IDGuides/internal/models"
)

func postForm(h http.HandlerFunc, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestLoginPageRenders(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.auth.LoginPage(rec, httptest.NewRequest("GET", "/admin/login", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sign in to IDGuides") {
		t.Error("login form missing")
	}
}

func TestLoginSubmitSuccessRedirects(t *testing.T) {
	env := newTestEnv(t)

	rec := postForm(env.auth.LoginSubmit, "/admin/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {models.DemoPassword},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Location = %q", loc)
	}
	if env.store.Snapshot().CurrentUser == nil {
		t.Error("principal not set after login")
	}
}

func TestLoginSubmitBadPasswordReRendersForm(t *testing.T) {
	env := newTestEnv(t)

	rec := postForm(env.auth.LoginSubmit, "/admin/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"wrong"},
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Invalid email or password") {
		t.Error("error notice missing from re-rendered form")
	}
	// The attempted email is preserved in the form.
	if !strings.Contains(body, "admin@example.com") {
		t.Error("email not preserved")
	}
	if env.store.Snapshot().CurrentUser != nil {
		t.Error("principal set despite failed login")
	}
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.store.Login("user@example.com", models.DemoPassword); err != nil {
		t.Fatalf("Login: %v", err)
	}

	rec := postForm(env.auth.Logout, "/admin/logout", url.Values{})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if env.store.Snapshot().CurrentUser != nil {
		t.Error("principal still set after logout")
	}
}
