package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCSRFSetsCookieOnFirstVisit(t *testing.T) {
	h := CSRF(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	var token string
	for _, c := range rec.Result().Cookies() {
		if c.Name == CSRFCookieName {
			token = c.Value
		}
	}
	if len(token) != csrfTokenLength*2 {
		t.Errorf("token %q, want %d hex chars", token, csrfTokenLength*2)
	}
}

func TestCSRFAllowsSafeMethods(t *testing.T) {
	var reached bool
	h := CSRF(okHandler(&reached))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if !reached {
		t.Error("GET blocked without token")
	}
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	var reached bool
	h := CSRF(okHandler(&reached))

	req := httptest.NewRequest("POST", "/admin/pages", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "aaaa"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if reached {
		t.Error("POST allowed without token")
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestCSRFAcceptsMatchingHeader(t *testing.T) {
	var reached bool
	h := CSRF(okHandler(&reached))

	req := httptest.NewRequest("POST", "/admin/pages", nil)
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "sometoken"})
	req.Header.Set(CSRFHeaderName, "sometoken")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !reached {
		t.Error("POST with matching header blocked")
	}
}

func TestCSRFAcceptsMatchingFormField(t *testing.T) {
	var reached bool
	h := CSRF(okHandler(&reached))

	form := strings.NewReader(CSRFFormField + "=sometoken")
	req := httptest.NewRequest("POST", "/admin/pages", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "sometoken"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !reached {
		t.Error("POST with matching form field blocked")
	}
}

func TestGetCSRFToken(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if got := GetCSRFToken(req); got != "" {
		t.Errorf("token without cookie = %q", got)
	}

	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "tok"})
	if got := GetCSRFToken(req); got != "tok" {
		t.Errorf("token = %q", got)
	}
}
