package handlers

import (
	"errors"
	"net/http"

	"github.com/Shad0wcrushers/IDGuides/internal/docstore"
	"github.com/Shad0wcrushers/IDGuides/internal/middleware"
	"github.com/Shad0wcrushers/IDGuides/internal/render"
)

// Auth groups the sign-in and sign-out handlers.
type Auth struct {
	store    *docstore.Store
	renderer *render.Renderer
	notices  *NoticeBuffer
}

// NewAuth creates a new Auth handler group.
func NewAuth(store *docstore.Store, renderer *render.Renderer, notices *NoticeBuffer) *Auth {
	return &Auth{store: store, renderer: renderer, notices: notices}
}

// LoginPage renders the login form. Signed-in users go straight to the
// dashboard.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.PrincipalFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	a.renderer.Page(w, r, "login", &render.PageData{
		Title:     "Sign In",
		CSRFToken: middleware.GetCSRFToken(r),
		Notices:   a.notices.Drain(),
		Data:      map[string]any{"email": ""},
	})
}

// LoginSubmit processes the login form.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	_, err := a.store.Login(email, password)
	if errors.Is(err, docstore.ErrInvalidCredentials) {
		w.WriteHeader(http.StatusUnauthorized)
		a.renderer.Page(w, r, "login", &render.PageData{
			Title:     "Sign In",
			CSRFToken: middleware.GetCSRFToken(r),
			Notices:   a.notices.Drain(),
			Data:      map[string]any{"email": email},
		})
		return
	}
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout clears the session and returns to the portal home.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.store.Logout()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
