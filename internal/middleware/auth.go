package middleware

import (
	"context"
	"net/http"

	"github.com/Shad0wcrushers/IDGuides/internal/docstore"
	"github.com/Shad0wcrushers/IDGuides/internal/models"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// principalKey is the context key for the signed-in user.
const principalKey contextKey = "principal"

// LoadPrincipal copies the store's signed-in user, if any, into the
// request context. Downstream handlers access it via PrincipalFromCtx().
// This middleware does NOT enforce authentication.
func LoadPrincipal(store *docstore.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u := store.Snapshot().CurrentUser; u != nil {
				r = r.WithContext(context.WithValue(r.Context(), principalKey, u))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePrincipal redirects unauthenticated visitors to the login page.
// Must be applied after LoadPrincipal in the middleware chain.
func RequirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if PrincipalFromCtx(r.Context()) == nil {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin returns 403 if the signed-in user is not an admin.
// Must be applied after RequirePrincipal.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := PrincipalFromCtx(r.Context())
		if u == nil || !u.IsAdmin() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PrincipalFromCtx extracts the signed-in user from the request context.
// Returns nil when nobody is signed in.
func PrincipalFromCtx(ctx context.Context) *models.User {
	u, _ := ctx.Value(principalKey).(*models.User)
	return u
}
