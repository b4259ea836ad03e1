// Package router sets up all HTTP routes and middleware chains for the
// IDGuides portal. It organizes routes into public, admin, and
// provisioning-API groups with appropriate middleware stacks.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Shad0wcrushers/IDGuides/internal/docstore"
	"github.com/Shad0wcrushers/IDGuides/internal/handlers"
	"github.com/Shad0wcrushers/IDGuides/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. userAPI may be nil when provisioning is
// disabled.
func New(store *docstore.Store, public *handlers.Public, auth *handlers.Auth, admin *handlers.Admin, userAPI *handlers.UserAPI) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request. Logger sits after
	// LoadPrincipal so access-log lines can name the signed-in account.
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadPrincipal(store))
	r.Use(middleware.Logger)

	// Health check — no auth, no CSRF.
	r.Get("/health", public.Health)

	// Admin routes — authentication plus CSRF protection.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.CSRF)

		// Auth pages — accessible without a session. The login form is
		// rate-limited against credential stuffing.
		loginLimiter := middleware.NewRateLimiter(10, time.Minute)
		r.With(loginLimiter.Middleware).Get("/login", auth.LoginPage)
		r.With(loginLimiter.Middleware).Post("/login", auth.LoginSubmit)
		r.Post("/logout", auth.Logout)

		// Authenticated admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePrincipal)

			r.Get("/", admin.Dashboard)
			r.Post("/views/reset", admin.ResetViews)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.Categories)
				r.Post("/", admin.CreateCategory)
				r.Post("/{id}", admin.UpdateCategory)
				r.Post("/{id}/delete", admin.DeleteCategory)
			})

			r.Route("/pages", func(r chi.Router) {
				r.Get("/", admin.Pages)
				r.Post("/", admin.CreatePage)
				r.Get("/{id}/edit", admin.EditPage)
				r.Post("/{id}", admin.UpdatePage)
				r.Post("/{id}/delete", admin.DeletePage)
			})

			// Account management — admin only.
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/", admin.Users)
				r.Post("/", admin.CreateUser)
				r.Post("/{id}", admin.UpdateUser)
				r.Post("/{id}/delete", admin.DeleteUser)
			})
		})
	})

	// Provisioning API — JSON over the PostgreSQL directory.
	if userAPI != nil {
		r.Route("/api", func(r chi.Router) {
			r.Route("/users", func(r chi.Router) {
				r.Get("/", userAPI.ListUsers)
				r.Post("/", userAPI.CreateUser)
				r.Get("/{id}", userAPI.GetUser)
				r.Put("/{id}", userAPI.UpdateUserRole)
				r.Delete("/{id}", userAPI.DeleteUser)
			})
			r.Post("/upload-image", userAPI.UploadImage)
		})
	}

	// Public portal.
	r.Get("/", public.Home)
	r.Get("/search", public.Search)
	r.Get("/docs", public.DocsIndex)
	r.Get("/docs/{category}", public.Category)
	r.Get("/docs/{category}/{page}", public.Page)

	return r
}
