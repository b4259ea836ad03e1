package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recoverer turns handler panics into 500 responses so a single bad
// request cannot take the portal down. http.ErrAbortHandler is re-raised
// untouched; the server uses it to abandon writes on dead connections.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			switch rec {
			case nil:
			case http.ErrAbortHandler:
				panic(rec)
			default:
				slog.Error("handler panicked",
					"panic", rec,
					"method", r.Method,
					"url", r.URL.String(),
					"stack", string(debug.Stack()),
				)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
