// Package middleware provides the HTTP middleware chain for the IDGuides
// portal: access logging, panic recovery, security headers, CSRF, rate
// limiting, and principal loading from the document store.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// loggingWriter records what the handler sent so the access log can
// report the final status and payload size.
type loggingWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (lw *loggingWriter) WriteHeader(code int) {
	if lw.status == 0 {
		lw.status = code
	}
	lw.ResponseWriter.WriteHeader(code)
}

func (lw *loggingWriter) Write(b []byte) (int, error) {
	if lw.status == 0 {
		lw.status = http.StatusOK
	}
	n, err := lw.ResponseWriter.Write(b)
	lw.bytes += n
	return n, err
}

// Logger writes one access-log line per request. Mounted after
// LoadPrincipal it names the signed-in account, and since chi fills the
// routing context during dispatch it reports the route pattern
// (/docs/{category}/{page}) rather than the raw concrete path.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &loggingWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)
		if lw.status == 0 {
			lw.status = http.StatusOK
		}

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		attrs := []any{
			"method", r.Method,
			"route", route,
			"status", lw.status,
			"bytes", lw.bytes,
			"elapsed", time.Since(start).Round(time.Microsecond).String(),
			"remote", clientIP(r),
		}
		if u := PrincipalFromCtx(r.Context()); u != nil {
			attrs = append(attrs, "principal", u.Email)
		}
		slog.Info("request", attrs...)
	})
}
