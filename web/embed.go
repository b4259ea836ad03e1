// Package web provides embedded static assets for the portal. In
// development, templates load assets from CDN; in production the compiled
// CSS is embedded here and served at /static/.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree. Docker builds place the
// compiled TailwindCSS output here; local development may only contain
// the input.css source.
//
//go:embed all:static
var StaticFS embed.FS
