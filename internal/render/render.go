// Package render provides HTML template rendering for the portal. Each
// page template is paired with the base layout; a few (login) render as
// standalone documents.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Shad0wcrushers/IDGuides/internal/docstore"
	"github.com/Shad0wcrushers/IDGuides/internal/markdown"
	"github.com/Shad0wcrushers/IDGuides/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData holds all data passed to templates.
type PageData struct {
	Title     string            // Page title for the <title> tag
	Section   string            // Active nav section (e.g., "dashboard", "pages")
	Principal *models.User      // Signed-in user (nil if unauthenticated)
	CSRFToken string            // CSRF token for forms
	Notices   []docstore.Notice // One-time messages surfaced to the user
	Snapshot  docstore.Snapshot // Read model backing navigation and lists
	Data      map[string]any    // Page-specific data
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
}

// standaloneTemplates render as full HTML documents without the base
// layout.
var standaloneTemplates = map[string]bool{
	"login": true,
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. When devMode is true, templates load assets from CDN.
func New(devMode bool) (*Renderer, error) {
	funcMap := template.FuncMap{
		"isDev": func() bool { return devMode },
		// deref safely dereferences a string pointer for templates.
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"activeClass": func(current, target string) string {
			if current == target {
				return "active"
			}
			return ""
		},
		"fmtDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		// markdown renders guide content to trusted HTML.
		"markdown": func(source string) template.HTML {
			out, err := markdown.ToHTML(source)
			if err != nil {
				return template.HTML(template.HTMLEscapeString(source))
			}
			return template.HTML(out)
		},
	}

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" {
			continue
		}
		tmplName := name[:len(name)-len(filepath.Ext(name))]

		var tmpl *template.Template
		var parseErr error
		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(funcMap).ParseFS(
				templateFS, "templates/"+name,
			)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(funcMap).ParseFS(
				templateFS, "templates/base.html", "templates/"+name,
			)
		}
		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}
		r.templates[tmplName] = tmpl
	}

	return r, nil
}

// Render executes a template into a byte slice, so callers can cache the
// result. Standalone pages execute their own root; everything else goes
// through the base layout.
func (rn *Renderer) Render(name string, data *PageData) ([]byte, error) {
	tmpl, ok := rn.templates[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	execName := "base.html"
	if standaloneTemplates[name] {
		execName = name + ".html"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, execName, data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Page renders a template straight into the response.
func (rn *Renderer) Page(w http.ResponseWriter, _ *http.Request, name string, data *PageData) {
	out, err := rn.Render(name, data)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(out)
}
