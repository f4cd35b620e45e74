// Package web provides the server-rendered view layer: pre-parsed embedded
// templates plus embedded static assets. Templates are parsed once at
// startup, avoiding per-request overhead and failing fast on bad markup.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/fitstudio/reassess/internal/ctxkeys"
	"github.com/fitstudio/reassess/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// views rendered inside the shared layout. The report view is standalone:
// it doubles as the PDF source document and carries its own markup.
var layoutViews = []string{
	"form.html",
	"success.html",
	"login.html",
	"clients.html",
	"history.html",
	"comparison.html",
}

// ViewData is the envelope passed to every layout-based template.
type ViewData struct {
	Title         string
	AppName       string
	Authenticated bool
	Data          any
}

// TemplateSet holds the pre-parsed templates.
type TemplateSet struct {
	views  map[string]*template.Template
	report *template.Template
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string { return t.Format("02/01/2006") },
	"has": func(items []string, item string) bool {
		for _, i := range items {
			if i == item {
				return true
			}
		}
		return false
	},
}

func NewTemplateSet() (*TemplateSet, error) {
	layouts, err := template.New("layout").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	views := make(map[string]*template.Template, len(layoutViews))
	for _, name := range layoutViews {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout for %s: %w", name, err)
		}
		_, err = t.ParseFS(templatesFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		views[name] = t
	}

	report, err := template.New("report.html").Funcs(funcs).ParseFS(templatesFS, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}

	return &TemplateSet{views: views, report: report}, nil
}

// Render executes a layout view with status 200.
func (ts *TemplateSet) Render(w http.ResponseWriter, r *http.Request, view, title string, data any) {
	ts.RenderStatus(w, r, http.StatusOK, view, title, data)
}

// RenderStatus executes a layout view with an explicit status code. Render
// failures are logged and surfaced as a plain 500; a bad view must never
// take the process down.
func (ts *TemplateSet) RenderStatus(w http.ResponseWriter, r *http.Request, status int, view, title string, data any) {
	t, ok := ts.views[view]
	if !ok {
		slog.Error("render failed", "error", "template not found", "view", view)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	vd := ViewData{
		Title:         title,
		AppName:       appName(r),
		Authenticated: ctxkeys.Authenticated(r.Context()),
		Data:          data,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	err := t.ExecuteTemplate(w, "layout", vd)
	if err != nil {
		slog.Error("render failed", "error", err, "view", view)
	}
}

// ReportData is passed to the standalone report template.
type ReportData struct {
	ClientName  string
	Assessments []*model.Assessment
	GeneratedAt time.Time
}

// RenderReport writes the standalone printable report document. It is the
// rendering collaborator behind the PDF export.
func (ts *TemplateSet) RenderReport(w io.Writer, clientName string, assessments []*model.Assessment, generatedAt time.Time) error {
	return ts.report.ExecuteTemplate(w, "report.html", ReportData{
		ClientName:  clientName,
		Assessments: assessments,
		GeneratedAt: generatedAt,
	})
}

// StaticHandler serves the embedded static assets, mounted at /static/.
func StaticHandler() http.Handler {
	sub, _ := fs.Sub(staticFS, "static")
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

func appName(r *http.Request) string {
	cfg := ctxkeys.Config(r.Context())
	if cfg != nil && cfg.AppName != "" {
		return cfg.AppName
	}
	return "Reassess"
}
