// Package render is the presentation collaborator: it owns the embedded HTML
// templates and knows nothing about routing or storage.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"datetime": func(t *time.Time) string {
			if t == nil {
				return "open"
			}
			return t.Format("2006-01-02 15:04")
		},
		"date": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w http.ResponseWriter, name string, data any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return r.tmpl.ExecuteTemplate(w, name, data)
}
