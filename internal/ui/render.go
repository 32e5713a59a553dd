package ui

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

// StaticFS holds the site assets served under /static/.
//
//go:embed static
var StaticFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Render executes the named page template. Pages share the head/foot
// partials from layout.html.
func Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	err := templates.ExecuteTemplate(w, name, data)
	if err != nil {
		slog.Error("render failed", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
