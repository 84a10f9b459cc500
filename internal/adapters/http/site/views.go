package site

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// parseViews parses every embedded view template.
func parseViews() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
