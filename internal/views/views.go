// Package views holds the server-rendered HTML templates.
package views

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names
const (
	Dashboard = "dashboard.html"
	Error     = "error.html"
)

// Templates parses every embedded template
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
