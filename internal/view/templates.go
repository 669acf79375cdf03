package view

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Execute writes the full HTML document for v.
func Execute(w io.Writer, v View) error {
	return pages.ExecuteTemplate(w, "page", v)
}
