package http

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	// letter labels a 0-based option index: 0 -> "A".
	"letter": func(i int) string { return string(rune('A' + i)) },
}

// LoadTemplates parses the embedded pages. Pages are addressed by file name,
// e.g. "quiz.html".
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}
