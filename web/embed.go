// Package web embeds the single-page task board: the HTML template and its
// static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// IndexTemplate is the name of the page template.
const IndexTemplate = "index.html"

// PageData is the data rendered into the page template.
type PageData struct {
	Title     string
	CSRFToken string
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Static returns the embedded assets rooted at the static directory, so
// "js/app.js" addresses static/js/app.js.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// static is embedded at compile time, so Sub cannot fail.
		panic(err)
	}
	return sub
}
