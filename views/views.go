// Package views holds the HTML templates, static assets and the view models
// rendered by the event pages.
package views

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed public
var publicFS embed.FS

// Page template names.
const (
	PageIndex     = "index.html"
	PageEvents    = "events_index.html"
	PageEventAdd  = "events_add.html"
	PageEventEdit = "events_edit.html"
	PageError     = "error.html"
)

// Templates parses every page and the shared partials.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templatesFS, "templates/*.html")
}

// Public serves the static assets mounted under /public.
func Public() http.FileSystem {
	sub, err := fs.Sub(publicFS, "public")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}
	return http.FS(sub)
}
