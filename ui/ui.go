// Package ui embeds the browser page template and its static assets.
package ui

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
)

//go:embed templates static
var files embed.FS

// Static returns the static assets, rooted so that "style.css" is at the top.
func Static() fs.FS {
	fsys, err := fs.Sub(files, "static")
	if err != nil {
		log.Fatalf("Failed to create sub filesystem: %v", err)
	}
	return fsys
}

// Templates parses the page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.html")
}
