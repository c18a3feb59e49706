package site

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticFS embed.FS

//go:embed templates/*
var templateFS embed.FS

// indexTemplate is parsed once at startup; a broken template is a build
// defect, so panicking via Must is fine here.
var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// StaticFS returns an http.FileSystem for the embedded page assets.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Only reachable if the embed directive and the sub path drift.
		return http.FS(staticFS)
	}
	return http.FS(sub)
}
