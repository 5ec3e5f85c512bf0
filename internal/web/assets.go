package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed *.html
var files embed.FS

var templates = template.Must(template.ParseFS(files, "status.html", "admin.html"))

// Templates holds the "status", "error", "card", "error-card" and "admin"
// templates.
func Templates() *template.Template { return templates }

// FS exposes the raw pages, index.html included.
func FS() fs.FS { return files }
