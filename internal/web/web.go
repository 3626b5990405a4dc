// Package web holds the embedded presentation shell: a single
// server-rendered page that drives the JSON API with small fetch calls.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates
var templates embed.FS

var index = template.Must(template.ParseFS(templates, "templates/index.html"))

// RenderIndex writes the main page.
func RenderIndex(w io.Writer) error {
	if err := index.Execute(w, nil); err != nil {
		return fmt.Errorf("executing index template: %w", err)
	}
	return nil
}
