package pages

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/starcellbio/instructor-views/pkg/render/template/gotemplate"
)

//go:embed templates/chrome/*.tmpl templates/microscopy/*.tmpl
var embeddedTemplates embed.FS

// TemplateExtension is the suffix shared by the bundled page templates.
const TemplateExtension = ".tmpl"

// TemplatesFS exposes the embedded template bundle rooted at the templates
// directory ("chrome/header.tmpl", "microscopy/assignment_editor.tmpl", ...).
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// Should never happen, but fall back to raw FS so templates remain usable.
		return embeddedTemplates
	}
	return sub
}

// NewEngine builds the pongo2 engine pages render through. A nil files value
// selects the embedded bundle.
func NewEngine(files fs.FS) (*gotemplate.Engine, error) {
	if files == nil {
		files = TemplatesFS()
	}
	engine, err := gotemplate.New(
		gotemplate.WithFS(files),
		gotemplate.WithExtension(TemplateExtension),
	)
	if err != nil {
		return nil, fmt.Errorf("pages: configure template renderer: %w", err)
	}
	return engine, nil
}
