package instructorviews

import (
	"fmt"
	"io/fs"

	"github.com/starcellbio/instructor-views/pkg/pages"
	"github.com/starcellbio/instructor-views/pkg/pages/microscopy"
	"github.com/starcellbio/instructor-views/pkg/render"
)

// NewRegistry builds a page registry holding every instructor page. Options
// apply to the microscopy pages.
func NewRegistry(options ...microscopy.Option) (*render.Registry, error) {
	page1, err := microscopy.New(options...)
	if err != nil {
		return nil, fmt.Errorf("instructorviews: %w", err)
	}

	registry := render.NewRegistry()
	if err := registry.Register(page1); err != nil {
		return nil, fmt.Errorf("instructorviews: %w", err)
	}
	return registry, nil
}

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the pages package directly.
func EmbeddedTemplates() fs.FS {
	return pages.TemplatesFS()
}
