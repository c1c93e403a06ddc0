package template

import (
	"io"
)

// TemplateRenderer is the seam pages render their markup through. It returns
// the rendered string and, when writers are supplied, also writes the same
// payload to each of them.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
