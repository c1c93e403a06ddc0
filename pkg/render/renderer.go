package render

import (
	"context"
	"errors"
	"io"

	"github.com/starcellbio/instructor-views/pkg/model"
)

// ErrMissingAssignment is returned when a page that needs an assignment is
// rendered without one.
var ErrMissingAssignment = errors.New("render: assignment is required")

// Page renders one instructor screen. Render produces a fresh string while
// RenderTo appends to a caller-owned writer; both emit the same bytes.
type Page interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, data model.PageData) (string, error)
	RenderTo(ctx context.Context, w io.Writer, data model.PageData) error
}

// Region appends a page region (header, footer, navigation) for the given
// page data.
type Region interface {
	RenderRegion(w io.Writer, data model.PageData) error
}

// StepRegion appends the editor step indicator.
type StepRegion interface {
	RenderStep(w io.Writer, step model.StepData) error
}

// RegionFunc adapts a plain function to Region.
type RegionFunc func(w io.Writer, data model.PageData) error

func (fn RegionFunc) RenderRegion(w io.Writer, data model.PageData) error {
	return fn(w, data)
}

// StepRegionFunc adapts a plain function to StepRegion.
type StepRegionFunc func(w io.Writer, step model.StepData) error

func (fn StepRegionFunc) RenderStep(w io.Writer, step model.StepData) error {
	return fn(w, step)
}
