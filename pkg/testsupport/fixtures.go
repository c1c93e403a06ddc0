package testsupport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starcellbio/instructor-views/pkg/model"
)

// MustLoadCatalog loads a catalog fixture, failing the test on error.
func MustLoadCatalog(t *testing.T, path string) model.Catalog {
	t.Helper()

	catalog, err := model.LoadCatalog(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return catalog
}

// MustPageData builds the render context for assignmentID from a catalog
// fixture.
func MustPageData(t *testing.T, catalog model.Catalog, assignmentID string) model.PageData {
	t.Helper()

	data, err := catalog.PageData(assignmentID)
	if err != nil {
		t.Fatalf("page data: %v", err)
	}
	return data
}

// SamplePageData returns a small in-memory render context for tests that do
// not need a fixture file.
func SamplePageData(assignmentID string) model.PageData {
	assignment := model.Assignment{
		ID:         assignmentID,
		Name:       "Cell Cycle Arrest",
		Course:     "7.02",
		CourseName: "Experimental Biology",
	}
	return model.PageData{
		LastStep:   3,
		PrevStep:   2,
		Assignment: &assignment,
		Assignments: model.AssignmentList{
			Selected: assignmentID,
			List: []model.Assignment{
				assignment,
				{ID: "a_2", Name: "Protein Localisation", Course: "7.02"},
			},
		},
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// CaptureOutput runs an append-style render into a buffer pre-seeded with
// prefix and returns the buffer contents.
func CaptureOutput(t *testing.T, prefix string, render func(io.Writer) error) string {
	t.Helper()

	buf := bytes.NewBufferString(prefix)
	if err := render(buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

// ErrFailingWriter is returned by FailingWriter once its budget is spent.
var ErrFailingWriter = errors.New("testsupport: writer failed")

// FailingWriter accepts Budget bytes and then fails every write.
type FailingWriter struct {
	Budget  int
	Written bytes.Buffer
}

func (w *FailingWriter) Write(p []byte) (int, error) {
	if w.Written.Len()+len(p) > w.Budget {
		return 0, fmt.Errorf("after %d bytes: %w", w.Written.Len(), ErrFailingWriter)
	}
	return w.Written.Write(p)
}
