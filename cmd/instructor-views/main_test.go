package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starcellbio/instructor-views/internal/prompt"
)

const catalogWithSelection = `last_step: 2
prev_step: 1
assignments:
  selected: a_2
  list:
    - id: a_1
      name: Cell Cycle Arrest
    - id: a_2
      name: Protein Localisation
`

const catalogWithoutSelection = `last_step: 2
prev_step: 1
assignments:
  list:
    - id: a_7
      name: Mitosis
    - id: a_8
      name: Meiosis
`

type scriptedDriver struct {
	path   string
	choice int
	inputs int
}

func (d *scriptedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	d.inputs++
	return d.path, nil
}

func (d *scriptedDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	return d.choice, nil
}

func TestRun_RendersAssignment(t *testing.T) {
	cases := []struct {
		name    string
		catalog string
		args    []string
		want    string
	}{
		{name: "explicit flag", catalog: catalogWithSelection, args: []string{"-assignment", "a_1"}, want: "a_1"},
		{name: "catalog selection", catalog: catalogWithSelection, want: "a_2"},
		{name: "first listed", catalog: catalogWithoutSelection, want: "a_7"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeCatalog(t, tc.catalog)
			var stdout bytes.Buffer

			args := append([]string{"-data", path}, tc.args...)
			if err := run(context.Background(), args, &stdout, &scriptedDriver{}); err != nil {
				t.Fatalf("run: %v", err)
			}

			got := stdout.String()
			if !strings.HasPrefix(got, "<div class='scb_s_microscopy_view'>") {
				t.Fatalf("expected page markup, got %q", got)
			}
			if !strings.Contains(got, "assignment_id='"+tc.want+"'") {
				t.Fatalf("expected editor for %s:\n%s", tc.want, got)
			}
		})
	}
}

func TestRun_WritesOutputFile(t *testing.T) {
	path := writeCatalog(t, catalogWithSelection)
	target := filepath.Join(t.TempDir(), "page.html")
	var stdout bytes.Buffer

	if err := run(context.Background(), []string{"-data", path, "-output", target}, &stdout, &scriptedDriver{}); err != nil {
		t.Fatalf("run: %v", err)
	}

	written, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(written), "assignment_id='a_2'") {
		t.Fatalf("unexpected file contents: %s", written)
	}
	if got := stdout.String(); got != "Page written to "+target+"\n" {
		t.Fatalf("unexpected stdout %q", got)
	}
}

func TestRun_Interactive(t *testing.T) {
	path := writeCatalog(t, catalogWithSelection)
	driver := &scriptedDriver{path: path, choice: 0}
	var stdout bytes.Buffer

	if err := run(context.Background(), []string{"-interactive"}, &stdout, driver); err != nil {
		t.Fatalf("run: %v", err)
	}
	if driver.inputs != 1 {
		t.Fatalf("expected one catalog path prompt, got %d", driver.inputs)
	}
	if !strings.Contains(stdout.String(), "assignment_id='a_1'") {
		t.Fatalf("expected the picked assignment, got %s", stdout.String())
	}
}

func TestRun_Errors(t *testing.T) {
	path := writeCatalog(t, catalogWithSelection)

	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing catalog", args: nil, want: "load catalog"},
		{name: "unknown page", args: []string{"-data", path, "-page", "nope"}, want: `unknown page "nope"`},
		{name: "unknown assignment", args: []string{"-data", path, "-assignment", "a_404"}, want: "resolve assignment"},
		{name: "bad flag", args: []string{"-bogus"}, want: "bogus"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var stdout bytes.Buffer
			err := run(context.Background(), tc.args, &stdout, &scriptedDriver{})
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
			if stdout.Len() != 0 {
				t.Fatalf("expected no output on error, got %q", stdout.String())
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	err := run(context.Background(), []string{"-h"}, &bytes.Buffer{}, &scriptedDriver{})
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
}

func writeCatalog(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}
