package microscopy_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/starcellbio/instructor-views/pkg/model"
	"github.com/starcellbio/instructor-views/pkg/pages/microscopy"
	"github.com/starcellbio/instructor-views/pkg/render"
	"github.com/starcellbio/instructor-views/pkg/testsupport"
)

const editorFor42 = `<div class='scb_s_course_setup_description '>` +
	`<div class='scb_s_abstract_title'>Assignment Editor</div>` +
	`<div class='scb_s_experiment_setup_title'>Microscopy Page1</div>` +
	`<div><button assignment_id='42' class=" scb_f_microscopy_page1_save_assignment_button scb_s_assignment_setup_save_button scb_s_navigation_button"  aria-label='Save and Continue' role='button'>SAVE AND CONTINUE &nbsp; &#9654;</button></div>` +
	`</div>`

func TestRenderAssignment_FixedMarkup(t *testing.T) {
	page := newPage(t)

	got, err := page.RenderAssignment(testsupport.Context(), testsupport.SamplePageData("42"))
	if err != nil {
		t.Fatalf("render assignment: %v", err)
	}
	if got != editorFor42 {
		t.Fatalf("assignment editor mismatch\nwant: %q\n got: %q", editorFor42, got)
	}
	if !strings.Contains(got, "assignment_id='42'") || !strings.Contains(got, "SAVE AND CONTINUE") {
		t.Fatalf("expected save button for 42, got %q", got)
	}
}

func TestRenderAssignment_EscapesIdentifier(t *testing.T) {
	page := newPage(t)

	cases := []struct {
		name    string
		id      string
		expect  string
		forbids string
	}{
		{name: "double quote and tag", id: `"><script>x</script>`, expect: "&quot;&gt;&lt;script&gt;", forbids: "<script>"},
		{name: "single quote", id: "a'b", expect: "assignment_id='a&#39;b'", forbids: "a'b"},
		{name: "ampersand", id: "a&b", expect: "assignment_id='a&amp;b'", forbids: "a&b'"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := page.RenderAssignment(testsupport.Context(), testsupport.SamplePageData(tc.id))
			if err != nil {
				t.Fatalf("render assignment: %v", err)
			}
			if !strings.Contains(got, tc.expect) {
				t.Fatalf("expected %q in %q", tc.expect, got)
			}
			if strings.Contains(got, tc.forbids) {
				t.Fatalf("raw identifier %q leaked into %q", tc.forbids, got)
			}
		})
	}
}

func TestRenderAssignment_Idempotent(t *testing.T) {
	page := newPage(t)
	data := testsupport.SamplePageData("a_1")

	first, err := page.RenderAssignment(testsupport.Context(), data)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := page.RenderAssignment(testsupport.Context(), data)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if first != second {
		t.Fatalf("renders differ:\n%q\n%q", first, second)
	}
}

func TestRender_WrapsPage(t *testing.T) {
	page := newPage(t)

	got, err := page.Render(testsupport.Context(), testsupport.SamplePageData("42"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(got, "<div class='scb_s_microscopy_view'>") {
		t.Fatalf("unexpected prefix: %q", got)
	}
	if !strings.HasSuffix(got, "</div>") {
		t.Fatalf("unexpected suffix: %q", got)
	}
	for _, fragment := range []string{
		"<div class='scb_s_header'",
		"<div class='scb_s_assignment_step'",
		"<div class='scb_s_microscopy_container' role='main'>",
		"<div class='scb_s_assignment_navigation'",
		editorFor42,
		"<div class='scb_s_footer'",
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in page:\n%s", fragment, got)
		}
	}
}

func TestRenderTo_AppendsToCallerBuffer(t *testing.T) {
	page := newPage(t)
	data := testsupport.SamplePageData("42")

	standalone, err := page.Render(testsupport.Context(), data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	got := testsupport.CaptureOutput(t, "<main>", func(w io.Writer) error {
		return page.RenderTo(testsupport.Context(), w, data)
	})
	if want := "<main>" + standalone; got != want {
		t.Fatalf("buffer mismatch\nwant: %q\n got: %q", want, got)
	}

	again, err := page.Render(testsupport.Context(), data)
	if err != nil {
		t.Fatalf("render again: %v", err)
	}
	if again != standalone {
		t.Fatalf("page render is not idempotent")
	}
}

func TestRenderTo_CollaboratorOrder(t *testing.T) {
	var steps []model.StepData
	page := newPage(t,
		microscopy.WithHeader(marker("[header]")),
		microscopy.WithNavigation(marker("[nav]")),
		microscopy.WithFooter(marker("[footer]")),
		microscopy.WithStepIndicator(render.StepRegionFunc(func(w io.Writer, step model.StepData) error {
			steps = append(steps, step)
			_, err := fmt.Fprintf(w, "[step %d/%d/%d]", step.Step, step.LastStep, step.PrevStep)
			return err
		})),
	)

	data := testsupport.SamplePageData("42")
	got, err := page.Render(testsupport.Context(), data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "<div class='scb_s_microscopy_view'>" +
		"[header]" +
		"[step 1/3/2]" +
		"<div class='scb_s_microscopy_container' role='main'>" +
		"[nav]" +
		editorFor42 +
		"</div>" +
		"[footer]" +
		"</div>"
	if got != want {
		t.Fatalf("page mismatch\nwant: %q\n got: %q", want, got)
	}

	if len(steps) != 1 {
		t.Fatalf("expected one step render, got %d", len(steps))
	}
	if diff := testsupport.CompareGolden(data.Assignments, steps[0].Assignments); diff != "" {
		t.Fatalf("step indicator did not receive the assignment list (-want +got):\n%s", diff)
	}
}

func TestRenderTo_PropagatesCollaboratorErrors(t *testing.T) {
	boom := errors.New("navigation exploded")
	page := newPage(t,
		microscopy.WithHeader(marker("[header]")),
		microscopy.WithStepIndicator(render.StepRegionFunc(func(io.Writer, model.StepData) error { return nil })),
		microscopy.WithNavigation(render.RegionFunc(func(io.Writer, model.PageData) error { return boom })),
		microscopy.WithFooter(marker("[footer]")),
	)

	var sb strings.Builder
	err := page.RenderTo(testsupport.Context(), &sb, testsupport.SamplePageData("42"))
	if !errors.Is(err, boom) {
		t.Fatalf("expected navigation error, got %v", err)
	}
	want := "<div class='scb_s_microscopy_view'>[header]<div class='scb_s_microscopy_container' role='main'>"
	if sb.String() != want {
		t.Fatalf("partial output mismatch\nwant: %q\n got: %q", want, sb.String())
	}

	if _, err := page.Render(testsupport.Context(), testsupport.SamplePageData("42")); !errors.Is(err, boom) {
		t.Fatalf("expected Render to surface the navigation error, got %v", err)
	}
}

func TestRenderTo_WriterFailure(t *testing.T) {
	page := newPage(t)

	writer := &testsupport.FailingWriter{Budget: 10}
	err := page.RenderTo(testsupport.Context(), writer, testsupport.SamplePageData("42"))
	if !errors.Is(err, testsupport.ErrFailingWriter) {
		t.Fatalf("expected writer failure, got %v", err)
	}
}

func TestRender_MissingAssignment(t *testing.T) {
	page := newPage(t)
	data := testsupport.SamplePageData("42")
	data.Assignment = nil

	var sb strings.Builder
	if err := page.RenderTo(testsupport.Context(), &sb, data); !errors.Is(err, render.ErrMissingAssignment) {
		t.Fatalf("expected ErrMissingAssignment, got %v", err)
	}
	if sb.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", sb.String())
	}
	if _, err := page.RenderAssignment(testsupport.Context(), data); !errors.Is(err, render.ErrMissingAssignment) {
		t.Fatalf("expected ErrMissingAssignment from body, got %v", err)
	}
}

func TestRender_CanceledContext(t *testing.T) {
	page := newPage(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := page.Render(ctx, testsupport.SamplePageData("42")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRender_ThemeReachesHeader(t *testing.T) {
	page := newPage(t, microscopy.WithTheme(&theme.RendererConfig{
		Theme:   "mit",
		Variant: "dark",
		CSSVars: map[string]string{"scb-primary": "#a31f34"},
	}))

	got, err := page.Render(testsupport.Context(), testsupport.SamplePageData("42"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, fragment := range []string{"data-theme='mit'", "data-theme-variant='dark'", "style='--scb-primary: #a31f34'"} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %q in page:\n%s", fragment, got)
		}
	}
}

func TestRender_Concurrent(t *testing.T) {
	page := newPage(t)
	want, err := page.Render(testsupport.Context(), testsupport.SamplePageData("42"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := page.Render(testsupport.Context(), testsupport.SamplePageData("42"))
			if err != nil {
				errs <- err
				return
			}
			if got != want {
				errs <- fmt.Errorf("concurrent render differs")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
}

func TestPage1_Metadata(t *testing.T) {
	page := newPage(t)
	if page.Name() != microscopy.Page1Name {
		t.Fatalf("unexpected name %q", page.Name())
	}
	if page.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", page.ContentType())
	}
}

func marker(text string) render.Region {
	return render.RegionFunc(func(w io.Writer, _ model.PageData) error {
		_, err := io.WriteString(w, text)
		return err
	})
}

func newPage(t *testing.T, options ...microscopy.Option) *microscopy.Page1 {
	t.Helper()

	page, err := microscopy.New(options...)
	if err != nil {
		t.Fatalf("new page: %v", err)
	}
	return page
}
