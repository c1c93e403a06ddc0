package microscopy

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/starcellbio/instructor-views/pkg/model"
	"github.com/starcellbio/instructor-views/pkg/pages"
	"github.com/starcellbio/instructor-views/pkg/pages/chrome"
	"github.com/starcellbio/instructor-views/pkg/render"
	rendertemplate "github.com/starcellbio/instructor-views/pkg/render/template"
)

// Page1Name is the registry name of the first microscopy editor page.
const Page1Name = "instructor_microscopy_page1"

// Page1Step is the position of the page inside the editor flow.
const Page1Step = 1

const (
	viewOpen       = "<div class='scb_s_microscopy_view'>"
	containerOpen  = "<div class='scb_s_microscopy_container' role='main'>"
	closeDiv       = "</div>"
	editorTemplate = "microscopy/assignment_editor"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	chromeOptions    []chrome.Option
	header           render.Region
	stepIndicator    render.StepRegion
	navigation       render.Region
	footer           render.Region
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS. The bundle
// must carry the chrome templates too unless every region is overridden.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme forwards a theme to the default header.
func WithTheme(t *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.chromeOptions = append(cfg.chromeOptions, chrome.WithTheme(t))
	}
}

// WithChromeOptions forwards options to the default chrome.
func WithChromeOptions(options ...chrome.Option) Option {
	return func(cfg *config) {
		cfg.chromeOptions = append(cfg.chromeOptions, options...)
	}
}

func WithHeader(region render.Region) Option {
	return func(cfg *config) {
		cfg.header = region
	}
}

func WithStepIndicator(region render.StepRegion) Option {
	return func(cfg *config) {
		cfg.stepIndicator = region
	}
}

func WithNavigation(region render.Region) Option {
	return func(cfg *config) {
		cfg.navigation = region
	}
}

func WithFooter(region render.Region) Option {
	return func(cfg *config) {
		cfg.footer = region
	}
}

// Page1 renders the "Microscopy Page1" assignment editor screen. It is safe for
// concurrent use; each call writes only to the writer it is given.
type Page1 struct {
	templates     rendertemplate.TemplateRenderer
	header        render.Region
	stepIndicator render.StepRegion
	navigation    render.Region
	footer        render.Region
}

var _ render.Page = (*Page1)(nil)

// New constructs the page. Regions not supplied through options fall back to
// the default chrome sharing the page's template renderer.
func New(options ...Option) (*Page1, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pages.NewEngine(cfg.templateFS)
		if err != nil {
			return nil, fmt.Errorf("microscopy: %w", err)
		}
		renderer = engine
	}

	page := &Page1{
		templates:     renderer,
		header:        cfg.header,
		stepIndicator: cfg.stepIndicator,
		navigation:    cfg.navigation,
		footer:        cfg.footer,
	}

	if page.header == nil || page.stepIndicator == nil || page.navigation == nil || page.footer == nil {
		chromeOptions := append([]chrome.Option{chrome.WithTemplateRenderer(renderer)}, cfg.chromeOptions...)
		defaults, err := chrome.New(chromeOptions...)
		if err != nil {
			return nil, fmt.Errorf("microscopy: configure chrome: %w", err)
		}
		if page.header == nil {
			page.header = defaults.Header()
		}
		if page.stepIndicator == nil {
			page.stepIndicator = defaults.StepIndicator()
		}
		if page.navigation == nil {
			page.navigation = defaults.Navigation()
		}
		if page.footer == nil {
			page.footer = defaults.Footer()
		}
	}

	return page, nil
}

func (p *Page1) Name() string {
	return Page1Name
}

func (p *Page1) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render renders the full page into a fresh buffer and returns it.
func (p *Page1) Render(ctx context.Context, data model.PageData) (string, error) {
	var sb strings.Builder
	if err := p.RenderTo(ctx, &sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderTo appends the full page to w: the view wrapper, header, step
// indicator, then the main container holding navigation and the assignment
// editor, and finally the footer. A failing region aborts the render; markup
// already written stays in w.
func (p *Page1) RenderTo(ctx context.Context, w io.Writer, data model.PageData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if data.Assignment == nil {
		return render.ErrMissingAssignment
	}

	if _, err := io.WriteString(w, viewOpen); err != nil {
		return fmt.Errorf("microscopy: write view: %w", err)
	}
	if err := p.header.RenderRegion(w, data); err != nil {
		return fmt.Errorf("microscopy: header: %w", err)
	}
	if err := p.stepIndicator.RenderStep(w, data.Step(Page1Step)); err != nil {
		return fmt.Errorf("microscopy: step indicator: %w", err)
	}
	if _, err := io.WriteString(w, containerOpen); err != nil {
		return fmt.Errorf("microscopy: write container: %w", err)
	}
	if err := p.navigation.RenderRegion(w, data); err != nil {
		return fmt.Errorf("microscopy: navigation: %w", err)
	}
	if err := p.RenderAssignmentTo(ctx, w, data); err != nil {
		return err
	}
	if _, err := io.WriteString(w, closeDiv); err != nil {
		return fmt.Errorf("microscopy: close container: %w", err)
	}
	if err := p.footer.RenderRegion(w, data); err != nil {
		return fmt.Errorf("microscopy: footer: %w", err)
	}
	if _, err := io.WriteString(w, closeDiv); err != nil {
		return fmt.Errorf("microscopy: close view: %w", err)
	}
	return nil
}

// RenderAssignment renders only the assignment editor body.
func (p *Page1) RenderAssignment(ctx context.Context, data model.PageData) (string, error) {
	var sb strings.Builder
	if err := p.RenderAssignmentTo(ctx, &sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderAssignmentTo appends the assignment editor body: title, page label and
// the save button carrying the escaped assignment id.
func (p *Page1) RenderAssignmentTo(ctx context.Context, w io.Writer, data model.PageData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if data.Assignment == nil {
		return render.ErrMissingAssignment
	}
	if p == nil || p.templates == nil {
		return fmt.Errorf("microscopy: template renderer is nil")
	}

	if _, err := p.templates.RenderTemplate(editorTemplate, map[string]any{
		"assignment": map[string]any{"id": data.Assignment.ID},
	}, w); err != nil {
		return fmt.Errorf("microscopy: assignment editor: %w", err)
	}
	return nil
}
