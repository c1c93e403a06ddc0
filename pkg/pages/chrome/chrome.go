package chrome

import (
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/starcellbio/instructor-views/pkg/model"
	"github.com/starcellbio/instructor-views/pkg/pages"
	"github.com/starcellbio/instructor-views/pkg/render"
	rendertemplate "github.com/starcellbio/instructor-views/pkg/render/template"
)

const (
	DefaultTitle      = "StarCellBio"
	DefaultFooterText = "StarCellBio Instructor"
)

// DefaultStepLabels names the assignment editor steps in flow order. Step
// numbers are 1-based positions in this slice.
var DefaultStepLabels = []string{
	"Course Setup",
	"Experiment Setup",
	"Microscopy Page 1",
	"Microscopy Page 2",
	"Review",
}

const (
	headerTemplate     = "chrome/header"
	stepTemplate       = "chrome/assignment_step"
	navigationTemplate = "chrome/navigation"
	footerTemplate     = "chrome/footer"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	title            string
	footerText       string
	stepLabels       []string
	assignmentLink   func(model.Assignment) string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
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

// WithTheme exposes theme name, variant and CSS variables on the header.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithTitle overrides the application title shown in the header.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			cfg.title = trimmed
		}
	}
}

// WithFooterText overrides the footer text.
func WithFooterText(text string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			cfg.footerText = trimmed
		}
	}
}

// WithStepLabels replaces the editor step names.
func WithStepLabels(labels ...string) Option {
	return func(cfg *config) {
		if len(labels) == 0 {
			return
		}
		cfg.stepLabels = append([]string(nil), labels...)
	}
}

// WithAssignmentLink controls the href each navigation entry points to.
func WithAssignmentLink(fn func(model.Assignment) string) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.assignmentLink = fn
		}
	}
}

// Chrome renders the regions framing every assignment editor page: header,
// step indicator, assignment navigation and footer.
type Chrome struct {
	templates      rendertemplate.TemplateRenderer
	theme          themeContext
	title          string
	footerText     string
	stepLabels     []string
	assignmentLink func(model.Assignment) string
}

// New constructs the chrome applying any provided options.
func New(options ...Option) (*Chrome, error) {
	cfg := config{
		title:          DefaultTitle,
		footerText:     DefaultFooterText,
		stepLabels:     DefaultStepLabels,
		assignmentLink: QueryLink,
	}
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
			return nil, fmt.Errorf("chrome: %w", err)
		}
		renderer = engine
	}

	return &Chrome{
		templates:      renderer,
		theme:          buildThemeContext(cfg.theme),
		title:          cfg.title,
		footerText:     cfg.footerText,
		stepLabels:     cfg.stepLabels,
		assignmentLink: cfg.assignmentLink,
	}, nil
}

// QueryLink is the default navigation href: the current URL with the
// assignment query parameter swapped.
func QueryLink(assignment model.Assignment) string {
	return "?assignment=" + url.QueryEscape(assignment.ID)
}

// Header returns the header region.
func (c *Chrome) Header() render.Region {
	return render.RegionFunc(c.renderHeader)
}

// StepIndicator returns the step indicator region.
func (c *Chrome) StepIndicator() render.StepRegion {
	return render.StepRegionFunc(c.renderStep)
}

// Navigation returns the assignment navigation region.
func (c *Chrome) Navigation() render.Region {
	return render.RegionFunc(c.renderNavigation)
}

// Footer returns the footer region.
func (c *Chrome) Footer() render.Region {
	return render.RegionFunc(c.renderFooter)
}

func (c *Chrome) renderHeader(w io.Writer, data model.PageData) error {
	return c.execute(w, headerTemplate, map[string]any{
		"title":      c.title,
		"theme":      c.theme,
		"assignment": data.Assignment,
	})
}

type stepItem struct {
	Number  int    `json:"number"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
	Visited bool   `json:"visited"`
}

func (c *Chrome) renderStep(w io.Writer, step model.StepData) error {
	items := make([]stepItem, 0, len(c.stepLabels))
	for i, label := range c.stepLabels {
		number := i + 1
		items = append(items, stepItem{
			Number:  number,
			Label:   label,
			Current: number == step.Step,
			Visited: number <= step.LastStep,
		})
	}

	ctx := map[string]any{
		"step":  step,
		"items": items,
	}
	if selected, ok := step.Assignments.SelectedAssignment(); ok {
		ctx["selected"] = selected
	}
	return c.execute(w, stepTemplate, ctx)
}

type navigationItem struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Href    string `json:"href"`
	Current bool   `json:"current"`
}

func (c *Chrome) renderNavigation(w io.Writer, data model.PageData) error {
	current := data.Assignments.Selected
	if data.Assignment != nil {
		current = data.Assignment.ID
	}

	items := make([]navigationItem, 0, len(data.Assignments.List))
	for _, assignment := range data.Assignments.List {
		label := strings.TrimSpace(assignment.Name)
		if label == "" {
			label = assignment.ID
		}
		items = append(items, navigationItem{
			ID:      assignment.ID,
			Label:   label,
			Href:    c.assignmentLink(assignment),
			Current: assignment.ID == current,
		})
	}
	return c.execute(w, navigationTemplate, map[string]any{"items": items})
}

func (c *Chrome) renderFooter(w io.Writer, _ model.PageData) error {
	return c.execute(w, footerTemplate, map[string]any{"text": c.footerText})
}

func (c *Chrome) execute(w io.Writer, name string, data map[string]any) error {
	if c == nil || c.templates == nil {
		return fmt.Errorf("chrome: template renderer is nil")
	}
	if _, err := c.templates.RenderTemplate(name, data, w); err != nil {
		return fmt.Errorf("chrome: render %s: %w", name, err)
	}
	return nil
}

type themeContext struct {
	Name    string `json:"name,omitempty"`
	Variant string `json:"variant,omitempty"`
	Style   string `json:"style,omitempty"`
}

func buildThemeContext(cfg *theme.RendererConfig) themeContext {
	if cfg == nil {
		return themeContext{}
	}
	return themeContext{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		Style:   cssVarsStyle(cfg.CSSVars),
	}
}

// cssVarsStyle renders CSS variables as an inline style sorted by property
// name. Keys without the "--" prefix gain it; when "x" and "--x" are both
// set, the explicitly prefixed key wins.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}

	rawKeys := make([]string, 0, len(vars))
	for key := range vars {
		rawKeys = append(rawKeys, key)
	}
	sort.Strings(rawKeys)

	values := make(map[string]string, len(vars))
	explicit := make(map[string]bool, len(vars))
	for _, key := range rawKeys {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		prefixed := strings.HasPrefix(name, "--")
		if !prefixed {
			name = "--" + name
		}
		if _, seen := values[name]; seen && (explicit[name] || !prefixed) {
			continue
		}
		values[name] = strings.TrimSpace(vars[key])
		explicit[name] = prefixed
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+values[name])
	}
	return strings.Join(parts, "; ")
}
