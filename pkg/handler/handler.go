package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/starcellbio/instructor-views/pkg/model"
	"github.com/starcellbio/instructor-views/pkg/render"
)

// DefaultRoutePath is the route pattern, relative to the mount base path, the
// handler serves.
const DefaultRoutePath = "/pages/{page}/{assignment}"

// Catalog resolves the render context for an assignment. model.Catalog
// satisfies it.
type Catalog interface {
	PageData(assignmentID string) (model.PageData, error)
}

type Option func(*Handler)

// WithLogger sets the request logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Handler serves registered pages for catalog assignments over net/http.
type Handler struct {
	pages   *render.Registry
	catalog Catalog
	logger  *zap.Logger
}

var _ http.Handler = (*Handler)(nil)

// New builds a handler dispatching on the page registry.
func New(pages *render.Registry, catalog Catalog, options ...Option) *Handler {
	h := &Handler{
		pages:   pages,
		catalog: catalog,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	pageName := r.PathValue("page")
	assignmentID := r.PathValue("assignment")

	status := h.serve(w, r, pageName, assignmentID)

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("page", pageName),
		zap.String("assignment", assignmentID),
		zap.Int("status", status),
		zap.Duration("duration", time.Since(start)),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("render page", fields...)
		return
	}
	h.logger.Info("render page", fields...)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, pageName, assignmentID string) int {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		return writeStatus(w, http.StatusMethodNotAllowed)
	}
	if h.pages == nil || h.catalog == nil {
		return writeStatus(w, http.StatusInternalServerError)
	}

	page, err := h.pages.Get(pageName)
	if err != nil {
		return writeStatus(w, http.StatusNotFound)
	}

	data, err := h.catalog.PageData(assignmentID)
	if err != nil {
		if errors.Is(err, model.ErrAssignmentNotFound) {
			return writeStatus(w, http.StatusNotFound)
		}
		h.logger.Error("resolve assignment", zap.String("assignment", assignmentID), zap.Error(err))
		return writeStatus(w, http.StatusInternalServerError)
	}

	var buf bytes.Buffer
	if err := page.RenderTo(r.Context(), &buf, data); err != nil {
		h.logger.Error("render failed",
			zap.String("page", pageName),
			zap.String("assignment", assignmentID),
			zap.Error(err),
		)
		return writeStatus(w, http.StatusInternalServerError)
	}

	w.Header().Set("Content-Type", page.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return http.StatusOK
	}
	_, _ = w.Write(buf.Bytes())
	return http.StatusOK
}

func writeStatus(w http.ResponseWriter, code int) int {
	http.Error(w, http.StatusText(code), code)
	return code
}

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the full route pattern under basePath.
func MountPath(basePath string) string {
	base := "/" + strings.Trim(strings.TrimSpace(basePath), "/")
	if base == "/" {
		return DefaultRoutePath
	}
	return base + DefaultRoutePath
}

// Routes registers h on mux under basePath.
func Routes(mux Mux, basePath string, h http.Handler) {
	if mux == nil || h == nil {
		return
	}
	mux.Handle(MountPath(basePath), h)
}

// AssignmentLink builds navigation hrefs pointing at pageName for each
// assignment under basePath.
func AssignmentLink(basePath, pageName string) func(model.Assignment) string {
	prefix := strings.TrimSuffix(MountPath(basePath), DefaultRoutePath)
	return func(a model.Assignment) string {
		return prefix + "/pages/" + url.PathEscape(pageName) + "/" + url.PathEscape(a.ID)
	}
}
