package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry stores pages by name so transports can dispatch on a route
// segment. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	pages map[string]Page
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		pages: make(map[string]Page),
	}
}

// Register adds a page by its Name(). Duplicate names return an error.
func (r *Registry) Register(page Page) error {
	if page == nil {
		return fmt.Errorf("render: page is required")
	}
	name := strings.TrimSpace(page.Name())
	if name == "" {
		return fmt.Errorf("render: page name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pages[name]; exists {
		return fmt.Errorf("render: page %q already registered", name)
	}

	r.pages[name] = page
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(page Page) {
	if err := r.Register(page); err != nil {
		panic(err)
	}
}

// Get retrieves a page by name.
func (r *Registry) Get(name string) (Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	page, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("render: page %q not found", name)
	}
	return page, nil
}

// List returns a sorted list of page names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.pages))
	for name := range r.pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a page is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.pages[name]
	return ok
}
