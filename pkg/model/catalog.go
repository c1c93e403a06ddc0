package model

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrAssignmentNotFound reports a lookup for an identifier the catalog does not
// contain.
var ErrAssignmentNotFound = errors.New("model: assignment not found")

// Catalog is the on-disk description of the assignments an instructor edits
// plus the editor progress shared by every page.
type Catalog struct {
	LastStep    int            `json:"last_step" yaml:"last_step"`
	PrevStep    int            `json:"prev_step" yaml:"prev_step"`
	Assignments AssignmentList `json:"assignments" yaml:"assignments"`
}

// LoadCatalog reads a YAML (or JSON) catalog from path.
func LoadCatalog(path string) (Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Catalog{}, errors.New("model: catalog path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("model: read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates catalog bytes. JSON payloads are accepted
// because they are valid YAML.
func ParseCatalog(data []byte) (Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("model: decode catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return Catalog{}, err
	}
	return catalog, nil
}

// Validate checks the structural rules renderers rely on.
func (c Catalog) Validate() error {
	if c.LastStep < 0 || c.PrevStep < 0 {
		return fmt.Errorf("model: steps must not be negative (last_step=%d, prev_step=%d)", c.LastStep, c.PrevStep)
	}
	if len(c.Assignments.List) == 0 {
		return errors.New("model: catalog has no assignments")
	}

	seen := make(map[string]struct{}, len(c.Assignments.List))
	for i, assignment := range c.Assignments.List {
		id := strings.TrimSpace(assignment.ID)
		if id == "" {
			return fmt.Errorf("model: assignment %d has no id", i)
		}
		if _, exists := seen[id]; exists {
			return fmt.Errorf("model: duplicate assignment id %q", id)
		}
		seen[id] = struct{}{}
	}

	if selected := strings.TrimSpace(c.Assignments.Selected); selected != "" {
		if _, ok := seen[selected]; !ok {
			return fmt.Errorf("model: selected assignment %q: %w", selected, ErrAssignmentNotFound)
		}
	}
	return nil
}

// Find returns the assignment with the given identifier. A bare numeric key
// such as "2" also matches the compiled "a_2" identifier.
func (c Catalog) Find(id string) (Assignment, error) {
	assignment, ok := c.Assignments.Find(id)
	if !ok {
		if n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64); err == nil {
			assignment, ok = c.Assignments.Find(AssignmentID(n))
		}
	}
	if !ok {
		return Assignment{}, fmt.Errorf("model: assignment %q: %w", id, ErrAssignmentNotFound)
	}
	return assignment, nil
}

// PageData builds the render context for the assignment with the given
// identifier, marking it as the selected one.
func (c Catalog) PageData(id string) (PageData, error) {
	assignment, err := c.Find(id)
	if err != nil {
		return PageData{}, err
	}

	list := AssignmentList{
		Selected: assignment.ID,
		List:     append([]Assignment(nil), c.Assignments.List...),
	}
	return PageData{
		LastStep:    c.LastStep,
		PrevStep:    c.PrevStep,
		Assignment:  &assignment,
		Assignments: list,
	}, nil
}
