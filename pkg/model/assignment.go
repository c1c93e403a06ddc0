package model

import (
	"strconv"
	"strings"
)

// Assignment is the instructor-facing view of a compiled assignment. Field
// names follow the JSON payload produced by the instructor compiler so the
// same catalog file can feed both the preview app and these views.
type Assignment struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Course      string `json:"course,omitempty" yaml:"course,omitempty"`
	CourseName  string `json:"course_name,omitempty" yaml:"course_name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// AssignmentList wraps the assignments known to the editor together with the
// identifier of the one currently selected.
type AssignmentList struct {
	Selected string       `json:"selected,omitempty" yaml:"selected,omitempty"`
	List     []Assignment `json:"list" yaml:"list"`
}

// Find returns the assignment with the given identifier.
func (l AssignmentList) Find(id string) (Assignment, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Assignment{}, false
	}
	for _, assignment := range l.List {
		if assignment.ID == id {
			return assignment, true
		}
	}
	return Assignment{}, false
}

// SelectedAssignment resolves Selected against List.
func (l AssignmentList) SelectedAssignment() (Assignment, bool) {
	return l.Find(l.Selected)
}

// PageData is the render context for an assignment editor page. It is built
// by the caller and treated as read-only by every renderer.
type PageData struct {
	LastStep    int            `json:"last_step" yaml:"last_step"`
	PrevStep    int            `json:"prev_step" yaml:"prev_step"`
	Assignment  *Assignment    `json:"assignment,omitempty" yaml:"assignment,omitempty"`
	Assignments AssignmentList `json:"assignments" yaml:"assignments"`
}

// StepData feeds the step indicator. Step is the position of the page being
// rendered inside the editor flow.
type StepData struct {
	Step        int            `json:"step"`
	LastStep    int            `json:"last_step"`
	PrevStep    int            `json:"prev_step"`
	Assignments AssignmentList `json:"assignments"`
}

// Step derives the step indicator input for the page at position step.
func (p PageData) Step(step int) StepData {
	return StepData{
		Step:        step,
		LastStep:    p.LastStep,
		PrevStep:    p.PrevStep,
		Assignments: p.Assignments,
	}
}

// AssignmentID formats a numeric assignment key the way the instructor
// compiler does ("a_<n>").
func AssignmentID(n int64) string {
	return "a_" + strconv.FormatInt(n, 10)
}
