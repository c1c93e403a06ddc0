package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/starcellbio/instructor-views/pkg/model"
)

// SelectAssignment asks the user to pick one of the catalog assignments. The
// catalog's selected assignment is the default choice.
func SelectAssignment(ctx context.Context, driver Driver, list model.AssignmentList) (model.Assignment, error) {
	if driver == nil {
		return model.Assignment{}, errors.New("prompt: driver is required")
	}
	if len(list.List) == 0 {
		return model.Assignment{}, errors.New("prompt: no assignments to choose from")
	}

	options := make([]string, 0, len(list.List))
	defaultIndex := 0
	for i, assignment := range list.List {
		options = append(options, optionLabel(assignment))
		if assignment.ID == list.Selected {
			defaultIndex = i
		}
	}

	idx, err := driver.Select(ctx, SelectConfig{
		Message:      "Assignment to render",
		Options:      options,
		DefaultIndex: defaultIndex,
		PageSize:     10,
	})
	if err != nil {
		return model.Assignment{}, err
	}
	if idx < 0 || idx >= len(list.List) {
		return model.Assignment{}, fmt.Errorf("prompt: selection %d out of range", idx)
	}
	return list.List[idx], nil
}

func optionLabel(assignment model.Assignment) string {
	name := strings.TrimSpace(assignment.Name)
	if name == "" {
		return assignment.ID
	}
	if course := strings.TrimSpace(assignment.Course); course != "" {
		return fmt.Sprintf("%s (%s, %s)", name, course, assignment.ID)
	}
	return fmt.Sprintf("%s (%s)", name, assignment.ID)
}
