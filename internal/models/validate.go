package models

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared struct validator.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks field rules and the referential invariant: item and diner
// IDs are unique and every assignment references a diner on this bill.
func (b Bill) Validate() error {
	if err := Validator().Struct(b); err != nil {
		return translate(err)
	}

	diners := make(map[string]struct{}, len(b.Diners))
	for _, d := range b.Diners {
		if _, dup := diners[d.ID]; dup {
			return NewValidationError("diners", fmt.Sprintf("duplicate diner id %q", d.ID))
		}
		diners[d.ID] = struct{}{}
	}

	items := make(map[string]struct{}, len(b.Items))
	for _, item := range b.Items {
		if _, dup := items[item.ID]; dup {
			return NewValidationError("items", fmt.Sprintf("duplicate item id %q", item.ID))
		}
		items[item.ID] = struct{}{}

		seen := make(map[string]struct{}, len(item.AssignedTo))
		for _, id := range item.AssignedTo {
			if _, ok := diners[id]; !ok {
				return NewValidationError("assignedTo",
					fmt.Sprintf("item %q references unknown diner %q", item.ID, id))
			}
			if _, dup := seen[id]; dup {
				return NewValidationError("assignedTo",
					fmt.Sprintf("item %q lists diner %q twice", item.ID, id))
			}
			seen[id] = struct{}{}
		}
		for id := range item.CustomAmounts {
			if !item.AssignedTo.Contains(id) {
				return NewValidationError("customAmounts",
					fmt.Sprintf("item %q has an amount for unassigned diner %q", item.ID, id))
			}
		}
	}
	return nil
}

// translate converts validator output into a ValidationError naming the
// first failing field.
func translate(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return NewValidationError("", err.Error())
	}
	fe := fieldErrs[0]
	field := strings.TrimPrefix(fe.Namespace(), "Bill.")
	reason := fe.Tag()
	if fe.Param() != "" {
		reason = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
	}
	return NewValidationError(field, fmt.Sprintf("failed rule %s (got %v)", reason, fe.Value()))
}
