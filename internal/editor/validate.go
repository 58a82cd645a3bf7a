package editor

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/dinesplit/internal/models"
)

type itemInput struct {
	Name  string  `validate:"required"`
	Price float64 `validate:"gt=0"`
}

type dinerInput struct {
	Name string `validate:"required"`
}

// MaxSplitParts caps how many portions SplitItemEvenly produces.
const MaxSplitParts = 100

type splitInput struct {
	Parts int `validate:"min=2,max=100"`
}

// validateInput runs the shared validator over an input struct and reports
// the first failing field as a ValidationError.
func validateInput(input any) error {
	err := models.Validator().Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return models.NewValidationError("", err.Error())
	}
	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return models.NewValidationError(field, "must not be empty")
	case "gt":
		return models.NewValidationError(field, fmt.Sprintf("must be greater than %s", fe.Param()))
	case "min":
		return models.NewValidationError(field, fmt.Sprintf("must be at least %s, got %v", fe.Param(), fe.Value()))
	case "max":
		return models.NewValidationError(field, fmt.Sprintf("must be at most %s, got %v", fe.Param(), fe.Value()))
	default:
		return models.NewValidationError(field, fmt.Sprintf("failed rule %s", fe.Tag()))
	}
}

// requireFinite rejects NaN and infinities, which the validator's numeric
// rules let through.
func requireFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return models.NewValidationError(field, "must be a finite number")
	}
	return nil
}
