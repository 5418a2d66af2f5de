package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrValidation classifies every input or data rule violation.
	ErrValidation = errors.New("validation failed")
	// ErrAlreadyCompleted is returned when completing a task that is already complete.
	ErrAlreadyCompleted = errors.New("task is already complete")
)

// ValidationError describes a single rule violation on a task field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// fieldNames maps struct fields to the keys users see in the data file and CLI.
var fieldNames = map[string]string{
	"ID":          "id",
	"Title":       "title",
	"Description": "description",
	"Priority":    "priority",
	"Status":      "status",
	"Category":    "category",
	"Tags":        "tags",
	"DueDate":     "due_date",
	"CreatedAt":   "created_at",
	"CompletedAt": "completed_at",
}

// ValidateStruct performs validation on any struct that has validation tags.
// Only the first violation is reported; it is returned as a *ValidationError.
func ValidateStruct(s any) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Reason: err.Error()}
	}
	e := verrs[0]
	return &ValidationError{Field: fieldName(e), Reason: describeRule(e)}
}

func fieldName(e validator.FieldError) string {
	name := e.StructField()
	// dive errors look like "Tags[0]"
	base, index, found := strings.Cut(name, "[")
	if mapped, ok := fieldNames[base]; ok {
		if found {
			return mapped + "[" + index
		}
		return mapped
	}
	return strings.ToLower(name)
}

func describeRule(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "must not be empty"
	case "max":
		return fmt.Sprintf("must be at most %s characters", e.Param())
	case "oneof":
		return fmt.Sprintf("invalid value %q (want one of: %s)", e.Value(), e.Param())
	case "uuid4":
		return fmt.Sprintf("invalid id %q", e.Value())
	case "excludesall":
		return fmt.Sprintf("must not contain %q", e.Param())
	case "unique":
		return "must not contain duplicates"
	default:
		return fmt.Sprintf("failed rule '%s' (value: '%v')", e.Tag(), e.Value())
	}
}
