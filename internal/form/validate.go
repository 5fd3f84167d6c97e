package form

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

const (
	MaxLength     = 50
	minLengthEdit = 3
	minLengthNew  = 1
)

var descriptionPattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// ValidationError is a field rule failure. It is shown next to the input
// and never reaches the API.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a description against the rules for mode. The value is
// required only when editing; an empty optional value skips the other rules.
func Validate(description string, mode Mode) *ValidationError {
	if description == "" {
		if mode.IsEdit() {
			return &ValidationError{Field: "description", Message: "The task is required"}
		}
		return nil
	}

	minLength := minLengthNew
	if mode.IsEdit() {
		minLength = minLengthEdit
	}

	n := utf8.RuneCountInString(description)
	switch {
	case n < minLength:
		return &ValidationError{Field: "description", Message: fmt.Sprintf("The task must have at least %d characters", minLength)}
	case n > MaxLength:
		return &ValidationError{Field: "description", Message: fmt.Sprintf("The task must have at most %d characters", MaxLength)}
	case !descriptionPattern.MatchString(description):
		return &ValidationError{Field: "description", Message: "Invalid task"}
	}
	return nil
}
