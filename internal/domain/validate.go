package domain

import "strings"

// FieldError is an inline validation failure for a user-entered field,
// surfaced before any engine operation runs.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

const maxItemNameLen = 200

// ValidateItemFields checks user-entered item detail fields. A newly created
// item may transiently have an empty name; validation applies when the user
// submits the detail form.
func ValidateItemFields(name string, replacementValue float64) []FieldError {
	var errs []FieldError
	if strings.TrimSpace(name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if len(name) > maxItemNameLen {
		errs = append(errs, FieldError{Field: "name", Message: "name too long"})
	}
	if replacementValue < 0 {
		errs = append(errs, FieldError{Field: "replacement_value", Message: "replacement value cannot be negative"})
	}
	return errs
}
