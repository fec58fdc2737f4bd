// Package validate collects per-field input errors.
package validate

import "strings"

type FieldError struct {
	Field   string `json:"field"   example:"mobile"`
	Message string `json:"message" example:"mobile must be exactly 10 digits"`
}

// Errors is returned as a single error when any field is invalid.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Err returns nil when nothing was added.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
