package domain

import (
	"regexp"
	"strings"
)

// FieldError names a single offending field and the constraint it broke.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects every violation found in one pass over a record.
type FieldErrors []FieldError

// Add appends a violation and returns the extended list.
func (e FieldErrors) Add(field, message string) FieldErrors {
	return append(e, FieldError{Field: field, Message: message})
}

// Messages returns the human-readable message of each violation.
func (e FieldErrors) Messages() []string {
	out := make([]string, len(e))
	for i, fe := range e {
		out[i] = fe.Message
	}
	return out
}

func (e FieldErrors) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), "; ")
}

var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsValidID reports whether id is a syntactically valid store identifier
// (24 hex digits encoding 12 bytes). Malformed ids are rejected before
// any store lookup.
func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}
