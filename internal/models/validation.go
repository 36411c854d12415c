package models

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// FieldError describes a single rejected input field. Message is a stable key
// in the form "<field>.<rule>" so clients can localize it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned by DTO Validate methods when any field is rejected.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Message)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Err returns nil when nothing was collected so callers never see a typed nil.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v *ValidationErrors) add(field, rule string) {
	*v = append(*v, FieldError{Field: field, Message: fmt.Sprintf("%s.%s", field, rule)})
}

func (v *ValidationErrors) checkID(field, value string) {
	if !IsValidID(value) {
		v.add(field, "invalidFormat")
	}
}

func (v *ValidationErrors) checkLength(field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	if n < min {
		v.add(field, "minLength")
	}
	if n > max {
		v.add(field, "maxLength")
	}
}

func (v *ValidationErrors) checkRange(field string, value, min, max int) {
	if value < min {
		v.add(field, "min")
	}
	if value > max {
		v.add(field, "max")
	}
}

// IsValidID reports whether s is an identifier in the store's native format (UUID).
func IsValidID(s string) bool {
	if s == "" {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// NewID generates a fresh entity identifier.
func NewID() string {
	return uuid.New().String()
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
