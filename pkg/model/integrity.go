package model

import (
	"errors"
	"strings"
)

// ErrIntegrity is matched by every IntegrityError.
var ErrIntegrity = errors.New("statistics integrity violated")

// IntegrityError reports statistics that are missing or unusable.
type IntegrityError struct {
	// Path is the namespace of the affected database or collection
	Path string
	// Field is the statistics field, empty if the whole record is affected
	Field  string
	Reason string
}

func (e *IntegrityError) Error() string {
	var b strings.Builder
	b.WriteString(ErrIntegrity.Error())
	if e.Path != "" {
		b.WriteString(": ")
		b.WriteString(e.Path)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

func (e *IntegrityError) Unwrap() error {
	return ErrIntegrity
}

// MissingField returns the error for a required field that is absent.
func MissingField(path, field string) error {
	return &IntegrityError{Path: path, Field: field, Reason: "field does not exist"}
}
