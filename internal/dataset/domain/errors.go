package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotLoaded = errors.New("dataset_not_loaded")
)

// MissingFieldError reports a required column absent from a dataset file.
type MissingFieldError struct {
	Table string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required column %q", e.Table, e.Field)
}

// MalformedInputError reports a value that failed to parse where the
// schema demands a valid one. Resolution dates are exempt: those are
// coerced to null instead.
type MalformedInputError struct {
	Table string
	Field string
	Line  int
	Value string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s line %d: malformed %s value %q", e.Table, e.Line, e.Field, e.Value)
}
