// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package mapper

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation error")
	// ErrInvalidSchema reports a record type whose tags cannot be turned into a schema.
	ErrInvalidSchema = errors.New("invalid schema")
)

var _ error = &ValidationError{}

// FieldError describes why a single field could not be read.
type FieldError struct {
	Field  string
	Alias  string
	Reason string
}

func (e FieldError) String() string {
	if e.Alias == "" {
		return e.Reason
	}

	return e.Alias + ": " + e.Reason
}

// ValidationError collects every field problem found while decoding one input.
type ValidationError struct {
	Type   string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	problems := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		problems = append(problems, field.String())
	}

	return fmt.Sprintf("%s for %s: %s", ErrValidation, e.Type, strings.Join(problems, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
