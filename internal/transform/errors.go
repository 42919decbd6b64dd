// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package transform

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedDocument is matched by every error raised while parsing or walking a document.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrKeyNotFound is matched when a segment of the configured path is missing.
	ErrKeyNotFound = errors.New("key not found")
)

// MalformedDocumentError reports a document that cannot be parsed or does not have the expected shape.
type MalformedDocumentError struct {
	// Path is the portion of the path walked before the failure.
	Path   []string
	Reason string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	message := ErrMalformedDocument.Error()
	if len(e.Path) > 0 {
		message += " at " + formatPath(e.Path)
	}

	message += ": " + e.Reason
	if e.Err != nil {
		message += ": " + e.Err.Error()
	}

	return message
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

// KeyNotFoundError reports a path segment absent from the document.
type KeyNotFoundError struct {
	Key string
	// Path is the path up to and including Key.
	Path []string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s %q at %s", ErrMalformedDocument, ErrKeyNotFound, e.Key, formatPath(e.Path))
}

func (e *KeyNotFoundError) Is(target error) bool {
	return target == ErrMalformedDocument || target == ErrKeyNotFound
}

func formatPath(path []string) string {
	return "/" + strings.Join(path, "/")
}
