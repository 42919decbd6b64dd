// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package database

import (
	"errors"
)

// ErrPersistence is matched by every *PersistenceError.
var ErrPersistence = errors.New("persistence error")

// PersistenceError reports a failure while writing to the database. The
// transaction it happened in has been rolled back.
type PersistenceError struct {
	// Table is empty when the failure is not tied to a single entity.
	Table string
	Err   error
}

func (e *PersistenceError) Error() string {
	if e.Table == "" {
		return ErrPersistence.Error() + ": " + e.Err.Error()
	}

	return ErrPersistence.Error() + " on " + e.Table + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
