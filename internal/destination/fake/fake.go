// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"context"
	"iter"
	"testing"

	"github.com/YassinCh/skilltest-buienradar/internal/destination"
)

var _ destination.Loader[any] = &Loader[any]{}

// Loader keeps in memory everything it receives. Items of a run are
// moved to Loaded only when the whole sequence is consumed without errors.
type Loader[T any] struct {
	tb testing.TB

	// Loaded holds the items of every committed run.
	Loaded []T
	// Commits counts the runs that completed successfully.
	Commits int
	// Rollbacks counts the runs aborted by an error.
	Rollbacks int
	// Err, when set, is returned by Load after consuming the sequence.
	Err error
}

// NewLoader returns an empty Loader.
func NewLoader[T any](tb testing.TB) *Loader[T] {
	tb.Helper()
	return &Loader[T]{tb: tb}
}

// Load implements destination.Loader.
func (l *Loader[T]) Load(_ context.Context, items iter.Seq2[T, error]) error {
	l.tb.Helper()

	pending := make([]T, 0)
	for item, err := range items {
		if err != nil {
			l.Rollbacks++
			return err
		}
		pending = append(pending, item)
	}

	if l.Err != nil {
		l.Rollbacks++
		return l.Err
	}

	l.Loaded = append(l.Loaded, pending...)
	l.Commits++
	return nil
}
