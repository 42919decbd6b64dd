// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package database

import (
	"context"
	"iter"

	"github.com/YassinCh/skilltest-buienradar/internal/destination"
	"github.com/YassinCh/skilltest-buienradar/internal/logger"
	"github.com/YassinCh/skilltest-buienradar/internal/storage"
)

const (
	loggerName = "skilltest:destination:database"
)

var _ destination.Loader[storage.Station] = &Loader[storage.Station]{}

// Loader merges entities into the store inside one transaction per Load call.
type Loader[T storage.Entity] struct {
	store *storage.Store
}

// NewLoader returns a Loader writing into store.
func NewLoader[T storage.Entity](store *storage.Store) *Loader[T] {
	return &Loader[T]{store: store}
}

// Load merges every entity of items and commits once they are all merged. An
// empty sequence still commits. On any error, upstream or from the database,
// the transaction is rolled back and nothing of the run is persisted; database
// failures are returned as *PersistenceError, upstream errors as they are.
func (l *Loader[T]) Load(ctx context.Context, items iter.Seq2[T, error]) error {
	log := logger.FromContext(ctx).WithName(loggerName)

	tx, err := l.store.Begin(ctx)
	if err != nil {
		return &PersistenceError{Err: err}
	}
	defer tx.Rollback() //nolint:errcheck

	var zero T
	table := zero.Table()
	merged := 0
	for entity, err := range items {
		if err != nil {
			log.Debug("rolling back after upstream error", "merged", merged)
			return err
		}

		if err := tx.Merge(ctx, entity); err != nil {
			return &PersistenceError{Table: table, Err: err}
		}

		merged++
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Table: table, Err: err}
	}

	log.Info("entities merged", "table", table, "count", merged)
	return nil
}
