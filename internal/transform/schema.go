// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package transform

import (
	"context"
	"iter"

	"github.com/YassinCh/skilltest-buienradar/internal/mapper"
	"github.com/YassinCh/skilltest-buienradar/internal/source"
)

// Schema validates every item against the schema of T and yields the typed records.
type Schema[T any] struct{}

// NewSchema returns a Schema stage for T.
func NewSchema[T any]() *Schema[T] {
	return &Schema[T]{}
}

// Transform implements pipeline.Transformer. The first item failing validation
// ends the sequence with a *mapper.ValidationError.
func (s *Schema[T]) Transform(_ context.Context, in iter.Seq2[source.Item, error]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		for item, err := range in {
			if err != nil {
				yield(zero, err)
				return
			}

			record, err := mapper.Decode[T](item.Data)
			if err != nil {
				yield(zero, err)
				return
			}

			if !yield(record, nil) {
				return
			}
		}
	}
}
