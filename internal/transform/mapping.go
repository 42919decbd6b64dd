// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package transform

import (
	"context"
	"iter"
)

// Map converts every record with a pure function, preserving order.
type Map[In, Out any] struct {
	fn func(In) Out
}

// NewMap returns a Map stage applying fn.
func NewMap[In, Out any](fn func(In) Out) *Map[In, Out] {
	return &Map[In, Out]{fn: fn}
}

// Transform implements pipeline.Transformer.
func (m *Map[In, Out]) Transform(_ context.Context, in iter.Seq2[In, error]) iter.Seq2[Out, error] {
	return func(yield func(Out, error) bool) {
		for record, err := range in {
			if err != nil {
				var zero Out
				yield(zero, err)
				return
			}

			if !yield(m.fn(record), nil) {
				return
			}
		}
	}
}
