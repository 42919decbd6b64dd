// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package fake

import (
	"context"
	"iter"
	"sync/atomic"

	"github.com/YassinCh/skilltest-buienradar/internal/source"
)

var _ source.Source = &Source{}

// Source replays the same items on every fetch and counts how many times it
// has been iterated.
type Source struct {
	items []source.Item
	err   error

	fetches atomic.Int32
}

// NewSource returns a Source yielding items.
func NewSource(items ...source.Item) *Source {
	return &Source{items: items}
}

// NewLinesSource returns a Source yielding one line item per element of lines.
func NewLinesSource(lines ...string) *Source {
	items := make([]source.Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, source.NewLine(line))
	}

	return NewSource(items...)
}

// NewFailingSource returns a Source that yields items and then err.
func NewFailingSource(err error, items ...source.Item) *Source {
	return &Source{items: items, err: err}
}

// Fetch implements source.Source.
func (s *Source) Fetch(ctx context.Context) iter.Seq2[source.Item, error] {
	return func(yield func(source.Item, error) bool) {
		s.fetches.Add(1)
		for _, item := range s.items {
			if err := ctx.Err(); err != nil {
				yield(source.Item{}, err)
				return
			}

			if !yield(item, nil) {
				return
			}
		}

		if s.err != nil {
			yield(source.Item{}, s.err)
		}
	}
}

// Fetches returns how many times the source has been iterated.
func (s *Source) Fetches() int {
	return int(s.fetches.Load())
}
