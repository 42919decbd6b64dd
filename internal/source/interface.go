// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package source

import (
	"context"
	"iter"
)

// Source produces the raw items of a single extraction.
type Source interface {
	// Fetch returns a lazy, single-pass sequence of items. Every iteration of the
	// returned sequence performs exactly one call to the external system; the
	// first error ends the sequence.
	Fetch(ctx context.Context) iter.Seq2[Item, error]
}
