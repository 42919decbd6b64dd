// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"context"
	"iter"
)

// Loader persists the final records of a pipeline run.
type Loader[T any] interface {
	// Load consumes items until exhaustion or the first error. An error yielded
	// by items must be returned and nothing may be persisted for that run.
	Load(ctx context.Context, items iter.Seq2[T, error]) error
}
