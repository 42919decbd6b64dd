// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

import (
	"context"
	"iter"
	"slices"

	"github.com/YassinCh/skilltest-buienradar/internal/destination"
	"github.com/YassinCh/skilltest-buienradar/internal/logger"
	"github.com/YassinCh/skilltest-buienradar/internal/source"
)

const (
	loggerName = "skilltest:pipeline"
)

// Transformer converts a sequence of In into a sequence of Out.
type Transformer[In, Out any] interface {
	// Transform must forward the errors of in and stop after the first error.
	Transform(ctx context.Context, in iter.Seq2[In, error]) iter.Seq2[Out, error]
}

// Pipeline is an immutable chain made of a source and an ordered list of
// transformers whose last output type is T. Pipelines are values: extending
// one with Add never changes it, so a common prefix can be branched into
// independent pipelines.
type Pipeline[T any] struct {
	source       source.Source
	transformers []any
	stream       func(ctx context.Context) iter.Seq2[T, error]
}

// New returns a pipeline without transformers reading from src.
func New(src source.Source) Pipeline[source.Item] {
	p := Pipeline[source.Item]{source: src}
	if src != nil {
		p.stream = src.Fetch
	}

	return p
}

// Add returns a new pipeline running t after every transformer of p.
func Add[In, Out any](p Pipeline[In], t Transformer[In, Out]) Pipeline[Out] {
	upstream := p.stream
	return Pipeline[Out]{
		source:       p.source,
		transformers: append(slices.Clip(p.transformers), t),
		stream: func(ctx context.Context) iter.Seq2[Out, error] {
			if upstream == nil {
				return func(yield func(Out, error) bool) {
					var zero Out
					yield(zero, ErrNoSource)
				}
			}

			return t.Transform(ctx, upstream(ctx))
		},
	}
}

// Source returns the source the pipeline reads from.
func (p Pipeline[T]) Source() source.Source {
	return p.source
}

// Transformers returns a copy of the transformers of p, in execution order.
func (p Pipeline[T]) Transformers() []any {
	return slices.Clone(p.transformers)
}

// Stream fetches from the source and returns the lazy output of the last
// transformer. Every call fetches again.
func (p Pipeline[T]) Stream(ctx context.Context) iter.Seq2[T, error] {
	if p.stream == nil {
		return func(yield func(T, error) bool) {
			var zero T
			yield(zero, ErrNoSource)
		}
	}

	return p.stream(ctx)
}

// Run fetches from the source, pipes the items through every transformer and
// hands the result to loader. Nothing is cached between runs, so every run
// performs a new fetch.
func (p Pipeline[T]) Run(ctx context.Context, loader destination.Loader[T]) error {
	log := logger.FromContext(ctx).WithName(loggerName)

	log.Debug("starting pipeline run", "transformers", len(p.transformers))
	if err := loader.Load(ctx, p.Stream(ctx)); err != nil {
		log.Debug("pipeline run failed", "error", err)
		return err
	}

	log.Debug("pipeline run completed")
	return nil
}
