// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package buienradar

import (
	"context"
	"fmt"

	"github.com/YassinCh/skilltest-buienradar/internal/destination"
	"github.com/YassinCh/skilltest-buienradar/internal/logger"
	"github.com/YassinCh/skilltest-buienradar/internal/pipeline"
	"github.com/YassinCh/skilltest-buienradar/internal/source"
	"github.com/YassinCh/skilltest-buienradar/internal/storage"
	"github.com/YassinCh/skilltest-buienradar/internal/transform"
)

const (
	loggerName = "skilltest:buienradar"
)

// Pipelines are the two branches built on top of the feed: both parse the
// same document, one keeps the stations and the other the measurements.
type Pipelines struct {
	Stations     pipeline.Pipeline[storage.Station]
	Measurements pipeline.Pipeline[storage.Measurement]
}

// NewPipelines builds the station and measurement branches reading from src.
func NewPipelines(src source.Source) Pipelines {
	base := pipeline.Add(
		pipeline.Add(pipeline.New(src), transform.NewJSONPath(FeedPath...)),
		transform.NewSchema[StationMeasurement](),
	)

	return Pipelines{
		Stations:     pipeline.Add(base, transform.NewMap(ToStation)),
		Measurements: pipeline.Add(base, transform.NewMap(ToMeasurement)),
	}
}

// Loaders are the destinations of the two branches.
type Loaders struct {
	Stations     destination.Loader[storage.Station]
	Measurements destination.Loader[storage.Measurement]
}

// Load runs the station branch and then the measurement branch, so that every
// measurement finds its station already persisted. Each branch fetches the
// feed on its own; when the stations fail the measurements are not attempted.
func (p Pipelines) Load(ctx context.Context, loaders Loaders) error {
	log := logger.FromContext(ctx).WithName(loggerName)

	log.Info("loading stations")
	if err := p.Stations.Run(ctx, loaders.Stations); err != nil {
		return fmt.Errorf("loading stations: %w", err)
	}

	log.Info("loading measurements")
	if err := p.Measurements.Run(ctx, loaders.Measurements); err != nil {
		return fmt.Errorf("loading measurements: %w", err)
	}

	log.Info("feed loaded")
	return nil
}
