// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package analysis

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/YassinCh/skilltest-buienradar/internal/logger"
	"github.com/YassinCh/skilltest-buienradar/internal/storage"
)

const (
	loggerName = "skilltest:analysis"
)

// Querier runs read only statements against the store.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var _ Querier = &storage.Store{}

// StationTemperature is the temperature read by a station at a given time.
type StationTemperature struct {
	Station     storage.Station `json:"station"`
	Timestamp   time.Time       `json:"timestamp"`
	Temperature float64         `json:"temperature"`
}

// TemperatureDifference is the gap between the measured and the perceived
// temperature of a single measurement.
type TemperatureDifference struct {
	Station         storage.Station `json:"station"`
	Timestamp       time.Time       `json:"timestamp"`
	Temperature     float64         `json:"temperature"`
	FeelTemperature float64         `json:"feeltemperature"`
	Difference      float64         `json:"difference"`
}

// Service answers the analytical questions over the persisted measurements.
// Every query reads directly from the live store.
type Service struct {
	db Querier
}

// NewService returns a Service reading from db.
func NewService(db Querier) *Service {
	return &Service{db: db}
}

const maxTemperatureQuery = `
SELECT s.stationid, s.stationname, s.lat, s.lon, s.regio, m.timestamp, m.temperature
FROM measurement AS m
JOIN station AS s ON s.stationid = m.stationid
WHERE m.temperature IS NOT NULL
ORDER BY m.temperature DESC, m.timestamp DESC, s.stationid
LIMIT 1`

// MaxTemperatureStation returns the measurement with the highest temperature and its station.
// Ties are resolved in favour of the most recent measurement, then of the lowest station id.
func (s *Service) MaxTemperatureStation(ctx context.Context) (StationTemperature, error) {
	var result StationTemperature
	var timestamp string
	row := s.db.QueryRowContext(ctx, maxTemperatureQuery)
	err := row.Scan(
		&result.Station.ID, &result.Station.Name, &result.Station.Lat, &result.Station.Lon, &result.Station.Region,
		&timestamp, &result.Temperature,
	)
	if err != nil {
		return StationTemperature{}, queryError("max temperature", err)
	}

	if result.Timestamp, err = storage.ParseTimestamp(timestamp); err != nil {
		return StationTemperature{}, fmt.Errorf("max temperature: %w", err)
	}

	logger.FromContext(ctx).WithName(loggerName).Debug("max temperature found", "stationId", result.Station.ID)
	return result, nil
}

const meanTemperatureQuery = `SELECT AVG(temperature) FROM measurement WHERE temperature IS NOT NULL`

// MeanTemperature returns the mean temperature of every measurement, ignoring
// the measurements without a temperature.
func (s *Service) MeanTemperature(ctx context.Context) (float64, error) {
	var mean sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, meanTemperatureQuery).Scan(&mean); err != nil {
		return 0, queryError("mean temperature", err)
	}

	if !mean.Valid {
		return 0, fmt.Errorf("mean temperature: %w", ErrNoData)
	}

	return mean.Float64, nil
}

const maxFeelTemperatureDifferenceQuery = `
SELECT s.stationid, s.stationname, s.lat, s.lon, s.regio, m.timestamp, m.temperature, m.feeltemperature,
	m.temperature - m.feeltemperature AS difference
FROM measurement AS m
JOIN station AS s ON s.stationid = m.stationid
WHERE m.temperature IS NOT NULL AND m.feeltemperature IS NOT NULL
ORDER BY difference DESC, m.timestamp DESC, s.stationid
LIMIT 1`

// MaxFeelTemperatureDifference returns the measurement where the measured
// temperature exceeds the perceived one the most. Measurements missing either
// value are skipped.
func (s *Service) MaxFeelTemperatureDifference(ctx context.Context) (TemperatureDifference, error) {
	var result TemperatureDifference
	var timestamp string
	row := s.db.QueryRowContext(ctx, maxFeelTemperatureDifferenceQuery)
	err := row.Scan(
		&result.Station.ID, &result.Station.Name, &result.Station.Lat, &result.Station.Lon, &result.Station.Region,
		&timestamp, &result.Temperature, &result.FeelTemperature, &result.Difference,
	)
	if err != nil {
		return TemperatureDifference{}, queryError("max feel temperature difference", err)
	}

	if result.Timestamp, err = storage.ParseTimestamp(timestamp); err != nil {
		return TemperatureDifference{}, fmt.Errorf("max feel temperature difference: %w", err)
	}

	return result, nil
}

const stationsInRegionQuery = `
SELECT stationid, stationname, lat, lon, regio
FROM station
WHERE lower(regio) = lower(?)
ORDER BY stationid`

// StationsInRegion returns the stations of region, compared case insensitively,
// ordered by station id. An unknown region returns an empty list.
func (s *Service) StationsInRegion(ctx context.Context, region string) ([]storage.Station, error) {
	rows, err := s.db.QueryContext(ctx, stationsInRegionQuery, strings.TrimSpace(region))
	if err != nil {
		return nil, queryError("stations in region", err)
	}
	defer rows.Close()

	stations := make([]storage.Station, 0)
	for rows.Next() {
		var station storage.Station
		if err := rows.Scan(&station.ID, &station.Name, &station.Lat, &station.Lon, &station.Region); err != nil {
			return nil, queryError("stations in region", err)
		}
		stations = append(stations, station)
	}

	if err := rows.Err(); err != nil {
		return nil, queryError("stations in region", err)
	}

	return stations, nil
}

func queryError(query string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNoData
	}

	return fmt.Errorf("%s: %w", query, err)
}
