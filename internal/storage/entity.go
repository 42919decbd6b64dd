// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package storage

import (
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the textual form of measurement timestamps, always in UTC.
const TimestampLayout = "2006-01-02 15:04:05"

// Entity is a record that can be merged into the store.
type Entity interface {
	// Table returns the name of the table holding the entity.
	Table() string
	// MergeStatement returns the upsert statement for the entity and its arguments.
	MergeStatement() (string, []any)
}

var (
	_ Entity = Station{}
	_ Entity = Measurement{}
)

const mergeStation = `
INSERT INTO station (stationid, stationname, lat, lon, regio)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (stationid) DO UPDATE SET
	stationname = excluded.stationname,
	lat = excluded.lat,
	lon = excluded.lon,
	regio = excluded.regio`

// Station is a weather station, identified by its Buienradar station id.
type Station struct {
	ID     int64   `json:"stationid"`
	Name   string  `json:"stationname"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Region string  `json:"regio"`
}

func (Station) Table() string {
	return "station"
}

func (s Station) MergeStatement() (string, []any) {
	return mergeStation, []any{s.ID, s.Name, s.Lat, s.Lon, s.Region}
}

// A second reading for the same station and timestamp is silently dropped.
const mergeMeasurement = `
INSERT INTO measurement (
	measurementid, stationid, timestamp, temperature, groundtemperature, feeltemperature,
	windgusts, windspeedbft, humidity, precipitation, sunpower
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (measurementid) DO UPDATE SET
	stationid = excluded.stationid,
	timestamp = excluded.timestamp,
	temperature = excluded.temperature,
	groundtemperature = excluded.groundtemperature,
	feeltemperature = excluded.feeltemperature,
	windgusts = excluded.windgusts,
	windspeedbft = excluded.windspeedbft,
	humidity = excluded.humidity,
	precipitation = excluded.precipitation,
	sunpower = excluded.sunpower
ON CONFLICT (stationid, timestamp) DO NOTHING`

// Measurement is a single reading of a station. Its ID is synthetic, a
// station has at most one measurement per timestamp.
type Measurement struct {
	ID                uuid.UUID `json:"measurementid"`
	StationID         int64     `json:"stationid"`
	Timestamp         time.Time `json:"timestamp"`
	Temperature       *float64  `json:"temperature"`
	GroundTemperature *float64  `json:"groundtemperature"`
	FeelTemperature   *float64  `json:"feeltemperature"`
	WindGusts         *float64  `json:"windgusts"`
	WindSpeedBft      *int64    `json:"windspeedbft"`
	Humidity          *float64  `json:"humidity"`
	Precipitation     *float64  `json:"precipitation"`
	SunPower          *float64  `json:"sunpower"`
}

func (Measurement) Table() string {
	return "measurement"
}

func (m Measurement) MergeStatement() (string, []any) {
	return mergeMeasurement, []any{
		m.ID.String(),
		m.StationID,
		FormatTimestamp(m.Timestamp),
		nullable(m.Temperature),
		nullable(m.GroundTemperature),
		nullable(m.FeelTemperature),
		nullable(m.WindGusts),
		nullable(m.WindSpeedBft),
		nullable(m.Humidity),
		nullable(m.Precipitation),
		nullable(m.SunPower),
	}
}

func nullable[T any](value *T) any {
	if value == nil {
		return nil
	}

	return *value
}

// FormatTimestamp returns the stored representation of t.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp is the inverse of FormatTimestamp.
func ParseTimestamp(value string) (time.Time, error) {
	return time.Parse(TimestampLayout, value)
}
