// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package buienradar

import (
	"time"

	"github.com/google/uuid"

	"github.com/YassinCh/skilltest-buienradar/internal/storage"
)

// FeedPath is the position of the station measurements list inside the feed document.
var FeedPath = []string{"actual", "stationmeasurements"}

// StationMeasurement is one element of the feed measurements list. Keys of the
// feed that are not declared here are ignored.
type StationMeasurement struct {
	ID                  int64     `field:"$id"`
	StationID           int64     `field:"stationid"`
	StationName         string    `field:"stationname"`
	Lat                 float64   `field:"lat"`
	Lon                 float64   `field:"lon"`
	Region              string    `field:"regio"`
	Timestamp           time.Time `field:"timestamp"`
	WeatherDescription  string    `field:"weatherdescription"`
	WindDirection       *string   `field:"winddirection"`
	Temperature         *float64  `field:"temperature"`
	GroundTemperature   *float64  `field:"groundtemperature"`
	FeelTemperature     *float64  `field:"feeltemperature"`
	WindGusts           *float64  `field:"windgusts"`
	WindSpeed           *float64  `field:"windspeed"`
	WindSpeedBft        *int64    `field:"windspeedBft"`
	Humidity            *float64  `field:"humidity"`
	Precipitation       *float64  `field:"precipitation"`
	SunPower            *float64  `field:"sunpower"`
	RainFallLast24Hour  *float64  `field:"rainFallLast24Hour"`
	RainFallLastHour    *float64  `field:"rainFallLastHour"`
	WindDirectionDegree *int64    `field:"winddirectiondegrees"`
}

// ToStation returns the station that produced m.
func ToStation(m StationMeasurement) storage.Station {
	return storage.Station{
		ID:     m.StationID,
		Name:   m.StationName,
		Lat:    m.Lat,
		Lon:    m.Lon,
		Region: m.Region,
	}
}

// ToMeasurement returns the reading carried by m under a new random id.
func ToMeasurement(m StationMeasurement) storage.Measurement {
	return storage.Measurement{
		ID:                uuid.New(),
		StationID:         m.StationID,
		Timestamp:         m.Timestamp,
		Temperature:       m.Temperature,
		GroundTemperature: m.GroundTemperature,
		FeelTemperature:   m.FeelTemperature,
		WindGusts:         m.WindGusts,
		WindSpeedBft:      m.WindSpeedBft,
		Humidity:          m.Humidity,
		Precipitation:     m.Precipitation,
		SunPower:          m.SunPower,
	}
}
