// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package buienradar

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YassinCh/skilltest-buienradar/internal/destination/database"
	fakedestination "github.com/YassinCh/skilltest-buienradar/internal/destination/fake"
	"github.com/YassinCh/skilltest-buienradar/internal/destination/writer"
	"github.com/YassinCh/skilltest-buienradar/internal/mapper"
	"github.com/YassinCh/skilltest-buienradar/internal/source"
	fakesource "github.com/YassinCh/skilltest-buienradar/internal/source/fake"
	"github.com/YassinCh/skilltest-buienradar/internal/storage"
	"github.com/YassinCh/skilltest-buienradar/internal/transform"
)

const singleMeasurementFeed = `{"actual": {"stationmeasurements": [{"$id": "1", "stationid": 1, "stationname": "A", "lat": 1.0, "lon": 2.0, "regio": "R", "timestamp": "2024-01-01T00:00:00", "weatherdescription": "Zonnig", "temperature": 10.0, "unknown": true}]}}`

func feedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()

	store, err := storage.Open(t.Context(), "sqlite:///"+filepath.Join(t.TempDir(), "weather.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func databaseLoaders(store *storage.Store) Loaders {
	return Loaders{
		Stations:     database.NewLoader[storage.Station](store),
		Measurements: database.NewLoader[storage.Measurement](store),
	}
}

func count(t *testing.T, store *storage.Store, table string) int {
	t.Helper()

	var rows int
	require.NoError(t, store.QueryRowContext(t.Context(), "SELECT COUNT(*) FROM "+table).Scan(&rows))
	return rows
}

func TestLoadSingleMeasurementFeed(t *testing.T) {
	t.Parallel()

	server := feedServer(t, singleMeasurementFeed)
	store := openTestStore(t)

	pipelines := NewPipelines(source.NewHTTPSource(server.URL))
	require.NoError(t, pipelines.Load(t.Context(), databaseLoaders(store)))

	assert.Equal(t, 1, count(t, store, "station"))
	assert.Equal(t, 1, count(t, store, "measurement"))

	var stationID int64
	var name, region string
	require.NoError(t, store.QueryRowContext(t.Context(), "SELECT stationid, stationname, regio FROM station").Scan(&stationID, &name, &region))
	assert.Equal(t, int64(1), stationID)
	assert.Equal(t, "A", name)
	assert.Equal(t, "R", region)

	var measurementStation int64
	var timestamp string
	var temperature float64
	require.NoError(t, store.QueryRowContext(t.Context(), "SELECT stationid, timestamp, temperature FROM measurement").Scan(&measurementStation, &timestamp, &temperature))
	assert.Equal(t, int64(1), measurementStation)
	assert.Equal(t, "2024-01-01 00:00:00", timestamp)
	assert.InDelta(t, 10.0, temperature, 0.0001)
}

func TestLoadFeedTwiceKeepsOneMeasurementPerTimestamp(t *testing.T) {
	t.Parallel()

	feed, err := os.ReadFile(filepath.Join("testdata", "feed.json"))
	require.NoError(t, err)

	server := feedServer(t, string(feed))
	store := openTestStore(t)
	pipelines := NewPipelines(source.NewHTTPSource(server.URL))

	require.NoError(t, pipelines.Load(t.Context(), databaseLoaders(store)))
	require.NoError(t, pipelines.Load(t.Context(), databaseLoaders(store)))

	assert.Equal(t, 2, count(t, store, "station"))
	assert.Equal(t, 2, count(t, store, "measurement"))

	var nullTemperatures int
	require.NoError(t, store.QueryRowContext(t.Context(), "SELECT COUNT(*) FROM measurement WHERE temperature IS NULL").Scan(&nullTemperatures))
	assert.Equal(t, 1, nullTemperatures)
}

func TestLoadFetchesOncePerBranch(t *testing.T) {
	t.Parallel()

	src := fakesource.NewLinesSource(strings.SplitAfter(singleMeasurementFeed, ",")...)

	stations := fakedestination.NewLoader[storage.Station](t)
	measurements := fakedestination.NewLoader[storage.Measurement](t)
	err := NewPipelines(src).Load(t.Context(), Loaders{Stations: stations, Measurements: measurements})
	require.NoError(t, err)

	assert.Equal(t, 2, src.Fetches())
	assert.Equal(t, []storage.Station{{ID: 1, Name: "A", Lat: 1.0, Lon: 2.0, Region: "R"}}, stations.Loaded)
	require.Len(t, measurements.Loaded, 1)

	measurement := measurements.Loaded[0]
	assert.NotZero(t, measurement.ID)
	assert.Equal(t, int64(1), measurement.StationID)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), measurement.Timestamp)
	require.NotNil(t, measurement.Temperature)
	assert.InDelta(t, 10.0, *measurement.Temperature, 0.0001)
	assert.Nil(t, measurement.FeelTemperature)
}

func TestLoadStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		document      string
		expectedError error
	}{
		"missing measurements list": {
			document:      `{"actual": {"sunrise": "2024-01-01T08:48:00"}}`,
			expectedError: transform.ErrKeyNotFound,
		},
		"truncated document": {
			document:      `{"actual": {"stationmeasurements": [`,
			expectedError: transform.ErrMalformedDocument,
		},
		"measurement without station name": {
			document:      `{"actual": {"stationmeasurements": [{"$id": "1", "stationid": 1, "lat": 1.0, "lon": 2.0, "regio": "R", "timestamp": "2024-01-01T00:00:00", "weatherdescription": "Zonnig"}]}}`,
			expectedError: mapper.ErrValidation,
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			store := openTestStore(t)
			src := fakesource.NewLinesSource(test.document)

			err := NewPipelines(src).Load(t.Context(), databaseLoaders(store))
			require.ErrorIs(t, err, test.expectedError)
			assert.ErrorContains(t, err, "loading stations")

			assert.Equal(t, 1, src.Fetches())
			assert.Zero(t, count(t, store, "station"))
			assert.Zero(t, count(t, store, "measurement"))
		})
	}
}

func TestLoadToWriter(t *testing.T) {
	t.Parallel()

	output := new(bytes.Buffer)
	src := fakesource.NewLinesSource(singleMeasurementFeed)
	loaders := Loaders{
		Stations:     writer.NewLoader[storage.Station](output, "station"),
		Measurements: writer.NewLoader[storage.Measurement](output, "measurement"),
	}

	require.NoError(t, NewPipelines(src).Load(t.Context(), loaders))

	printed := output.String()
	assert.Contains(t, printed, "Load station:\n")
	assert.Contains(t, printed, `"stationname": "A"`)
	assert.Contains(t, printed, "Loaded 1 station\n")
	assert.Contains(t, printed, "Load measurement:\n")
	assert.Contains(t, printed, `"timestamp": "2024-01-01T00:00:00Z"`)
	assert.Contains(t, printed, "Loaded 1 measurement\n")
}
