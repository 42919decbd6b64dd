// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package storage

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YassinCh/skilltest-buienradar/internal/logger"
)

func openTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()

	store, err := Open(t.Context(), "sqlite:///"+filepath.Join(t.TempDir(), "weather.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func merge(t *testing.T, store *Store, entities ...Entity) error {
	t.Helper()

	tx, err := store.Begin(t.Context())
	require.NoError(t, err)
	defer tx.Rollback() //nolint:errcheck

	for _, entity := range entities {
		if err := tx.Merge(t.Context(), entity); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func count(t *testing.T, store *Store, table string) int {
	t.Helper()

	var rows int
	require.NoError(t, store.QueryRowContext(t.Context(), "SELECT COUNT(*) FROM "+table).Scan(&rows))
	return rows
}

func float(value float64) *float64 {
	return &value
}

func TestDataSourceName(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		databaseURL   string
		expected      string
		expectedError error
	}{
		"relative path url": {
			databaseURL: "sqlite:///weather_data.db",
			expected:    "weather_data.db?" + connectionPragmas,
		},
		"absolute path url": {
			databaseURL: "sqlite:////var/lib/skilltest/weather.db",
			expected:    "/var/lib/skilltest/weather.db?" + connectionPragmas,
		},
		"in memory url": {
			databaseURL: "sqlite://",
			expected:    ":memory:?" + connectionPragmas,
		},
		"explicit in memory url": {
			databaseURL: "sqlite:///:memory:",
			expected:    ":memory:?" + connectionPragmas,
		},
		"plain path with query": {
			databaseURL: "weather.db?cache=shared",
			expected:    "weather.db?cache=shared&" + connectionPragmas,
		},
		"other engines are rejected": {
			databaseURL:   "postgresql://localhost/weather",
			expectedError: ErrUnsupportedDatabase,
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			dsn, err := DataSourceName(test.databaseURL)
			if test.expectedError != nil {
				require.ErrorIs(t, err, test.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expected, dsn)
		})
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := "sqlite:///" + filepath.Join(t.TempDir(), "weather.db")
	first, err := Open(t.Context(), path)
	require.NoError(t, err)
	require.NoError(t, merge(t, first, Station{ID: 1, Name: "A", Region: "R"}))
	require.NoError(t, first.Close())

	second, err := Open(t.Context(), path)
	require.NoError(t, err)
	defer second.Close()
	assert.Equal(t, 1, count(t, second, "station"))
}

func TestMergeStationLaterWins(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	require.NoError(t, merge(t, store,
		Station{ID: 6391, Name: "Arcen", Lat: 51.5, Lon: 6.2, Region: "Venlo"},
		Station{ID: 6260, Name: "De Bilt", Lat: 52.1, Lon: 5.18, Region: "Utrecht"},
		Station{ID: 6391, Name: "Meetstation Arcen", Lat: 51.5, Lon: 6.2, Region: "Venlo"},
	))

	assert.Equal(t, 2, count(t, store, "station"))

	var name string
	require.NoError(t, store.QueryRowContext(t.Context(), "SELECT stationname FROM station WHERE stationid = ?", 6391).Scan(&name))
	assert.Equal(t, "Meetstation Arcen", name)
}

func TestMergeMeasurement(t *testing.T) {
	t.Parallel()

	timestamp := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	station := Station{ID: 6391, Name: "Arcen", Region: "Venlo"}

	t.Run("upsert by synthetic id", func(t *testing.T) {
		t.Parallel()

		store := openTestStore(t)
		id := uuid.New()
		require.NoError(t, merge(t, store,
			station,
			Measurement{ID: id, StationID: 6391, Timestamp: timestamp, Temperature: float(10)},
			Measurement{ID: id, StationID: 6391, Timestamp: timestamp, Temperature: float(12)},
		))

		var temperature float64
		var stored string
		require.NoError(t, store.QueryRowContext(t.Context(),
			"SELECT temperature, timestamp FROM measurement WHERE measurementid = ?", id.String(),
		).Scan(&temperature, &stored))
		assert.InDelta(t, 12, temperature, 0)

		parsed, err := ParseTimestamp(stored)
		require.NoError(t, err)
		assert.True(t, timestamp.Equal(parsed))
	})

	t.Run("duplicate station and timestamp is ignored", func(t *testing.T) {
		t.Parallel()

		store := openTestStore(t)
		first := uuid.New()
		require.NoError(t, merge(t, store,
			station,
			Measurement{ID: first, StationID: 6391, Timestamp: timestamp, Temperature: float(10)},
		))
		require.NoError(t, merge(t, store,
			Measurement{ID: uuid.New(), StationID: 6391, Timestamp: timestamp, Temperature: float(20)},
		))

		assert.Equal(t, 1, count(t, store, "measurement"))
		var id string
		require.NoError(t, store.QueryRowContext(t.Context(), "SELECT measurementid FROM measurement").Scan(&id))
		assert.Equal(t, first.String(), id)
	})

	t.Run("nullable columns", func(t *testing.T) {
		t.Parallel()

		store := openTestStore(t)
		require.NoError(t, merge(t, store,
			station,
			Measurement{ID: uuid.New(), StationID: 6391, Timestamp: timestamp},
		))

		var nulls int
		require.NoError(t, store.QueryRowContext(t.Context(),
			"SELECT COUNT(*) FROM measurement WHERE temperature IS NULL AND windspeedbft IS NULL",
		).Scan(&nulls))
		assert.Equal(t, 1, nulls)
	})

	t.Run("unknown station violates the foreign key", func(t *testing.T) {
		t.Parallel()

		store := openTestStore(t)
		err := merge(t, store, Measurement{ID: uuid.New(), StationID: 42, Timestamp: timestamp})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "merging into measurement")
		assert.Equal(t, 0, count(t, store, "measurement"))
	})
}

func TestRollbackDiscardsMerges(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	tx, err := store.Begin(t.Context())
	require.NoError(t, err)
	require.NoError(t, tx.Merge(t.Context(), Station{ID: 1, Name: "A", Region: "R"}))
	require.NoError(t, tx.Rollback())

	assert.Equal(t, 0, count(t, store, "station"))
}

func TestEchoStatements(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	ctx := logger.WithContext(t.Context(), logger.NewLogger(buffer))

	store, err := Open(ctx, filepath.Join(t.TempDir(), "weather.db"), WithEcho(true))
	require.NoError(t, err)
	defer store.Close()

	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Merge(ctx, Station{ID: 1, Name: "A", Region: "R"}))
	require.NoError(t, tx.Commit())
	require.Error(t, tx.Rollback())

	output := buffer.String()
	assert.Contains(t, output, "CREATE TABLE IF NOT EXISTS station")
	assert.Contains(t, output, `"sql":"BEGIN"`)
	assert.Contains(t, output, "INSERT INTO station (stationid, stationname, lat, lon, regio)")
	assert.Contains(t, output, `"sql":"COMMIT"`)
	assert.NotContains(t, output, "ROLLBACK")
}
