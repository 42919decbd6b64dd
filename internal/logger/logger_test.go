// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevels(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	logger := NewLogger(buffer)

	logger.SetLevel(TRACE)
	namedLogger := logger.WithName("test_logger")
	namedLogger.Info("new log line for INFO level")
	logger.Trace("new log line for TRACE level")
	logger.SetLevel(DEBUG)
	logger.Debug("new log line for DEBUG level")
	namedLogger.Warn("new log line for WARN level")

	logger.SetLevel(ERROR)
	namedLogger.Warn("silenced log line for WARN level")
	logger.SetLevel(WARN)
	logger.Error("new log line for ERROR level")
	logger.Debug("silenced log line for DEBUG level")

	logger.SetLevel(999)
	logger.Info("new log line for INFO level after invalid level set")
	namedLogger.Debug("silenced log line for DEBUG level after invalid level set")

	lines := strings.Split(buffer.String(), "\n")
	assert.Len(t, lines, 7) // 6 log lines plus 1 trailing empty line
}

func TestLoggerWithFields(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	logger := NewLogger(buffer).WithName("skilltest:test").With("run", "first")
	logger.Info("loaded", "count", 3)

	entry := make(map[string]any)
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
	assert.Equal(t, "loaded", entry["@message"])
	assert.Equal(t, "skilltest:test", entry["@module"])
	assert.Equal(t, "first", entry["run"])
	assert.InDelta(t, 3, entry["count"], 0)
}

func TestLevelStrings(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		level        Level
		expectedName string
	}{
		"trace":   {level: TRACE, expectedName: "TRACE"},
		"debug":   {level: DEBUG, expectedName: "DEBUG"},
		"info":    {level: INFO, expectedName: "INFO"},
		"warn":    {level: WARN, expectedName: "WARN"},
		"error":   {level: ERROR, expectedName: "ERROR"},
		"unknown": {level: Level(999), expectedName: "Level(999)"},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expectedName, test.level.String())
		})
	}

	assert.Equal(t, DEBUG, LevelFromString("debug"))
	assert.Equal(t, WARN, LevelFromString("WARN"))
	assert.Equal(t, INFO, LevelFromString("INVALID"))
	assert.Equal(t, []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}, AllLevels())
}
