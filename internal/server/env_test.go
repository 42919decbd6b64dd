// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvironmentVariables(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		envVars, err := LoadServerConfig()
		require.NoError(t, err)
		assert.Equal(t, 3000, envVars.HTTPPort)
		assert.Equal(t, "0.0.0.0:3000", envVars.Address())
		assert.True(t, envVars.DisableStartupMessage)
	})

	t.Run("custom port", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "8080")
		envVars, err := LoadServerConfig()
		require.NoError(t, err)
		assert.Equal(t, 8080, envVars.HTTPPort)
	})

	t.Run("port out of range", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "655350")
		_, err := LoadServerConfig()
		require.ErrorIs(t, err, ErrEnvVariablesNotValid)
	})

	t.Run("port not a number", func(t *testing.T) {
		t.Setenv("HTTP_PORT", "http")
		_, err := LoadServerConfig()
		require.ErrorIs(t, err, ErrEnvVariablesNotValid)
	})
}

func TestValidateEnvironmentVariables(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		envVars       Config
		expectedError string
	}{
		"negative port": {
			envVars:       Config{HTTPHost: "0.0.0.0", HTTPPort: -1},
			expectedError: "environment variables not valid: HTTP_PORT is out of valid range (1-65535)",
		},
		"port too high": {
			envVars:       Config{HTTPHost: "0.0.0.0", HTTPPort: 655350},
			expectedError: "environment variables not valid: HTTP_PORT is out of valid range (1-65535)",
		},
		"empty host and port": {
			envVars:       Config{HTTPHost: " "},
			expectedError: "environment variables not valid: HTTP_PORT is out of valid range (1-65535), HTTP_HOST must not be empty",
		},
		"valid": {
			envVars: Config{HTTPHost: "localhost", HTTPPort: 3000},
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()

			err := validateEnvironmentVariables(&test.envVars)
			if test.expectedError != "" {
				require.EqualError(t, err, test.expectedError)
				return
			}

			require.NoError(t, err)
		})
	}
}
