// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package config loads the application settings from an optional yaml file,
// an optional dotenv file and the environment.
package config
