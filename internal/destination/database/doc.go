// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package database implements the loader that merges entities into the SQL store.
package database
