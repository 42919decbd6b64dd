// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package cmd contains the cobra commands of the application: load runs the
// Buienradar pipelines, analyze queries the stored data and serve exposes the
// same queries over http.
package cmd
