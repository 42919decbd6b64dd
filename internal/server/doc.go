// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package server exposes the analysis queries over http using the Fiber framework,
// together with the request logging middleware and a health check route.
package server
