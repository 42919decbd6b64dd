// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logger wraps hclog behind a small leveled interface.
// Loggers travel inside a context.Context so that every stage of a run
// can log under its own name without explicit wiring.
package logger
