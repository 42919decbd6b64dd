// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package writer implements a loader that prints the received records to the
// given io.Writer instance.
// It is primarily useful for debugging purposes, or for checking the output of
// a pipeline before writing it to the real database.
package writer
