// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package storage

import "errors"

var (
	// ErrUnsupportedDatabase reports a connection string for an engine other than SQLite.
	ErrUnsupportedDatabase = errors.New("unsupported database")
)
