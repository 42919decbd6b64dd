// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package analysis

import (
	"errors"
)

var (
	// ErrNoData is returned when the stored measurements cannot answer a query.
	ErrNoData = errors.New("no data available")
)
