// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package pipeline

import "errors"

// ErrNoSource is returned when running a pipeline that was not built with New.
var ErrNoSource = errors.New("pipeline has no source")
