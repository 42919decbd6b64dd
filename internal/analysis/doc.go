// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package analysis contains the read only queries run over the stored
// stations and measurements.
package analysis
