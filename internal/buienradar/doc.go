// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package buienradar wires the generic pipeline to the Buienradar JSON feed:
// the feed document is split into station measurements, validated, and fanned
// out into stations and measurements.
package buienradar
