// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package mapper turns loosely typed mappings, such as decoded JSON objects,
// into typed records. The shape of a record is declared once through struct
// tags and interpreted by a single generic decoder.
package mapper
