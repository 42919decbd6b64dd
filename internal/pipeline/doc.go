// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package pipeline provides the core building blocks of an extraction.
// A pipeline is composed of a source, an ordered chain of transformers and, at
// run time, a loader receiving the final records.
//
// Stages are connected through single-pass iter.Seq2 sequences, so records are
// pulled one at a time from the loader back to the source.
package pipeline
