// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package transform contains the stages that can be chained into a pipeline.
//
// Every stage forwards upstream errors untouched and stops at the first error,
// so a failure anywhere aborts the remainder of the run.
package transform
