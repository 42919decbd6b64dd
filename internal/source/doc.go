// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package source defines the contract implemented by data sources and the
// HTTP source that streams a remote document line by line.
package source
