// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package destination defines the contract implemented by the final stage of a
// pipeline. Implementations live in the sub packages: database merges records
// into the SQL store, writer prints them and fake records them for tests.
package destination
