// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the mapstring CLI command tree.
//
// Every command reads and writes through a [Streams] value rather than
// the process's standard streams, so tests drive the tree in-process.
// Decoding goes through lib/preview, which owns size limits,
// fingerprints and logging; this package turns its errors into
// categorized [cli.ToolError] values.
package commands
