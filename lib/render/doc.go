// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package render serializes plain settings trees.
//
// Each output format is a [Renderer] registered under a [Format] name:
//
//   - json: indented JSON, member order preserved. The canonical
//     format; it is what the map generator reads.
//   - lua: a Lua table literal, { ["key"] = value, ... }.
//   - yaml: YAML, member order preserved.
//   - cbor: Core Deterministic CBOR through lib/codec.
//
// [Render] normalizes its input with plain.Normalize before handing it
// to a renderer, so renderers only ever see Objects, []any, int64,
// float64, bool, string and nil. For trees produced by the decoder
// rendering does not fail except on write errors.
//
// [WriteFile] renders into a directory under a caller-chosen name,
// atomically: readers never observe a partially written file.
package render
