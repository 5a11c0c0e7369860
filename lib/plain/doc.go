// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package plain defines the plain tree: the format-neutral data shape
// that decoders produce and renderers consume.
//
// A plain tree is built only from:
//
//   - [Object]: an ordered list of string-keyed members
//   - []any: an ordered sequence
//   - int64, float64, bool, string, and nil
//
// Object exists because Go maps forget insertion order and the
// settings documents are easier to read (and diff) when fields appear
// in declaration order. Object implements json.Marshaler and
// yaml.Marshaler so that stock serializers keep that order.
//
// [Normalize] converts loosely typed data (the output of a JSON or YAML
// decoder, or hand-built literals using int and map[string]any) into a
// plain tree. It is idempotent: normalizing a plain tree returns an
// equal tree.
//
// This package depends on no other module packages.
package plain
