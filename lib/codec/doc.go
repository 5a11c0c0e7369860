// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the module's CBOR encoding configuration.
//
// Settings trees are exchanged in two text formats (JSON and Lua) and
// two machine formats (YAML and CBOR). This package owns the CBOR
// profile so that the render sink and any consumer reading its output
// agree on one configuration. The encoder uses Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer and
// float encoding, no indefinite-length items. The same settings always
// produce identical bytes, which makes CBOR output suitable as a
// content-addressed artifact.
//
// Ordered objects ([plain.Object]) are written as CBOR maps. Their
// member order is not preserved; deterministic encoding sorts keys.
// Consumers that need field order read the JSON or YAML output.
//
//	data, err := codec.MarshalTree(result.Tree())
//	var decoded any
//	err = codec.Unmarshal(data, &decoded)
//
// [Diagnose] renders CBOR, including sequences, in RFC 8949 diagnostic
// notation for the diag command.
//
// Decoded generic values use map[string]any for maps, uint64 or int64
// for integers and float64 for floats. [plain.Normalize] turns such a
// value back into a plain tree.
package codec
