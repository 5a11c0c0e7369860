// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package mapstring decodes map exchange strings: the ">>>" … "<<<"
// framed, base64 and zlib wrapped binary blobs in which the game
// exports its world-generation settings.
//
// Decoding is a straight pipeline with no feedback between stages:
//
//	text ──ExtractPayload──▶ base64 ──DecodeTransport──▶ raw bytes
//	     ──NewCursor + schema walk──▶ *Node ──Native──▶ plain tree
//
// The binary layout is not self-describing. The stream starts with a
// four-component [Version], and the presence (and in one case the
// wire type) of later fields depends on that version. Every gate is
// listed once in the table [Thresholds] returns; the schema walk asks
// [Version.Supports] rather than comparing versions inline.
//
// The decoded [Node] tree is a closed tagged variant (scalar, struct,
// map, list). [Native] projects it to plain Go data ([plain.Object],
// []any, int64, float64, bool and string), which any of the renderers
// in lib/render can serialize without knowing about this package.
//
// Every stage fails with an [*Error] whose Kind identifies the stage;
// failures inside the schema walk are collapsed into one
// [*StructuralError] carrying the field path and, when the stream is
// newer than [KnownVersion], a hint that the version is the likely
// cause. The package performs no I/O and never logs.
//
// [Encode] is the inverse pipeline. It writes a plain tree back into
// a framed exchange string through the same field tables, which keeps
// the encoder and decoder from drifting apart.
package mapstring
