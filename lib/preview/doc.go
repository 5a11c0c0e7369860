// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package preview is the boundary between the decoder and whatever
// serves map previews to users (a chat bot, a web form, the CLI).
//
// A [Service] offers two operations:
//
//   - [Service.Decode] turns a user-supplied exchange string into a
//     [Decoded] value: the plain settings tree, the producer version,
//     an optional version mismatch, and an identifier derived from a
//     BLAKE3 fingerprint of the payload.
//   - [Service.Render] writes a settings tree to a [Location] in one of
//     the registered render formats, atomically.
//
// Every decode failure is returned as an [*InputError] whose message
// starts with [UserMessage]; the underlying mapstring error stays
// reachable with errors.Is and errors.As. The service logs each
// decode and render with the logger it was given.
//
// The identifier depends only on the payload characters, not on the
// whitespace or framing around them, so a string re-wrapped by a chat
// client maps to the same file.
package preview
