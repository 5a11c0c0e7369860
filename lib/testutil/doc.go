// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for mapstring packages.
//
// [ExchangeString] is a real 0.16.36.2 map exchange string with known
// contents, used as the end-to-end fixture by the decoder, the preview
// service and the CLI. [WriteFile] places fixture text on disk for
// tests that exercise file input.
//
// [RequireReceive] and [RequireClosed] encapsulate the timeout safety
// valve pattern (select with time.After fallback) so that concurrent
// tests do not need direct time.After calls.
//
// [UniqueID] generates monotonically increasing identifiers for output
// file names that must not collide between parallel subtests.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no dependencies on the rest of the module.
package testutil
