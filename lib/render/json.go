// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/bureau-foundation/mapstring/lib/plain"
)

type jsonRenderer struct{}

func (jsonRenderer) Format() Format    { return FormatJSON }
func (jsonRenderer) Extension() string { return ".json" }
func (jsonRenderer) Binary() bool      { return false }

// Render writes two-space indented JSON with a trailing newline.
// Non-ASCII text is written as UTF-8, not escaped. NaN and the
// infinities become strings; see plain.Object.MarshalJSON.
func (jsonRenderer) Render(w io.Writer, tree any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(plain.JSONValue(tree))
}
