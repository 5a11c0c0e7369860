// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"io"

	"github.com/bureau-foundation/mapstring/lib/codec"
)

type cborRenderer struct{}

func (cborRenderer) Format() Format    { return FormatCBOR }
func (cborRenderer) Extension() string { return ".cbor" }
func (cborRenderer) Binary() bool      { return true }

// Render writes one deterministic CBOR item. Object member order is
// not preserved; see lib/codec.
func (cborRenderer) Render(w io.Writer, tree any) error {
	data, err := codec.MarshalTree(tree)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
