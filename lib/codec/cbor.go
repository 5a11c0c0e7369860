// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/bureau-foundation/mapstring/lib/plain"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2).
var encMode cbor.EncMode

// decMode is the CBOR decoder. Generic targets receive string-keyed
// maps.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Settings trees never use non-string keys. The CBOR default
		// for an any target is map[interface{}]interface{}, which
		// neither plain.Normalize nor encoding/json accept.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// MarshalTree encodes a plain settings tree. Objects become CBOR maps
// with sorted keys.
func MarshalTree(tree any) ([]byte, error) {
	data, err := encMode.Marshal(plain.ToMaps(tree))
	if err != nil {
		return nil, fmt.Errorf("encoding settings as CBOR: %w", err)
	}
	return data, nil
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Diagnose returns the diagnostic notation (RFC 8949 §8) of every
// item in data, which may be a CBOR sequence (RFC 8742). On error the
// items diagnosed so far are returned with it.
func Diagnose(data []byte) ([]string, error) {
	var items []string
	remaining := data
	for len(remaining) > 0 {
		notation, rest, err := cbor.DiagnoseFirst(remaining)
		if err != nil {
			return items, fmt.Errorf("diagnose CBOR at byte %d: %w", len(data)-len(remaining), err)
		}
		items = append(items, notation)
		remaining = rest
	}
	return items, nil
}
