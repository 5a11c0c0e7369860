// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapstring

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/mapstring/lib/plain"
)

// Result is a successfully decoded exchange string.
type Result struct {
	// Version is the producer version read from the stream.
	Version Version

	// Settings is the decoded MapGenSettings struct.
	Settings *Node

	// Mismatch is set when Version is newer than the known version.
	// The decode succeeded regardless.
	Mismatch *VersionMismatch
}

// Tree returns the plain projection of Settings.
func (r *Result) Tree() plain.Object {
	return Native(r.Settings).(plain.Object)
}

type options struct {
	known          Version
	maxInflated    int
	verifyChecksum bool
}

// Option configures Decode and DecodeRaw.
type Option func(*options)

// WithKnownVersion overrides KnownVersion for mismatch detection.
func WithKnownVersion(version Version) Option {
	return func(o *options) { o.known = version }
}

// WithMaxInflatedSize bounds the inflated stream (default
// DefaultMaxInflatedSize).
func WithMaxInflatedSize(limit int) Option {
	return func(o *options) { o.maxInflated = limit }
}

// WithoutChecksum skips verification of the CRC-32 trailer.
func WithoutChecksum() Option {
	return func(o *options) { o.verifyChecksum = false }
}

func newOptions(opts []Option) options {
	resolved := options{
		known:          KnownVersion,
		maxInflated:    DefaultMaxInflatedSize,
		verifyChecksum: true,
	}
	for _, opt := range opts {
		opt(&resolved)
	}
	return resolved
}

// Decode decodes a framed exchange string. The error, if any, is an
// *Error for frame, transport, checksum and header failures, or a
// *StructuralError for failures inside the settings.
//
// The checksum is verified before the settings are walked, and a
// checksum failure is reported as corruption even when the stream's
// version is newer than the known version. Only a *StructuralError
// carries a [VersionMismatch].
func Decode(text string, opts ...Option) (*Result, error) {
	resolved := newOptions(opts)
	raw, err := DecodeTransport(ExtractPayload(text), resolved.maxInflated)
	if err != nil {
		return nil, err
	}
	return decodeRaw(raw, resolved)
}

// DecodeRaw decodes an already inflated stream. Errors follow Decode.
func DecodeRaw(raw []byte, opts ...Option) (*Result, error) {
	return decodeRaw(raw, newOptions(opts))
}

func decodeRaw(raw []byte, resolved options) (*Result, error) {
	cursor, err := NewCursor(raw)
	if err != nil {
		return nil, err
	}

	// The mismatch is recorded before the walk so that a failing walk
	// can blame the version rather than the input.
	mismatch := checkVersion(cursor.Version(), resolved.known)

	if resolved.verifyChecksum {
		if err := verifyChecksum(raw); err != nil {
			return nil, err
		}
	}

	settings, err := mapGenSettingsLayout.decode(cursor)
	if err != nil {
		structural := &StructuralError{Mismatch: mismatch, Err: err}
		var decodeError *Error
		if errors.As(err, &decodeError) {
			structural.Path = decodeError.Path
		}
		return nil, structural
	}

	return &Result{
		Version:  cursor.Version(),
		Settings: settings,
		Mismatch: mismatch,
	}, nil
}

// EncodeRaw writes tree as an uncompressed stream for version,
// including the CRC-32 trailer. tree is normalized first, so
// map[string]any and Go integer types are accepted.
func EncodeRaw(tree any, version Version) ([]byte, error) {
	normalized, err := plain.Normalize(tree)
	if err != nil {
		return nil, fmt.Errorf("normalize settings: %w", err)
	}
	writer := NewWriter(version)
	if err := mapGenSettingsLayout.encode(writer, normalized); err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return writer.Seal(), nil
}

// Encode writes tree as a framed exchange string for version. It is
// the inverse of Decode for every field Decode keeps.
func Encode(tree any, version Version) (string, error) {
	raw, err := EncodeRaw(tree, version)
	if err != nil {
		return "", err
	}
	compressed, err := deflate(raw)
	if err != nil {
		return "", err
	}
	return Frame(compressed), nil
}
