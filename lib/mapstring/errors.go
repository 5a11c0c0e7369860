// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapstring

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind identifies the pipeline stage that rejected the input.
type ErrorKind string

const (
	// KindFrameDecode: the payload is not valid base64 (bad alphabet
	// or padding).
	KindFrameDecode ErrorKind = "frame_decode"

	// KindTransportDecompress: the zlib stream is corrupt, truncated,
	// or inflates past the configured bound.
	KindTransportDecompress ErrorKind = "transport_decompress"

	// KindTruncatedStream: a read ran past the end of the raw bytes.
	KindTruncatedStream ErrorKind = "truncated_stream"

	// KindMalformedText: a length-prefixed string overruns the buffer
	// or is not ASCII.
	KindMalformedText ErrorKind = "malformed_text"

	// KindSchemaMismatch: an enumerated byte holds a value outside its
	// known set.
	KindSchemaMismatch ErrorKind = "schema_mismatch"

	// KindChecksum: the trailing CRC-32 does not match the stream.
	KindChecksum ErrorKind = "checksum"
)

// Error is a failure of one pipeline stage. Offset is the byte offset
// into the raw (inflated) stream, or -1 when the failure happened
// before binary parsing. Path is the dotted field path inside the
// schema, empty outside the schema walk.
type Error struct {
	Kind   ErrorKind
	Offset int
	Path   string
	Err    error
}

func (e *Error) Error() string {
	var builder strings.Builder
	builder.WriteString(string(e.Kind))
	if e.Path != "" {
		builder.WriteString(" at ")
		builder.WriteString(e.Path)
	}
	if e.Offset >= 0 {
		fmt.Fprintf(&builder, " (byte %d)", e.Offset)
	}
	if e.Err != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Err.Error())
	}
	return builder.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so the sentinel values
// below work with errors.Is regardless of offset, path or cause.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind && other.Offset == sentinelOffset
}

// sentinelOffset marks the package-level sentinel errors; real errors
// never carry it.
const sentinelOffset = -2

var (
	ErrFrameDecode         = &Error{Kind: KindFrameDecode, Offset: sentinelOffset}
	ErrTransportDecompress = &Error{Kind: KindTransportDecompress, Offset: sentinelOffset}
	ErrTruncatedStream     = &Error{Kind: KindTruncatedStream, Offset: sentinelOffset}
	ErrMalformedText       = &Error{Kind: KindMalformedText, Offset: sentinelOffset}
	ErrSchemaMismatch      = &Error{Kind: KindSchemaMismatch, Offset: sentinelOffset}
	ErrChecksum            = &Error{Kind: KindChecksum, Offset: sentinelOffset}
	ErrStructuralParse     = &StructuralError{}
)

func newError(kind ErrorKind, offset int, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: offset, Err: fmt.Errorf(format, args...)}
}

// withPath prefixes the error's schema path with segment. Non-*Error
// values pass through unchanged.
func withPath(err error, segment string) error {
	var decodeError *Error
	if !errors.As(err, &decodeError) {
		return err
	}
	if decodeError.Path == "" {
		decodeError.Path = segment
	} else if strings.HasPrefix(decodeError.Path, "[") {
		decodeError.Path = segment + decodeError.Path
	} else {
		decodeError.Path = segment + "." + decodeError.Path
	}
	return err
}

// StructuralError is the single error returned when the schema walk
// fails. Err is the deepest cause (an *Error). Mismatch is set when
// the stream was newer than the known version, in which case the
// version is reported as the likely cause.
type StructuralError struct {
	Path     string
	Mismatch *VersionMismatch
	Err      error
}

func (e *StructuralError) Error() string {
	var builder strings.Builder
	if e.Mismatch != nil {
		fmt.Fprintf(&builder, "cannot parse map settings, likely because stream version %s is newer than supported version %s",
			e.Mismatch.Observed, e.Mismatch.Known)
	} else {
		builder.WriteString("cannot parse map settings")
	}
	if e.Path != "" {
		builder.WriteString(" at ")
		builder.WriteString(e.Path)
	}
	if e.Err != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Err.Error())
	}
	return builder.String()
}

func (e *StructuralError) Unwrap() error { return e.Err }

// Is matches any *StructuralError, so errors.Is(err,
// ErrStructuralParse) holds for every schema-walk failure.
func (e *StructuralError) Is(target error) bool {
	_, ok := target.(*StructuralError)
	return ok
}
