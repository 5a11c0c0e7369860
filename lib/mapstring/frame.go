// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapstring

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/klauspost/compress/zlib"
)

const (
	// FramePrefix and FrameSuffix delimit an exchange string.
	FramePrefix = ">>>"
	FrameSuffix = "<<<"

	// DefaultMaxInflatedSize bounds the raw stream produced by
	// DecodeTransport. Real settings streams are a few kilobytes;
	// the bound only exists because the inflate ratio is chosen by
	// whoever wrote the string.
	DefaultMaxInflatedSize = 16 << 20
)

// ExtractPayload strips the frame from an exchange string: every
// whitespace character (the format is usually hand-wrapped), then one
// leading run of '>' and one trailing run of '<'. It never fails;
// garbage in yields garbage out for DecodeTransport to reject.
func ExtractPayload(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	cleaned = strings.TrimLeft(cleaned, ">")
	return strings.TrimRight(cleaned, "<")
}

// DecodeTransport reverses the transport encoding of an extracted
// payload: base64, then zlib. maxInflated <= 0 selects
// DefaultMaxInflatedSize.
func DecodeTransport(payload string, maxInflated int) ([]byte, error) {
	compressed, err := decodeBase64(payload)
	if err != nil {
		return nil, err
	}
	return inflate(compressed, maxInflated)
}

// decodeBase64 decodes standard base64 with optional padding. A single
// dangling character cannot encode any bits; it is what truncation
// leaves behind, so it is dropped and the shortened zlib stream is
// reported by the decompressor instead.
func decodeBase64(payload string) ([]byte, error) {
	body := strings.TrimRight(payload, "=")
	padding := len(payload) - len(body)
	if padding > 2 || (padding > 0 && len(payload)%4 != 0) {
		return nil, &Error{Kind: KindFrameDecode, Offset: -1,
			Err: fmt.Errorf("invalid base64 padding: %d padding characters in %d", padding, len(payload))}
	}
	if len(body)%4 == 1 {
		body = body[:len(body)-1]
	}
	decoded, err := base64.RawStdEncoding.DecodeString(body)
	if err != nil {
		return nil, &Error{Kind: KindFrameDecode, Offset: -1, Err: fmt.Errorf("decode base64: %w", err)}
	}
	return decoded, nil
}

func inflate(compressed []byte, maxInflated int) ([]byte, error) {
	if maxInflated <= 0 {
		maxInflated = DefaultMaxInflatedSize
	}
	reader, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, &Error{Kind: KindTransportDecompress, Offset: -1, Err: fmt.Errorf("open zlib stream: %w", err)}
	}
	defer reader.Close()

	// Read one byte past the bound so an oversized stream is detected
	// rather than silently cut.
	raw, err := io.ReadAll(io.LimitReader(reader, int64(maxInflated)+1))
	if err != nil {
		return nil, &Error{Kind: KindTransportDecompress, Offset: -1, Err: fmt.Errorf("inflate: %w", err)}
	}
	if len(raw) > maxInflated {
		return nil, &Error{Kind: KindTransportDecompress, Offset: -1,
			Err: fmt.Errorf("inflated stream exceeds %d bytes", maxInflated)}
	}
	return raw, nil
}

// deflate compresses raw with zlib at the best compression level.
func deflate(raw []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer, err := zlib.NewWriterLevel(&buffer, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("zlib writer: %w", err)
	}
	if _, err := writer.Write(raw); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	return buffer.Bytes(), nil
}

// frameLineWidth is the column at which Frame wraps the payload.
const frameLineWidth = 54

// Frame wraps compressed bytes into an exchange string: base64 with
// padding, hard-wrapped lines, and the delimiters.
func Frame(compressed []byte) string {
	encoded := base64.StdEncoding.EncodeToString(compressed)
	var builder strings.Builder
	builder.Grow(len(encoded) + len(encoded)/frameLineWidth + len(FramePrefix) + len(FrameSuffix))
	builder.WriteString(FramePrefix)
	for start := 0; start < len(encoded); start += frameLineWidth {
		if start > 0 {
			builder.WriteByte('\n')
		}
		end := min(start+frameLineWidth, len(encoded))
		builder.WriteString(encoded[start:end])
	}
	builder.WriteString(FrameSuffix)
	return builder.String()
}
