// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapstring

import (
	"encoding/binary"
	"math"
)

// varUintEscape is the VarUint marker byte: values below it are stored
// in one byte, values at or above it as the marker plus a uint32.
const varUintEscape = 0xff

// Cursor reads little-endian fields sequentially from a raw stream.
// It is created by NewCursor, which consumes the stream version first;
// every later read may consult Version to pick a wire layout.
//
// A Cursor is not safe for concurrent use. It never allocates for
// fixed-width reads and never reads past its buffer: every overrun is
// a KindTruncatedStream error.
type Cursor struct {
	data    []byte
	offset  int
	version Version
}

// NewCursor reads the version from the front of raw and, for streams
// that carry it, skips the byte of unknown meaning that follows.
func NewCursor(raw []byte) (*Cursor, error) {
	cursor := &Cursor{data: raw}
	for index := range cursor.version {
		component, err := cursor.ReadUint16()
		if err != nil {
			return nil, err
		}
		cursor.version[index] = component
	}
	if cursor.version.Supports(FeaturePaddingByte) {
		// The byte's meaning is not known; it is skipped, not
		// validated.
		if _, err := cursor.ReadUint8(); err != nil {
			return nil, err
		}
	}
	return cursor, nil
}

// newCursorAt builds a cursor over data with a version supplied out of
// band. Used by tests that exercise single field decoders.
func newCursorAt(data []byte, version Version) *Cursor {
	return &Cursor{data: data, version: version}
}

// Version returns the stream version read by NewCursor.
func (c *Cursor) Version() Version { return c.version }

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int { return c.offset }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.offset }

// take returns the next width bytes and advances past them.
func (c *Cursor) take(width int) ([]byte, error) {
	if width < 0 || width > c.Remaining() {
		return nil, newError(KindTruncatedStream, c.offset,
			"need %d bytes, %d remaining", width, c.Remaining())
	}
	field := c.data[c.offset : c.offset+width]
	c.offset += width
	return field, nil
}

// ReadUint8 reads one unsigned byte.
func (c *Cursor) ReadUint8() (uint8, error) {
	field, err := c.take(1)
	if err != nil {
		return 0, err
	}
	return field[0], nil
}

// ReadBool reads one byte; any non-zero value is true.
func (c *Cursor) ReadBool() (bool, error) {
	value, err := c.ReadUint8()
	return value != 0, err
}

// ReadUint16 reads a little-endian uint16.
func (c *Cursor) ReadUint16() (uint16, error) {
	field, err := c.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(field), nil
}

// ReadInt16 reads a little-endian two's-complement int16.
func (c *Cursor) ReadInt16() (int16, error) {
	value, err := c.ReadUint16()
	return int16(value), err
}

// ReadUint32 reads a little-endian uint32.
func (c *Cursor) ReadUint32() (uint32, error) {
	field, err := c.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(field), nil
}

// ReadInt32 reads a little-endian two's-complement int32.
func (c *Cursor) ReadInt32() (int32, error) {
	value, err := c.ReadUint32()
	return int32(value), err
}

// ReadFloat32 reads a little-endian IEEE 754 single.
func (c *Cursor) ReadFloat32() (float32, error) {
	value, err := c.ReadUint32()
	return math.Float32frombits(value), err
}

// ReadVarUint reads the format's variable-length unsigned integer:
// one byte below 255, otherwise 255 followed by a uint32.
func (c *Cursor) ReadVarUint() (uint32, error) {
	head, err := c.ReadUint8()
	if err != nil {
		return 0, err
	}
	if head < varUintEscape {
		return uint32(head), nil
	}
	return c.ReadUint32()
}

// ReadString reads a VarUint length followed by that many ASCII bytes.
// A length that overruns the buffer, or a byte outside 7-bit ASCII, is
// a KindMalformedText error.
func (c *Cursor) ReadString() (string, error) {
	start := c.offset
	length, err := c.ReadVarUint()
	if err != nil {
		return "", err
	}
	if uint64(length) > uint64(c.Remaining()) {
		return "", newError(KindMalformedText, start,
			"string length %d exceeds %d remaining bytes", length, c.Remaining())
	}
	field, _ := c.take(int(length))
	for index, b := range field {
		if b >= 0x80 {
			return "", newError(KindMalformedText, start,
				"non-ASCII byte 0x%02x at string position %d", b, index)
		}
	}
	return string(field), nil
}
