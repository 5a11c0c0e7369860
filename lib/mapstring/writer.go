// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapstring

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
)

// Writer is the inverse of Cursor: it appends little-endian fields to
// a growing buffer. NewWriter writes the version header (and the
// padding byte for versions that carry it) so the output is readable
// by NewCursor.
type Writer struct {
	buffer  []byte
	version Version
}

// NewWriter starts a stream for version.
func NewWriter(version Version) *Writer {
	writer := &Writer{version: version}
	for _, component := range version {
		writer.WriteUint16(component)
	}
	if version.Supports(FeaturePaddingByte) {
		writer.WriteUint8(0)
	}
	return writer
}

// Version returns the version the stream is being written for.
func (w *Writer) Version() Version { return w.version }

// Bytes returns the bytes written so far. The slice aliases the
// writer's buffer.
func (w *Writer) Bytes() []byte { return w.buffer }

func (w *Writer) WriteUint8(value uint8) { w.buffer = append(w.buffer, value) }

func (w *Writer) WriteBool(value bool) {
	if value {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
}

func (w *Writer) WriteUint16(value uint16) {
	w.buffer = binary.LittleEndian.AppendUint16(w.buffer, value)
}

func (w *Writer) WriteInt16(value int16) { w.WriteUint16(uint16(value)) }

func (w *Writer) WriteUint32(value uint32) {
	w.buffer = binary.LittleEndian.AppendUint32(w.buffer, value)
}

func (w *Writer) WriteInt32(value int32) { w.WriteUint32(uint32(value)) }

func (w *Writer) WriteFloat32(value float32) { w.WriteUint32(math.Float32bits(value)) }

// WriteVarUint writes value in one byte when it is below 255 and in
// five bytes (255, then a uint32) otherwise.
func (w *Writer) WriteVarUint(value uint32) {
	if value < varUintEscape {
		w.WriteUint8(uint8(value))
		return
	}
	w.WriteUint8(varUintEscape)
	w.WriteUint32(value)
}

// WriteString writes a VarUint length and the ASCII bytes of text.
func (w *Writer) WriteString(text string) error {
	for index := 0; index < len(text); index++ {
		if text[index] >= 0x80 {
			return fmt.Errorf("string %q is not ASCII", text)
		}
	}
	w.WriteVarUint(uint32(len(text)))
	w.buffer = append(w.buffer, text...)
	return nil
}

// Seal appends the CRC-32 trailer and returns the finished stream.
func (w *Writer) Seal() []byte {
	return binary.LittleEndian.AppendUint32(w.buffer, crc32.ChecksumIEEE(w.buffer))
}

// checksumLength is the size of the CRC-32 trailer.
const checksumLength = 4

// verifyChecksum checks the CRC-32 trailer of raw.
func verifyChecksum(raw []byte) error {
	if len(raw) < checksumLength {
		return newError(KindTruncatedStream, len(raw), "stream too short for checksum trailer")
	}
	body := raw[:len(raw)-checksumLength]
	stored := binary.LittleEndian.Uint32(raw[len(body):])
	if computed := crc32.ChecksumIEEE(body); computed != stored {
		return newError(KindChecksum, len(body), "stored CRC-32 %08x, computed %08x", stored, computed)
	}
	return nil
}
