// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapstring

import (
	"errors"
	"math"
	"testing"
)

func TestVarUintRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 254, 255, 256, 1000, 65535, 1 << 24, math.MaxInt32, math.MaxUint32}
	for _, value := range values {
		writer := &Writer{}
		writer.WriteVarUint(value)
		encoded := writer.Bytes()

		if value < 255 {
			if len(encoded) != 1 {
				t.Errorf("VarUint(%d) is %d bytes, want 1", value, len(encoded))
			}
		} else {
			if len(encoded) != 5 {
				t.Errorf("VarUint(%d) is %d bytes, want 5", value, len(encoded))
			}
			if encoded[0] != 255 {
				t.Errorf("VarUint(%d) leading byte = %d, want 255", value, encoded[0])
			}
		}

		cursor := newCursorAt(encoded, Version{})
		got, err := cursor.ReadVarUint()
		if err != nil {
			t.Fatalf("ReadVarUint(%d): %v", value, err)
		}
		if got != value {
			t.Errorf("ReadVarUint = %d, want %d", got, value)
		}
		if cursor.Remaining() != 0 {
			t.Errorf("VarUint(%d) left %d bytes unread", value, cursor.Remaining())
		}
	}
}

func TestCursorFixedWidthReads(t *testing.T) {
	writer := &Writer{}
	writer.WriteUint8(0xab)
	writer.WriteBool(true)
	writer.WriteInt16(-2)
	writer.WriteUint32(0xdeadbeef)
	writer.WriteInt32(-70000)
	writer.WriteFloat32(1.25)

	cursor := newCursorAt(writer.Bytes(), Version{})

	if value, err := cursor.ReadUint8(); err != nil || value != 0xab {
		t.Errorf("ReadUint8 = %#x, %v", value, err)
	}
	if value, err := cursor.ReadBool(); err != nil || !value {
		t.Errorf("ReadBool = %v, %v", value, err)
	}
	if value, err := cursor.ReadInt16(); err != nil || value != -2 {
		t.Errorf("ReadInt16 = %d, %v", value, err)
	}
	if cursor.Offset() != 4 {
		t.Errorf("Offset = %d, want 4", cursor.Offset())
	}
	if value, err := cursor.ReadUint32(); err != nil || value != 0xdeadbeef {
		t.Errorf("ReadUint32 = %#x, %v", value, err)
	}
	if value, err := cursor.ReadInt32(); err != nil || value != -70000 {
		t.Errorf("ReadInt32 = %d, %v", value, err)
	}
	if value, err := cursor.ReadFloat32(); err != nil || value != 1.25 {
		t.Errorf("ReadFloat32 = %v, %v", value, err)
	}
	if cursor.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", cursor.Remaining())
	}
}

func TestCursorTruncation(t *testing.T) {
	cursor := newCursorAt([]byte{1, 2, 3}, Version{})
	if _, err := cursor.ReadUint16(); err != nil {
		t.Fatalf("ReadUint16: %v", err)
	}

	_, err := cursor.ReadUint32()
	if !errors.Is(err, ErrTruncatedStream) {
		t.Fatalf("ReadUint32 past end: got %v, want truncated stream", err)
	}
	var decodeError *Error
	if !errors.As(err, &decodeError) || decodeError.Offset != 2 {
		t.Errorf("error = %#v, want offset 2", err)
	}
	if cursor.Offset() != 2 {
		t.Errorf("failed read advanced the cursor to %d", cursor.Offset())
	}
}

func TestReadString(t *testing.T) {
	writer := &Writer{}
	if err := writer.WriteString("iron-ore"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	cursor := newCursorAt(writer.Bytes(), Version{})
	got, err := cursor.ReadString()
	if err != nil {
		t.Fatalf("ReadString: %v", err)
	}
	if got != "iron-ore" {
		t.Errorf("ReadString = %q, want %q", got, "iron-ore")
	}
}

func TestReadStringMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		kind *Error
	}{
		{name: "length overruns buffer", data: []byte{5, 'a', 'b'}, kind: ErrMalformedText},
		{name: "long length overruns buffer", data: []byte{255, 0, 0, 0, 1, 'a'}, kind: ErrMalformedText},
		{name: "non-ASCII byte", data: []byte{2, 'a', 0xc3}, kind: ErrMalformedText},
		{name: "missing length", data: nil, kind: ErrTruncatedStream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newCursorAt(tt.data, Version{}).ReadString()
			if !errors.Is(err, tt.kind) {
				t.Errorf("ReadString = %v, want %s", err, tt.kind.Kind)
			}
		})
	}
}

func TestWriteStringRejectsNonASCII(t *testing.T) {
	writer := &Writer{}
	if err := writer.WriteString("größe"); err == nil {
		t.Error("WriteString accepted non-ASCII text")
	}
	if len(writer.Bytes()) != 0 {
		t.Errorf("rejected string wrote %d bytes", len(writer.Bytes()))
	}
}

func TestNewCursorVersionHeader(t *testing.T) {
	t.Run("without padding byte", func(t *testing.T) {
		raw := NewWriter(Version{0, 16, 36, 2}).Bytes()
		cursor, err := NewCursor(raw)
		if err != nil {
			t.Fatalf("NewCursor: %v", err)
		}
		if cursor.Version() != (Version{0, 16, 36, 2}) {
			t.Errorf("Version = %s", cursor.Version())
		}
		if cursor.Offset() != 8 {
			t.Errorf("Offset = %d, want 8", cursor.Offset())
		}
	})

	t.Run("with padding byte", func(t *testing.T) {
		raw := NewWriter(Version{0, 17, 50, 0}).Bytes()
		cursor, err := NewCursor(raw)
		if err != nil {
			t.Fatalf("NewCursor: %v", err)
		}
		if cursor.Offset() != 9 {
			t.Errorf("Offset = %d, want 9", cursor.Offset())
		}
	})

	t.Run("truncated header", func(t *testing.T) {
		_, err := NewCursor([]byte{0, 0, 17, 0, 0})
		if !errors.Is(err, ErrTruncatedStream) {
			t.Errorf("NewCursor = %v, want truncated stream", err)
		}
	})

	t.Run("missing padding byte", func(t *testing.T) {
		raw := NewWriter(Version{0, 17, 0, 0}).Bytes()
		_, err := NewCursor(raw[:8])
		if !errors.Is(err, ErrTruncatedStream) {
			t.Errorf("NewCursor = %v, want truncated stream", err)
		}
	})
}
