// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapstring

import (
	"fmt"
	"math"
	"strconv"

	"github.com/bureau-foundation/mapstring/lib/plain"
)

// decodeFunc reads one value from the cursor.
type decodeFunc func(*Cursor) (*Node, error)

// encodeFunc writes one plain value. Values have been through
// plain.Normalize, so numbers are int64 or float64 and objects are
// plain.Object.
type encodeFunc func(*Writer, any) error

// field is one row of a struct layout. A field whose since feature is
// not supported by the stream version is absent from the wire and from
// the decoded struct. A discarded field is read (it occupies stream
// space) but not kept; the encoder writes its zero value when the tree
// does not carry it.
type field struct {
	name    string
	since   Feature
	discard bool
	decode  decodeFunc
	encode  encodeFunc
}

// layout is an ordered struct layout.
type layout []field

func (l layout) decode(cursor *Cursor) (*Node, error) {
	fields := make([]Field, 0, len(l))
	for _, row := range l {
		if !cursor.version.Supports(row.since) {
			continue
		}
		value, err := row.decode(cursor)
		if err != nil {
			return nil, withPath(err, row.name)
		}
		if row.discard {
			continue
		}
		fields = append(fields, Field{Name: row.name, Value: value})
	}
	return Struct(fields...), nil
}

func (l layout) encode(writer *Writer, value any) error {
	object, ok := value.(plain.Object)
	if !ok {
		return fmt.Errorf("expected object, got %T", value)
	}
	for _, row := range l {
		if !writer.version.Supports(row.since) {
			continue
		}
		member, present := object.Get(row.name)
		if !present && !row.discard {
			return fmt.Errorf("missing field %q", row.name)
		}
		if err := row.encode(writer, member); err != nil {
			return fmt.Errorf("%s: %w", row.name, err)
		}
	}
	return nil
}

// The settings layouts, leaves first. Field names are the keys of the
// JSON document the map generator reads.

var frequencySizeRichnessLayout = layout{
	{name: "frequency", decode: decodeSize, encode: encodeSize},
	{name: "size", decode: decodeSize, encode: encodeSize},
	{name: "richness", decode: decodeSize, encode: encodeSize},
}

var autoplaceSettingsLayout = layout{
	{name: "treat_missing_as_default", decode: decodeBool, encode: encodeBool},
	{name: "settings", decode: mapOf(frequencySizeRichnessLayout.decode), encode: encodeMapOf(frequencySizeRichnessLayout.encode)},
}

var boundingBoxLayout = layout{
	{name: "left_top", decode: decodeMapPosition, encode: encodeMapPosition},
	{name: "right_bottom", decode: decodeMapPosition, encode: encodeMapPosition},
	{name: "orientation", decode: decodeFloat32, encode: encodeFloat32},
}

var cliffSettingsLayout = layout{
	{name: "name", decode: decodeText, encode: encodeText},
	{name: "cliff_elevation_0", decode: decodeFloat32, encode: encodeFloat32},
	{name: "cliff_elevation_interval", decode: decodeFloat32, encode: encodeFloat32},
	{name: "richness", since: FeatureCliffRichness, decode: decodeSize, encode: encodeSize},
}

var mapGenSettingsLayout = layout{
	{name: "terrain_segmentation", decode: decodeSize, encode: encodeSize},
	{name: "water", decode: decodeSize, encode: encodeSize},
	{name: "autoplace_controls", decode: mapOf(frequencySizeRichnessLayout.decode), encode: encodeMapOf(frequencySizeRichnessLayout.encode)},
	{name: "autoplace_settings", since: FeatureAutoplaceSettings, decode: mapOf(autoplaceSettingsLayout.decode), encode: encodeMapOf(autoplaceSettingsLayout.encode)},
	{name: "default_enable_all_autoplace_controls", since: FeatureAutoplaceSettings, decode: decodeBool, encode: encodeBool},
	{name: "seed", decode: decodeUint32, encode: encodeUint32},
	{name: "width", decode: decodeUint32, encode: encodeUint32},
	{name: "height", decode: decodeUint32, encode: encodeUint32},
	{name: "area_to_generate_at_start", since: FeatureStartingArea, discard: true, decode: boundingBoxLayout.decode, encode: encodeBoundingBox},
	{name: "starting_area", decode: decodeSize, encode: encodeSize},
	{name: "peaceful_mode", decode: decodeBool, encode: encodeBool},
	{name: "starting_points", since: FeatureStartingPoints, decode: listOf(decodeMapPosition), encode: encodeListOf(encodeMapPosition)},
	{name: "property_expression_names", since: FeatureStartingPoints, decode: mapOf(decodeText), encode: encodeMapOf(encodeText)},
	{name: "cliff_settings", since: FeatureStartingArea, decode: cliffSettingsLayout.decode, encode: cliffSettingsLayout.encode},
}

// Composites.

// mapOf decodes a VarUint count followed by (text key, value) pairs.
func mapOf(value decodeFunc) decodeFunc {
	return func(cursor *Cursor) (*Node, error) {
		count, err := cursor.ReadVarUint()
		if err != nil {
			return nil, err
		}
		// Every entry takes at least one byte, so the remaining length
		// bounds the allocation whatever the count claims.
		builder := newMapBuilder(min(int(count), cursor.Remaining()))
		for index := uint32(0); index < count; index++ {
			key, err := cursor.ReadString()
			if err != nil {
				return nil, withPath(err, fmt.Sprintf("[#%d]", index))
			}
			element, err := value(cursor)
			if err != nil {
				return nil, withPath(err, "["+key+"]")
			}
			builder.set(Entry{Key: Text(key), Value: element})
		}
		return builder.node(), nil
	}
}

// listOf decodes a VarUint count followed by that many items.
func listOf(item decodeFunc) decodeFunc {
	return func(cursor *Cursor) (*Node, error) {
		count, err := cursor.ReadVarUint()
		if err != nil {
			return nil, err
		}
		items := make([]*Node, 0, min(int(count), cursor.Remaining()))
		for index := uint32(0); index < count; index++ {
			element, err := item(cursor)
			if err != nil {
				return nil, withPath(err, fmt.Sprintf("[%d]", index))
			}
			items = append(items, element)
		}
		return List(items...), nil
	}
}

func encodeMapOf(value encodeFunc) encodeFunc {
	return func(writer *Writer, input any) error {
		object, ok := input.(plain.Object)
		if !ok {
			return fmt.Errorf("expected object, got %T", input)
		}
		writer.WriteVarUint(uint32(len(object)))
		for _, member := range object {
			if err := writer.WriteString(member.Key); err != nil {
				return err
			}
			if err := value(writer, member.Value); err != nil {
				return fmt.Errorf("[%s]: %w", member.Key, err)
			}
		}
		return nil
	}
}

func encodeListOf(item encodeFunc) encodeFunc {
	return func(writer *Writer, input any) error {
		items, ok := input.([]any)
		if !ok {
			return fmt.Errorf("expected list, got %T", input)
		}
		writer.WriteVarUint(uint32(len(items)))
		for index, element := range items {
			if err := item(writer, element); err != nil {
				return fmt.Errorf("[%d]: %w", index, err)
			}
		}
		return nil
	}
}

// Scalars.

// decodeSize reads a MapGenSize: an enumerated byte before
// FeatureFloatSize, a float32 from it on.
func decodeSize(cursor *Cursor) (*Node, error) {
	if cursor.version.Supports(FeatureFloatSize) {
		value, err := cursor.ReadFloat32()
		if err != nil {
			return nil, err
		}
		return Size(FloatSize(value)), nil
	}
	offset := cursor.offset
	code, err := cursor.ReadUint8()
	if err != nil {
		return nil, err
	}
	size, ok := EnumSize(code)
	if !ok {
		return nil, newError(KindSchemaMismatch, offset, "map gen size byte %d outside 0..%d", code, len(sizeLabels)-1)
	}
	return Size(size), nil
}

func encodeSize(writer *Writer, input any) error {
	if writer.version.Supports(FeatureFloatSize) {
		var value float64
		switch typed := input.(type) {
		case string:
			parsed, err := strconv.ParseFloat(typed, 32)
			if err != nil {
				return fmt.Errorf("map gen size %q is not a number", typed)
			}
			value = parsed
		default:
			number, ok := toFloat64(input)
			if !ok {
				return fmt.Errorf("expected map gen size, got %T", input)
			}
			value = number
		}
		writer.WriteFloat32(float32(value))
		return nil
	}
	label, ok := input.(string)
	if !ok {
		return fmt.Errorf("expected map gen size label, got %T", input)
	}
	size, ok := SizeFromLabel(label)
	if !ok {
		return fmt.Errorf("unknown map gen size label %q", label)
	}
	writer.WriteUint8(size.Code())
	return nil
}

func decodeBool(cursor *Cursor) (*Node, error) {
	value, err := cursor.ReadBool()
	if err != nil {
		return nil, err
	}
	return Bool(value), nil
}

func encodeBool(writer *Writer, input any) error {
	value, ok := input.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", input)
	}
	writer.WriteBool(value)
	return nil
}

func decodeUint32(cursor *Cursor) (*Node, error) {
	value, err := cursor.ReadUint32()
	if err != nil {
		return nil, err
	}
	return Int(int64(value)), nil
}

func encodeUint32(writer *Writer, input any) error {
	value, ok := toInt64(input)
	if !ok || value < 0 || value > math.MaxUint32 {
		return fmt.Errorf("expected unsigned 32-bit integer, got %v", input)
	}
	writer.WriteUint32(uint32(value))
	return nil
}

func decodeFloat32(cursor *Cursor) (*Node, error) {
	value, err := cursor.ReadFloat32()
	if err != nil {
		return nil, err
	}
	return Float(plain.WidenFloat32(value)), nil
}

func encodeFloat32(writer *Writer, input any) error {
	value, ok := toFloat64(input)
	if !ok {
		return fmt.Errorf("expected number, got %T", input)
	}
	writer.WriteFloat32(float32(value))
	return nil
}

func decodeText(cursor *Cursor) (*Node, error) {
	value, err := cursor.ReadString()
	if err != nil {
		return nil, err
	}
	return Text(value), nil
}

func encodeText(writer *Writer, input any) error {
	value, ok := input.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", input)
	}
	return writer.WriteString(value)
}

// Positions.

// positionEscape marks an absolute MapPosition: two fixed-point
// coordinates follow instead of a second int16.
const positionEscape = 32767

// coordinateScale is the fixed-point denominator: 8 fractional bits.
const coordinateScale = 256

// decodeCoordinate reads an int32 fixed-point coordinate.
func decodeCoordinate(cursor *Cursor) (float64, error) {
	raw, err := cursor.ReadInt32()
	if err != nil {
		return 0, err
	}
	return float64(raw) / coordinateScale, nil
}

// decodeMapPosition reads a position in one of two encodings. After
// the escape value the components are absolute fixed-point
// coordinates. Otherwise the int16 just read and one more int16 are
// the components. Whether the compact pair is relative to some earlier
// position is not known; it is reported as read.
func decodeMapPosition(cursor *Cursor) (*Node, error) {
	head, err := cursor.ReadInt16()
	if err != nil {
		return nil, err
	}
	if head == positionEscape {
		x, err := decodeCoordinate(cursor)
		if err != nil {
			return nil, withPath(err, "x")
		}
		y, err := decodeCoordinate(cursor)
		if err != nil {
			return nil, withPath(err, "y")
		}
		return Struct(Field{Name: "x", Value: Float(x)}, Field{Name: "y", Value: Float(y)}), nil
	}
	second, err := cursor.ReadInt16()
	if err != nil {
		return nil, withPath(err, "y")
	}
	return Struct(Field{Name: "x", Value: Int(int64(head))}, Field{Name: "y", Value: Int(int64(second))}), nil
}

// encodeMapPosition writes integer components that fit the compact
// form compactly and everything else as fixed-point coordinates, so a
// decoded position re-encodes to the same form.
func encodeMapPosition(writer *Writer, input any) error {
	object, ok := input.(plain.Object)
	if !ok {
		return fmt.Errorf("expected position object, got %T", input)
	}
	xValue, xPresent := object.Get("x")
	yValue, yPresent := object.Get("y")
	if !xPresent || !yPresent {
		return fmt.Errorf("position needs x and y")
	}

	xInt, xIsInt := xValue.(int64)
	yInt, yIsInt := yValue.(int64)
	if xIsInt && yIsInt && fitsInt16(xInt) && fitsInt16(yInt) && xInt != positionEscape {
		writer.WriteInt16(int16(xInt))
		writer.WriteInt16(int16(yInt))
		return nil
	}

	x, xOK := toFloat64(xValue)
	y, yOK := toFloat64(yValue)
	if !xOK || !yOK {
		return fmt.Errorf("position components must be numbers")
	}
	xFixed, err := toFixedPoint(x)
	if err != nil {
		return fmt.Errorf("x: %w", err)
	}
	yFixed, err := toFixedPoint(y)
	if err != nil {
		return fmt.Errorf("y: %w", err)
	}
	writer.WriteInt16(positionEscape)
	writer.WriteInt32(xFixed)
	writer.WriteInt32(yFixed)
	return nil
}

// encodeBoundingBox writes a bounding box, or a zero box when the tree
// does not carry one (the decoder discards it).
func encodeBoundingBox(writer *Writer, input any) error {
	if input == nil {
		zero := plain.Object{{Key: "x", Value: int64(0)}, {Key: "y", Value: int64(0)}}
		input = plain.Object{
			{Key: "left_top", Value: zero},
			{Key: "right_bottom", Value: zero},
			{Key: "orientation", Value: float64(0)},
		}
	}
	return boundingBoxLayout.encode(writer, input)
}

func fitsInt16(value int64) bool {
	return value >= math.MinInt16 && value <= math.MaxInt16
}

func toFixedPoint(value float64) (int32, error) {
	scaled := math.Round(value * coordinateScale)
	if math.IsNaN(scaled) || scaled < math.MinInt32 || scaled > math.MaxInt32 {
		return 0, fmt.Errorf("coordinate %v out of range", value)
	}
	return int32(scaled), nil
}

// toInt64 accepts int64 and integral float64 (what a JSON decoder
// produces for integers).
func toInt64(value any) (int64, bool) {
	switch typed := value.(type) {
	case int64:
		return typed, true
	case float64:
		if typed != math.Trunc(typed) || math.Abs(typed) > 1<<53 {
			return 0, false
		}
		return int64(typed), true
	default:
		return 0, false
	}
}

// toFloat64 accepts int64, float64 and the strings the JSON sink
// writes for non-finite floats.
func toFloat64(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case int64:
		return float64(typed), true
	case string:
		switch typed {
		case "NaN":
			return math.NaN(), true
		case "Infinity":
			return math.Inf(1), true
		case "-Infinity":
			return math.Inf(-1), true
		}
		return 0, false
	default:
		return 0, false
	}
}
