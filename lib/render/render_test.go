// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/bureau-foundation/mapstring/lib/codec"
	"github.com/bureau-foundation/mapstring/lib/mapstring"
	"github.com/bureau-foundation/mapstring/lib/plain"
	"github.com/bureau-foundation/mapstring/lib/testutil"
)

func sampleTree() plain.Object {
	return plain.Object{
		{Key: "water", Value: "very-low"},
		{Key: "seed", Value: int64(123370734)},
		{Key: "peaceful_mode", Value: true},
		{Key: "starting_points", Value: []any{
			plain.Object{{Key: "x", Value: float64(0.5)}, {Key: "y", Value: int64(-3)}},
		}},
		{Key: "autoplace_settings", Value: plain.Object{}},
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{name: "json", want: FormatJSON},
		{name: "JSON", want: FormatJSON},
		{name: " lua ", want: FormatLua},
		{name: "yaml", want: FormatYAML},
		{name: "yml", want: FormatYAML},
		{name: "cbor", want: FormatCBOR},
	}
	for _, tt := range tests {
		renderer, err := Lookup(tt.name)
		if err != nil {
			t.Errorf("Lookup(%q): %v", tt.name, err)
			continue
		}
		if renderer.Format() != tt.want {
			t.Errorf("Lookup(%q) = %s, want %s", tt.name, renderer.Format(), tt.want)
		}
	}

	_, err := Lookup("toml")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Lookup(toml) = %v, want ErrUnknownFormat", err)
	}
	if !strings.Contains(err.Error(), "cbor, json, lua, yaml") {
		t.Errorf("error does not list formats: %v", err)
	}
}

func TestFormats(t *testing.T) {
	want := []Format{FormatCBOR, FormatJSON, FormatLua, FormatYAML}
	if got := Formats(); !reflect.DeepEqual(got, want) {
		t.Errorf("Formats = %v, want %v", got, want)
	}
	for _, format := range Formats() {
		renderer, _ := Lookup(string(format))
		if !strings.HasPrefix(renderer.Extension(), ".") {
			t.Errorf("%s extension %q lacks a dot", format, renderer.Extension())
		}
		if renderer.Binary() != (format == FormatCBOR) {
			t.Errorf("%s Binary = %v", format, renderer.Binary())
		}
	}
}

func TestRenderJSON(t *testing.T) {
	output, err := Bytes(sampleTree(), FormatJSON)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	text := string(output)

	if !strings.HasSuffix(text, "}\n") {
		t.Errorf("output lacks trailing newline: %q", text)
	}
	if !strings.Contains(text, "\n  \"water\": \"very-low\"") {
		t.Errorf("output not indented:\n%s", text)
	}
	previous := -1
	for _, key := range sampleTree().Keys() {
		position := strings.Index(text, `"`+key+`"`)
		if position <= previous {
			t.Errorf("key %q out of order in:\n%s", key, text)
		}
		previous = position
	}

	var decoded map[string]any
	if err := json.Unmarshal(output, &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["seed"] != float64(123370734) || decoded["peaceful_mode"] != true {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestRenderYAML(t *testing.T) {
	tree := plain.Object{
		{Key: "water", Value: "very-low"},
		{Key: "seed", Value: int64(42)},
		{Key: "cliff_settings", Value: plain.Object{
			{Key: "name", Value: "cliff"},
			{Key: "cliff_elevation_0", Value: float64(10.5)},
		}},
		{Key: "starting_points", Value: []any{
			plain.Object{{Key: "x", Value: int64(1)}, {Key: "y", Value: int64(2)}},
		}},
		{Key: "autoplace_settings", Value: plain.Object{}},
	}
	output, err := Bytes(tree, FormatYAML)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	want := `water: very-low
seed: 42
cliff_settings:
  name: cliff
  cliff_elevation_0: 10.5
starting_points:
  - x: 1
    y: 2
autoplace_settings: {}
`
	if string(output) != want {
		t.Errorf("YAML output:\n%s\nwant:\n%s", output, want)
	}
}

func TestRenderCBOR(t *testing.T) {
	output, err := Bytes(sampleTree(), FormatCBOR)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	var decoded any
	if err := codec.Unmarshal(output, &decoded); err != nil {
		t.Fatalf("output is not CBOR: %v", err)
	}
	got, err := plain.Normalize(decoded)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want, _ := plain.Normalize(plain.ToMaps(sampleTree()))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CBOR round trip\n got: %#v\nwant: %#v", got, want)
	}
}

func TestRenderNormalizesInput(t *testing.T) {
	loose := map[string]any{
		"width":  2222,
		"height": uint16(3333),
	}
	output, err := Bytes(loose, FormatLua)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	want := "{\n  [\"height\"] = 3333,\n  [\"width\"] = 2222,\n}\n"
	if string(output) != want {
		t.Errorf("output = %q, want %q", output, want)
	}
}

func TestRenderUnsupportedValue(t *testing.T) {
	for _, format := range Formats() {
		_, err := Bytes(plain.Object{{Key: "callback", Value: func() {}}}, format)
		if err == nil {
			t.Errorf("%s rendered a func value", format)
		}
	}
}

// nonFiniteSettings decodes the fixture string after re-encoding it
// with a NaN cliff elevation and an infinite cliff interval.
func nonFiniteSettings(t *testing.T) plain.Object {
	t.Helper()
	fixture, err := mapstring.Decode(testutil.ExchangeString)
	if err != nil {
		t.Fatalf("Decode fixture: %v", err)
	}
	tree := fixture.Tree()
	cliffs, _ := tree.Get("cliff_settings")
	edited := append(plain.Object(nil), cliffs.(plain.Object)...)
	edited.Set("cliff_elevation_0", math.NaN())
	edited.Set("cliff_elevation_interval", math.Inf(1))
	tree.Set("cliff_settings", edited)

	text, err := mapstring.Encode(tree, fixture.Version)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	result, err := mapstring.Decode(text)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return result.Tree()
}

func TestRenderNonFiniteFloats(t *testing.T) {
	tree := nonFiniteSettings(t)
	for _, format := range Formats() {
		output, err := Bytes(tree, format)
		if err != nil {
			t.Errorf("%s: %v", format, err)
			continue
		}
		if len(output) == 0 {
			t.Errorf("%s: empty output", format)
		}
	}

	output, err := Bytes(tree, FormatJSON)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(output, &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, output)
	}
	cliffs, _ := decoded["cliff_settings"].(map[string]any)
	if cliffs["cliff_elevation_0"] != "NaN" || cliffs["cliff_elevation_interval"] != "Infinity" {
		t.Errorf("cliff_settings = %v", cliffs)
	}
}

func TestRenderNonFiniteJSONEncodesAgain(t *testing.T) {
	output, err := Bytes(nonFiniteSettings(t), FormatJSON)
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	decoder := json.NewDecoder(bytes.NewReader(output))
	decoder.UseNumber()
	var loose any
	if err := decoder.Decode(&loose); err != nil {
		t.Fatalf("Decode JSON: %v", err)
	}
	tree, err := plain.Normalize(loose)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	text, err := mapstring.Encode(tree, mapstring.Version{0, 16, 36, 2})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	result, err := mapstring.Decode(text)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	elevation, _ := plain.Lookup(result.Tree(), "cliff_settings.cliff_elevation_0")
	interval, _ := plain.Lookup(result.Tree(), "cliff_settings.cliff_elevation_interval")
	if value, ok := elevation.(float64); !ok || !math.IsNaN(value) {
		t.Errorf("cliff_elevation_0 = %v, want NaN", elevation)
	}
	if value, ok := interval.(float64); !ok || !math.IsInf(value, 1) {
		t.Errorf("cliff_elevation_interval = %v, want +Inf", interval)
	}
}
