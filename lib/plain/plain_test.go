// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plain

import (
	"math"
	"reflect"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

func TestObjectSetAndGet(t *testing.T) {
	var object Object
	object.Set("water", "normal")
	object.Set("seed", int64(1))
	object.Set("water", "high")

	if got := object.Keys(); !reflect.DeepEqual(got, []string{"water", "seed"}) {
		t.Errorf("Keys = %v", got)
	}
	if value, ok := object.Get("water"); !ok || value != "high" {
		t.Errorf("Get(water) = %v, %v", value, ok)
	}
	if _, ok := object.Get("height"); ok {
		t.Error("Get(height) found a missing key")
	}
}

func TestNormalize(t *testing.T) {
	input := map[string]any{
		"width":  2222,
		"height": uint32(3333),
		"ratio":  float32(0.1),
		"seed":   json.Number("123370734"),
		"scale":  json.Number("1.5"),
		"points": []any{map[string]any{"y": int16(-4), "x": int8(3)}},
		"name":   "cliff",
		"flag":   true,
		"none":   nil,
	}
	got, err := Normalize(input)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := Object{
		{Key: "flag", Value: true},
		{Key: "height", Value: int64(3333)},
		{Key: "name", Value: "cliff"},
		{Key: "none", Value: nil},
		{Key: "points", Value: []any{Object{{Key: "x", Value: int64(3)}, {Key: "y", Value: int64(-4)}}}},
		{Key: "ratio", Value: float64(0.1)},
		{Key: "scale", Value: float64(1.5)},
		{Key: "seed", Value: int64(123370734)},
		{Key: "width", Value: int64(2222)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize\n got: %#v\nwant: %#v", got, want)
	}

	again, err := Normalize(got)
	if err != nil {
		t.Fatalf("Normalize of a plain tree: %v", err)
	}
	if !reflect.DeepEqual(again, got) {
		t.Error("Normalize is not idempotent")
	}
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "channel", value: make(chan int)},
		{name: "int-keyed map", value: map[int]string{1: "a"}},
		{name: "nested func", value: []any{func() {}}},
		{name: "uint64 overflow", value: uint64(1) << 63},
		{name: "invalid number", value: json.Number("1.2.3")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Normalize(tt.value); err == nil {
				t.Errorf("Normalize(%T) succeeded", tt.value)
			}
		})
	}
}

func TestWidenFloat32(t *testing.T) {
	tests := []struct {
		input float32
		want  float64
	}{
		{input: 0.1, want: 0.1},
		{input: 1024, want: 1024},
		{input: -2.5, want: -2.5},
		{input: 1.0 / 3.0, want: 0.33333334},
	}
	for _, tt := range tests {
		if got := WidenFloat32(tt.input); got != tt.want {
			t.Errorf("WidenFloat32(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	tree := Object{
		{Key: "autoplace_controls", Value: Object{
			{Key: "coal", Value: Object{{Key: "size", Value: "high"}}},
		}},
		{Key: "starting_points", Value: []any{
			Object{{Key: "x", Value: int64(7)}},
		}},
	}
	tests := []struct {
		path   string
		want   any
		wantOK bool
	}{
		{path: "autoplace_controls.coal.size", want: "high", wantOK: true},
		{path: "starting_points.0.x", want: int64(7), wantOK: true},
		{path: "starting_points.1.x", wantOK: false},
		{path: "starting_points.first", wantOK: false},
		{path: "autoplace_controls.iron-ore", wantOK: false},
		{path: "autoplace_controls.coal.size.extra", wantOK: false},
	}
	for _, tt := range tests {
		got, ok := Lookup(tree, tt.path)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("Lookup(%q) = %v, %v; want %v, %v", tt.path, got, ok, tt.want, tt.wantOK)
		}
	}
	if got, ok := Lookup(tree, ""); !ok || !reflect.DeepEqual(got, tree) {
		t.Error("Lookup of the empty path does not return the tree")
	}
}

func TestObjectMarshalJSONOrder(t *testing.T) {
	object := Object{
		{Key: "water", Value: "low"},
		{Key: "autoplace_controls", Value: Object{{Key: "stone", Value: int64(1)}, {Key: "coal", Value: int64(2)}}},
		{Key: "points", Value: []any{}},
	}
	data, err := json.Marshal(object)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"water":"low","autoplace_controls":{"stone":1,"coal":2},"points":[]}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestObjectMarshalYAMLOrder(t *testing.T) {
	object := Object{
		{Key: "water", Value: "low"},
		{Key: "seed", Value: int64(9)},
		{Key: "autoplace_controls", Value: Object{{Key: "stone", Value: true}}},
	}
	data, err := yaml.Marshal(object)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := "water: low\nseed: 9\nautoplace_controls:\n    stone: true\n"
	if string(data) != want {
		t.Errorf("Marshal = %q, want %q", data, want)
	}
}

func TestToMaps(t *testing.T) {
	tree := Object{
		{Key: "list", Value: []any{Object{{Key: "x", Value: int64(1)}}}},
	}
	got := ToMaps(tree)
	want := map[string]any{"list": []any{map[string]any{"x": int64(1)}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToMaps = %#v", got)
	}
	if strings.Contains(reflect.TypeOf(got).String(), "Object") {
		t.Error("ToMaps left an Object at the root")
	}
}

func TestJSONValueNonFinite(t *testing.T) {
	tests := []struct {
		name string
		tree any
		want string
	}{
		{name: "NaN", tree: math.NaN(), want: `"NaN"`},
		{name: "negative infinity", tree: math.Inf(-1), want: `"-Infinity"`},
		{name: "list", tree: []any{float64(1.5), math.Inf(1), []any{math.NaN()}}, want: `[1.5,"Infinity",["NaN"]]`},
		{name: "finite", tree: float64(0.25), want: `0.25`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(JSONValue(tt.tree))
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestObjectMarshalJSONNonFinite(t *testing.T) {
	object := Object{
		{Key: "elevation", Value: math.NaN()},
		{Key: "points", Value: []any{Object{{Key: "x", Value: math.Inf(-1)}}}},
	}
	data, err := json.Marshal(object)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"elevation":"NaN","points":[{"x":"-Infinity"}]}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}
