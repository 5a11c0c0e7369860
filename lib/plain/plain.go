// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package plain

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is an ordered string-keyed map. Keys are unique when built
// through Set; literal Objects are trusted as given.
type Object []Member

// Get returns the value stored under key.
func (o Object) Get(key string) (any, bool) {
	for _, member := range o {
		if member.Key == key {
			return member.Value, true
		}
	}
	return nil, false
}

// Set replaces the value under key in place, or appends a new member
// when key is absent.
func (o *Object) Set(key string, value any) {
	for index := range *o {
		if (*o)[index].Key == key {
			(*o)[index].Value = value
			return
		}
	}
	*o = append(*o, Member{Key: key, Value: value})
}

// Keys returns the member keys in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for index, member := range o {
		keys[index] = member.Key
	}
	return keys
}

// Map converts o, recursively, into map[string]any. Member order is
// lost; use it for consumers that need stock Go maps.
func (o Object) Map() map[string]any {
	result := make(map[string]any, len(o))
	for _, member := range o {
		result[member.Key] = ToMaps(member.Value)
	}
	return result
}

// ToMaps returns value with every Object replaced by map[string]any.
func ToMaps(value any) any {
	switch typed := value.(type) {
	case Object:
		return typed.Map()
	case []any:
		items := make([]any, len(typed))
		for index, item := range typed {
			items[index] = ToMaps(item)
		}
		return items
	default:
		return value
	}
}

// MarshalJSON writes the members in order. Non-finite floats, which
// JSON cannot express as numbers, are written as the strings "NaN",
// "Infinity" and "-Infinity".
func (o Object) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for index, member := range o {
		if index > 0 {
			buffer.WriteByte(',')
		}
		key, err := json.Marshal(member.Key)
		if err != nil {
			return nil, err
		}
		buffer.Write(key)
		buffer.WriteByte(':')
		value, err := marshalJSONValue(member.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", member.Key, err)
		}
		buffer.Write(value)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// JSONValue wraps a plain tree so that encoding it follows the rules
// of Object.MarshalJSON at every level, including a bare list or float
// at the top.
func JSONValue(tree any) json.Marshaler {
	return jsonValue{tree}
}

type jsonValue struct{ tree any }

func (v jsonValue) MarshalJSON() ([]byte, error) {
	return marshalJSONValue(v.tree)
}

// nonFiniteText returns the JSON string form of a NaN or infinite
// value, and false for finite ones.
func nonFiniteText(value float64) (string, bool) {
	switch {
	case math.IsNaN(value):
		return "NaN", true
	case math.IsInf(value, 1):
		return "Infinity", true
	case math.IsInf(value, -1):
		return "-Infinity", true
	default:
		return "", false
	}
}

func marshalJSONValue(value any) ([]byte, error) {
	switch typed := value.(type) {
	case float64:
		if text, ok := nonFiniteText(typed); ok {
			return json.Marshal(text)
		}
	case []any:
		var buffer bytes.Buffer
		buffer.WriteByte('[')
		for index, item := range typed {
			if index > 0 {
				buffer.WriteByte(',')
			}
			encoded, err := marshalJSONValue(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", index, err)
			}
			buffer.Write(encoded)
		}
		buffer.WriteByte(']')
		return buffer.Bytes(), nil
	}
	return json.Marshal(value)
}

// MarshalYAML returns a mapping node with the members in order.
func (o Object) MarshalYAML() (any, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, member := range o {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: member.Key}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(member.Value); err != nil {
			return nil, fmt.Errorf("%s: %w", member.Key, err)
		}
		mapping.Content = append(mapping.Content, keyNode, valueNode)
	}
	return mapping, nil
}

// Normalize converts loosely typed data into a plain tree:
// map[string]any becomes an Object with keys sorted, integer kinds
// become int64, float32 becomes float64, json.Number becomes int64 when
// integral and float64 otherwise. Plain input is returned unchanged
// in value. Unsupported types (channels, funcs, non-string map keys)
// are an error.
func Normalize(value any) (any, error) {
	switch typed := value.(type) {
	case nil, bool, string, int64, float64:
		return typed, nil
	case Object:
		result := make(Object, 0, len(typed))
		for _, member := range typed {
			normalized, err := Normalize(member.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", member.Key, err)
			}
			result = append(result, Member{Key: member.Key, Value: normalized})
		}
		return result, nil
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		result := make(Object, 0, len(typed))
		for _, key := range keys {
			normalized, err := Normalize(typed[key])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			result = append(result, Member{Key: key, Value: normalized})
		}
		return result, nil
	case []any:
		result := make([]any, len(typed))
		for index, item := range typed {
			normalized, err := Normalize(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", index, err)
			}
			result[index] = normalized
		}
		return result, nil
	case float32:
		return WidenFloat32(typed), nil
	case json.Number:
		if integer, err := typed.Int64(); err == nil {
			return integer, nil
		}
		float, err := typed.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", typed, err)
		}
		return float, nil
	}

	reflected := reflect.ValueOf(value)
	switch reflected.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflected.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		unsigned := reflected.Uint()
		if unsigned > math.MaxInt64 {
			return nil, fmt.Errorf("integer %d overflows int64", unsigned)
		}
		return int64(unsigned), nil
	case reflect.Float32, reflect.Float64:
		return reflected.Float(), nil
	case reflect.String:
		return reflected.String(), nil
	case reflect.Bool:
		return reflected.Bool(), nil
	}
	return nil, fmt.Errorf("unsupported plain value of type %T", value)
}

// WidenFloat32 converts value to float64 through its shortest decimal
// representation, so 0.1f becomes 0.1 rather than 0.10000000149011612.
func WidenFloat32(value float32) float64 {
	widened, err := strconv.ParseFloat(strconv.FormatFloat(float64(value), 'g', -1, 32), 64)
	if err != nil {
		// NaN and infinities format as text ParseFloat accepts; this
		// branch is unreachable for any float32.
		return float64(value)
	}
	return widened
}

// Lookup follows a dotted path ("autoplace_controls.coal.size") through
// nested Objects. Numeric segments index into lists.
func Lookup(tree any, path string) (any, bool) {
	current := tree
	if path == "" {
		return current, true
	}
	for _, segment := range strings.Split(path, ".") {
		switch typed := current.(type) {
		case Object:
			value, ok := typed.Get(segment)
			if !ok {
				return nil, false
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(typed) {
				return nil, false
			}
			current = typed[index]
		default:
			return nil, false
		}
	}
	return current, true
}
