// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapstring

import "github.com/bureau-foundation/mapstring/lib/plain"

// Native projects a decoded tree into a plain tree:
//
//   - struct → plain.Object in field order
//   - map → plain.Object in entry order, keyed by the key's text
//   - list → []any
//   - scalar → int64, float64, bool or string; a MapGenSize is always
//     its display text ("normal", or "1.5" for float sizes)
//
// Values that are already plain pass through structurally unchanged,
// so Native(Native(x)) equals Native(x).
func Native(value any) any {
	switch typed := value.(type) {
	case *Node:
		if typed == nil {
			return nil
		}
		return nativeNode(typed)
	case plain.Object:
		result := make(plain.Object, len(typed))
		for index, member := range typed {
			result[index] = plain.Member{Key: member.Key, Value: Native(member.Value)}
		}
		return result
	case []any:
		result := make([]any, len(typed))
		for index, item := range typed {
			result[index] = Native(item)
		}
		return result
	default:
		return value
	}
}

func nativeNode(node *Node) any {
	switch node.kind {
	case KindStruct:
		result := make(plain.Object, len(node.fields))
		for index, field := range node.fields {
			result[index] = plain.Member{Key: field.Name, Value: nativeNode(field.Value)}
		}
		return result
	case KindMap:
		result := make(plain.Object, len(node.entries))
		for index, entry := range node.entries {
			result[index] = plain.Member{Key: entry.Key.String(), Value: nativeNode(entry.Value)}
		}
		return result
	case KindList:
		result := make([]any, len(node.items))
		for index, item := range node.items {
			result[index] = nativeNode(item)
		}
		return result
	}

	switch node.scalarType {
	case ScalarInt:
		return node.intVal
	case ScalarFloat:
		return node.floatVal
	case ScalarBool:
		return node.boolVal
	case ScalarText:
		return node.textVal
	case ScalarSize:
		return node.sizeVal.String()
	}
	return nil
}
