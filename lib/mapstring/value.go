// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapstring

import (
	"fmt"
	"strconv"
)

// Kind is the variant of a Node.
type Kind uint8

const (
	KindScalar Kind = iota
	KindStruct
	KindMap
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindStruct:
		return "struct"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// ScalarType is the primitive held by a scalar Node.
type ScalarType uint8

const (
	ScalarInt ScalarType = iota
	ScalarFloat
	ScalarBool
	ScalarText
	ScalarSize
)

// Node is one decoded value. The variant set is closed: every Node is
// a scalar, a struct (fixed, ordered, named fields), a map (ordered
// text-keyed entries) or a list (ordered, homogeneous items). Nodes
// are immutable once built.
type Node struct {
	kind Kind

	scalarType ScalarType
	intVal     int64
	floatVal   float64
	boolVal    bool
	textVal    string
	sizeVal    MapGenSize

	fields  []Field
	entries []Entry
	items   []*Node
}

// Field is a named struct member.
type Field struct {
	Name  string
	Value *Node
}

// Entry is one map entry. Key is always a text scalar.
type Entry struct {
	Key   *Node
	Value *Node
}

// Int creates an integer scalar.
func Int(value int64) *Node {
	return &Node{kind: KindScalar, scalarType: ScalarInt, intVal: value}
}

// Float creates a floating-point scalar.
func Float(value float64) *Node {
	return &Node{kind: KindScalar, scalarType: ScalarFloat, floatVal: value}
}

// Bool creates a boolean scalar.
func Bool(value bool) *Node {
	return &Node{kind: KindScalar, scalarType: ScalarBool, boolVal: value}
}

// Text creates a text scalar.
func Text(value string) *Node {
	return &Node{kind: KindScalar, scalarType: ScalarText, textVal: value}
}

// Size creates a MapGenSize scalar.
func Size(value MapGenSize) *Node {
	return &Node{kind: KindScalar, scalarType: ScalarSize, sizeVal: value}
}

// Struct creates a struct node with fields in declaration order.
func Struct(fields ...Field) *Node {
	return &Node{kind: KindStruct, fields: fields}
}

// List creates a list node.
func List(items ...*Node) *Node {
	return &Node{kind: KindList, items: items}
}

// Map creates a map node. When a key repeats, the later value replaces
// the earlier one at the earlier position.
func Map(entries ...Entry) *Node {
	builder := newMapBuilder(len(entries))
	for _, entry := range entries {
		builder.set(entry)
	}
	return builder.node()
}

// mapBuilder accumulates the entries of a map node. Keys are indexed
// so a repeated key costs the same as a new one.
type mapBuilder struct {
	entries []Entry
	index   map[string]int
}

// newMapBuilder presizes the entry slice only. The index grows with
// the entries actually read, not with a count taken from the stream.
func newMapBuilder(capacity int) *mapBuilder {
	return &mapBuilder{
		entries: make([]Entry, 0, capacity),
		index:   make(map[string]int),
	}
}

// set appends entry, or overwrites the value of the entry already
// holding the same key.
func (b *mapBuilder) set(entry Entry) {
	key := entry.Key.String()
	if position, ok := b.index[key]; ok {
		b.entries[position].Value = entry.Value
		return
	}
	b.index[key] = len(b.entries)
	b.entries = append(b.entries, entry)
}

func (b *mapBuilder) node() *Node {
	return &Node{kind: KindMap, entries: b.entries}
}

// Kind returns the node's variant.
func (n *Node) Kind() Kind { return n.kind }

// ScalarType returns the primitive type of a scalar node.
func (n *Node) ScalarType() ScalarType { return n.scalarType }

// Fields returns the fields of a struct node.
func (n *Node) Fields() []Field { return n.fields }

// Entries returns the entries of a map node.
func (n *Node) Entries() []Entry { return n.entries }

// Items returns the items of a list node.
func (n *Node) Items() []*Node { return n.items }

// Len returns the number of fields, entries or items; 0 for scalars.
func (n *Node) Len() int {
	switch n.kind {
	case KindStruct:
		return len(n.fields)
	case KindMap:
		return len(n.entries)
	case KindList:
		return len(n.items)
	default:
		return 0
	}
}

// Field returns the struct field called name.
func (n *Node) Field(name string) (*Node, bool) {
	for _, field := range n.fields {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

// Lookup returns the value stored under key in a map node.
func (n *Node) Lookup(key string) (*Node, bool) {
	for _, entry := range n.entries {
		if entry.Key.String() == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// Int returns the value of an integer scalar.
func (n *Node) Int() (int64, bool) {
	return n.intVal, n.kind == KindScalar && n.scalarType == ScalarInt
}

// Float returns the value of a float scalar.
func (n *Node) Float() (float64, bool) {
	return n.floatVal, n.kind == KindScalar && n.scalarType == ScalarFloat
}

// Bool returns the value of a boolean scalar.
func (n *Node) Bool() (bool, bool) {
	return n.boolVal, n.kind == KindScalar && n.scalarType == ScalarBool
}

// Text returns the value of a text scalar.
func (n *Node) Text() (string, bool) {
	return n.textVal, n.kind == KindScalar && n.scalarType == ScalarText
}

// Size returns the value of a MapGenSize scalar.
func (n *Node) Size() (MapGenSize, bool) {
	return n.sizeVal, n.kind == KindScalar && n.scalarType == ScalarSize
}

// String returns the display form of a scalar. Composite nodes format
// as their kind and length.
func (n *Node) String() string {
	if n.kind != KindScalar {
		return fmt.Sprintf("%s(%d)", n.kind, n.Len())
	}
	switch n.scalarType {
	case ScalarInt:
		return strconv.FormatInt(n.intVal, 10)
	case ScalarFloat:
		return strconv.FormatFloat(n.floatVal, 'g', -1, 64)
	case ScalarBool:
		return strconv.FormatBool(n.boolVal)
	case ScalarText:
		return n.textVal
	case ScalarSize:
		return n.sizeVal.String()
	default:
		return fmt.Sprintf("scalar(%d)", n.scalarType)
	}
}

// MapGenSize is a density or size setting. Streams before
// FeatureFloatSize store one of six enumerated bytes; later streams
// store a float32. The two encodings share one type so call sites do
// not branch on the version.
type MapGenSize struct {
	continuous bool
	code       uint8
	value      float32
}

// sizeLabels maps the enumerated byte codes to their labels.
var sizeLabels = [...]string{"none", "very-low", "low", "normal", "high", "very-high"}

// EnumSize returns the enumerated size for code, or false when code
// is outside the known set.
func EnumSize(code uint8) (MapGenSize, bool) {
	if int(code) >= len(sizeLabels) {
		return MapGenSize{}, false
	}
	return MapGenSize{code: code}, true
}

// SizeFromLabel returns the enumerated size whose label is label.
func SizeFromLabel(label string) (MapGenSize, bool) {
	for code, candidate := range sizeLabels {
		if candidate == label {
			return MapGenSize{code: uint8(code)}, true
		}
	}
	return MapGenSize{}, false
}

// FloatSize returns a continuous size.
func FloatSize(value float32) MapGenSize {
	return MapGenSize{continuous: true, value: value}
}

// Continuous reports whether the size is float-encoded.
func (s MapGenSize) Continuous() bool { return s.continuous }

// Code returns the enumerated byte; meaningless for continuous sizes.
func (s MapGenSize) Code() uint8 { return s.code }

// Value returns the float value; meaningless for enumerated sizes.
func (s MapGenSize) Value() float32 { return s.value }

// String returns the label of an enumerated size, or the shortest
// decimal form of a continuous one.
func (s MapGenSize) String() string {
	if s.continuous {
		return strconv.FormatFloat(float64(s.value), 'g', -1, 32)
	}
	return sizeLabels[s.code]
}
