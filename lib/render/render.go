// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bureau-foundation/mapstring/lib/plain"
)

// Format names an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatLua  Format = "lua"
	FormatYAML Format = "yaml"
	FormatCBOR Format = "cbor"
)

// Renderer writes a plain tree in one format.
type Renderer interface {
	// Format returns the registry name.
	Format() Format

	// Extension returns the file name extension, including the dot.
	Extension() string

	// Binary reports whether the output is unsuitable for a terminal.
	Binary() bool

	// Render writes tree to w. tree has been normalized.
	Render(w io.Writer, tree any) error
}

// ErrUnknownFormat is returned by Lookup for unregistered names.
var ErrUnknownFormat = errors.New("unknown output format")

var registry = map[Format]Renderer{}

func register(renderer Renderer) {
	registry[renderer.Format()] = renderer
}

func init() {
	register(jsonRenderer{})
	register(luaRenderer{})
	register(yamlRenderer{})
	register(cborRenderer{})
}

// Lookup returns the renderer registered under name. Names are matched
// case-insensitively; "yml" is accepted for yaml.
func Lookup(name string) (Renderer, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	if format == "yml" {
		format = FormatYAML
	}
	renderer, ok := registry[format]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownFormat, name, strings.Join(formatNames(), ", "))
	}
	return renderer, nil
}

// Formats returns the registered formats in name order.
func Formats() []Format {
	formats := make([]Format, 0, len(registry))
	for format := range registry {
		formats = append(formats, format)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

func formatNames() []string {
	formats := Formats()
	names := make([]string, len(formats))
	for index, format := range formats {
		names[index] = string(format)
	}
	return names
}

// Render normalizes tree and writes it to w in format.
func Render(w io.Writer, tree any, format Format) error {
	renderer, err := Lookup(string(format))
	if err != nil {
		return err
	}
	return renderTo(w, renderer, tree)
}

// Bytes renders tree into memory.
func Bytes(tree any, format Format) ([]byte, error) {
	var buffer bytes.Buffer
	if err := Render(&buffer, tree, format); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderTo(w io.Writer, renderer Renderer, tree any) error {
	normalized, err := plain.Normalize(tree)
	if err != nil {
		return fmt.Errorf("normalizing tree for %s: %w", renderer.Format(), err)
	}
	if err := renderer.Render(w, normalized); err != nil {
		return fmt.Errorf("rendering %s: %w", renderer.Format(), err)
	}
	return nil
}
