// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/mapstring/lib/plain"
)

func TestWriteFile(t *testing.T) {
	directory := filepath.Join(t.TempDir(), "previews")

	for _, format := range Formats() {
		t.Run(string(format), func(t *testing.T) {
			path, err := WriteFile(directory, "map-"+string(format), format, sampleTree())
			if err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			renderer, _ := Lookup(string(format))
			if want := filepath.Join(directory, "map-"+string(format)+renderer.Extension()); path != want {
				t.Errorf("path = %s, want %s", path, want)
			}

			written, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			expected, err := Bytes(sampleTree(), format)
			if err != nil {
				t.Fatalf("Bytes: %v", err)
			}
			if !bytes.Equal(written, expected) {
				t.Error("file contents differ from Bytes")
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("Stat: %v", err)
			}
			if info.Mode().Perm() != 0o644 {
				t.Errorf("mode = %v, want 0644", info.Mode().Perm())
			}
		})
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != len(Formats()) {
		names := make([]string, len(entries))
		for index, entry := range entries {
			names[index] = entry.Name()
		}
		t.Errorf("directory holds %v, want one file per format", names)
	}
}

func TestWriteFileReplaces(t *testing.T) {
	directory := t.TempDir()
	if _, err := WriteFile(directory, "settings", FormatJSON, plain.Object{{Key: "seed", Value: int64(1)}}); err != nil {
		t.Fatalf("first WriteFile: %v", err)
	}
	path, err := WriteFile(directory, "settings", FormatJSON, plain.Object{{Key: "seed", Value: int64(2)}})
	if err != nil {
		t.Fatalf("second WriteFile: %v", err)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Contains(written, []byte(`"seed": 2`)) {
		t.Errorf("file not replaced: %s", written)
	}
}

func TestWriteFileFailures(t *testing.T) {
	directory := t.TempDir()
	tests := []struct {
		name   string
		output string
		format Format
		tree   any
	}{
		{name: "unknown format", output: "settings", format: "toml", tree: sampleTree()},
		{name: "empty name", output: "", format: FormatJSON, tree: sampleTree()},
		{name: "name with separator", output: "a/b", format: FormatJSON, tree: sampleTree()},
		{name: "parent reference", output: "..", format: FormatJSON, tree: sampleTree()},
		{name: "unrenderable tree", output: "settings", format: FormatJSON, tree: plain.Object{{Key: "c", Value: make(chan int)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := WriteFile(directory, tt.output, tt.format, tt.tree); err == nil {
				t.Error("WriteFile succeeded")
			}
		})
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("failed writes left %d files behind", len(entries))
	}
}
