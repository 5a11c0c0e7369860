// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ExchangeString is a map exchange string written by version 0.16.36.2.
// Its settings decode to:
//
//	terrain_segmentation  very-high
//	water                 very-low
//	autoplace_controls    12 entries, first "coal" low/very-high/very-high
//	seed                  123370734
//	width, height         2222, 3333
//	starting_area         high
//	peaceful_mode         true
//	starting_points       one absolute position at (0, 0)
//	cliff_settings        "cliff", 1024, 10
//
// The raw stream is 783 bytes and ends in CRC-32 0x9e459a2d.
const ExchangeString = `>>>eNpjYBBgUGFgYmBl5GFJzk/MYWJl5UrOLyhILdLNL0plZGXlTC4q
TUnVzc/MYWFlZUtJLU4tKmFmYGZJyQTTXKl5qbmVukmJxalAHmt6UWJ
xMZDBkVmUnwc1gaU4MS+FlZGZtbgkPy+VFWhDSVFqajETIyN3aVFiXm
ZpLkghMwMrA+O7mij2dRwMDKy8DAz/6xkM/v8HYSDrAgMDGAMBCyMjU
AAGWJNzMtPSGBgaXBgYFBwZGRirRda5P6yaYs8IkddzgDI+QEUidkNF
HrRCGRGroYyOw1CGw3wYox7G6HdgNAaDz/YIBsSuEqDJUEs4HBAMiGQ
LWJKx9+3WBd+PXbBj/LPy4yXfpAR7xkzZUF+B0vd2QEl2oAZGJjgxay
YI7IT5gAFm5gN7qNRNe8azZ0DgjT0jK0iHCIhwsAASB7yZGRgF+ICsB
T1AQkGGAeY0O5gxIg6MaWDwDeaTxzDGZXt0f6g4MNqADJcDESdABNhC
uMsYocxIB4iEJEIWqNWIAdn6FITnTsJsPIxkNZobVGBuMHHA4gU0ERW
kgOcC2ZMCJ14wwx0BDMEL7DAeMG6ZGRDgg73uLNd5APo0kTo=<<<`

// ExchangeStringControls lists the autoplace controls of
// ExchangeString in stream order.
var ExchangeStringControls = []string{
	"coal", "copper-ore", "crude-oil", "desert", "dirt", "enemy-base",
	"grass", "iron-ore", "sand", "stone", "trees", "uranium-ore",
}

// WriteFile writes content to name inside a fresh temporary directory
// and returns the file's path. The directory is removed when the test
// completes.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}
