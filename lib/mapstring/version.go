// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapstring

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Version is the (major, minor, patch, build) tuple at the front of
// every raw stream. Versions order lexicographically.
type Version [4]uint16

// KnownVersion is the newest producer version whose layout this
// package has been checked against. Streams from newer producers
// still decode; they are flagged with a [VersionMismatch].
var KnownVersion = Version{0, 17, 79, 0}

// Compare returns -1, 0 or +1 as v is less than, equal to or greater
// than other.
func (v Version) Compare(other Version) int {
	for index := range v {
		switch {
		case v[index] < other[index]:
			return -1
		case v[index] > other[index]:
			return 1
		}
	}
	return 0
}

// AtLeast reports whether v >= other.
func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}

// String formats v as "major.minor.patch.build".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v[0], v[1], v[2], v[3])
}

// ParseVersion parses "major.minor.patch.build". Trailing components
// may be omitted and default to zero, so "0.17" is 0.17.0.0.
func ParseVersion(text string) (Version, error) {
	var version Version
	parts := strings.Split(strings.TrimSpace(text), ".")
	if len(parts) == 0 || len(parts) > len(version) || parts[0] == "" {
		return Version{}, fmt.Errorf("invalid version %q: want major.minor.patch.build", text)
	}
	for index, part := range parts {
		number, err := strconv.ParseUint(part, 10, 16)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q: component %d: %w", text, index, err)
		}
		version[index] = uint16(number)
	}
	return version, nil
}

// MarshalText implements encoding.TextMarshaler so versions serialize
// as "0.17.79.0" in JSON, YAML and CLI output.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// VersionMismatch records that a stream was produced by a version
// newer than the one the decoder knows. It is advisory: the decode may
// still succeed.
type VersionMismatch struct {
	Observed Version `json:"observed"`
	Known    Version `json:"known"`
}

func (m VersionMismatch) String() string {
	return fmt.Sprintf("stream version %s is newer than known version %s", m.Observed, m.Known)
}

// checkVersion returns a mismatch when observed is strictly newer
// than known, nil otherwise.
func checkVersion(observed, known Version) *VersionMismatch {
	if observed.Compare(known) > 0 {
		return &VersionMismatch{Observed: observed, Known: known}
	}
	return nil
}

// Feature names one version-gated change in the stream layout.
type Feature string

const (
	// FeaturePaddingByte: one byte of unknown meaning follows the
	// version. Producers always write it; the decoder skips it.
	FeaturePaddingByte Feature = "padding_byte"

	// FeatureFloatSize: MapGenSize is a float32 instead of an
	// enumerated byte.
	FeatureFloatSize Feature = "float_map_gen_size"

	// FeatureAutoplaceSettings: autoplace_settings and
	// default_enable_all_autoplace_controls follow autoplace_controls.
	FeatureAutoplaceSettings Feature = "autoplace_settings"

	// FeatureStartingArea: area_to_generate_at_start (decoded and
	// discarded) and cliff_settings are present.
	FeatureStartingArea Feature = "area_to_generate_at_start"

	// FeatureStartingPoints: starting_points and
	// property_expression_names follow peaceful_mode.
	FeatureStartingPoints Feature = "starting_points"

	// FeatureCliffRichness: cliff_settings carries a richness size.
	FeatureCliffRichness Feature = "cliff_richness"
)

// Threshold is one row of the layout compatibility table.
type Threshold struct {
	Feature Feature `json:"feature"`
	Since   Version `json:"since"`
	Fields  string  `json:"fields"`
}

// thresholds is the complete table of version gates. The patch-0
// entries for 0.16 are the experimental build numbers at which the
// fields first appeared; every released 0.16.x stream is past them.
var thresholds = []Threshold{
	{FeatureAutoplaceSettings, Version{0, 16, 0, 0}, "autoplace_settings, default_enable_all_autoplace_controls"},
	{FeatureStartingPoints, Version{0, 16, 0, 22}, "starting_points, property_expression_names"},
	{FeatureStartingArea, Version{0, 16, 0, 63}, "area_to_generate_at_start, cliff_settings"},
	{FeaturePaddingByte, Version{0, 17, 0, 0}, "unknown byte after the version"},
	{FeatureFloatSize, Version{0, 17, 0, 0}, "MapGenSize as float32"},
	{FeatureCliffRichness, Version{0, 17, 0, 0}, "cliff_settings.richness"},
}

// thresholdIndex is thresholds keyed by feature.
var thresholdIndex = func() map[Feature]Version {
	index := make(map[Feature]Version, len(thresholds))
	for _, threshold := range thresholds {
		index[threshold.Feature] = threshold.Since
	}
	return index
}()

// Thresholds returns a copy of the version gate table in ascending
// version order. It is the same table [Version.Supports] consults.
func Thresholds() []Threshold {
	return slices.Clone(thresholds)
}

// Supports reports whether streams of version v carry feature. The
// empty feature is always supported; an unknown feature panics, since
// it can only come from a typo in a field table.
func (v Version) Supports(feature Feature) bool {
	if feature == "" {
		return true
	}
	since, ok := thresholdIndex[feature]
	if !ok {
		panic(fmt.Sprintf("mapstring: unknown feature %q", feature))
	}
	return v.AtLeast(since)
}
