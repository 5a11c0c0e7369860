// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package mapstring

import "testing"

func TestVersionCompare(t *testing.T) {
	ordered := []Version{
		{0, 16, 0, 22},
		{0, 16, 0, 63},
		{0, 16, 36, 2},
		{0, 17, 0, 0},
		{0, 17, 0, 30},
		{0, 18, 0, 0},
		{1, 0, 0, 0},
	}
	for i := range ordered {
		for j := range ordered {
			want := 0
			switch {
			case i < j:
				want = -1
			case i > j:
				want = 1
			}
			if got := ordered[i].Compare(ordered[j]); got != want {
				t.Errorf("%s.Compare(%s) = %d, want %d", ordered[i], ordered[j], got, want)
			}
		}
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{input: "0.17.79.0", want: Version{0, 17, 79, 0}},
		{input: "1.1", want: Version{1, 1, 0, 0}},
		{input: " 0.16.36.2 ", want: Version{0, 16, 36, 2}},
		{input: "", wantErr: true},
		{input: "0.17.x", wantErr: true},
		{input: "1.2.3.4.5", wantErr: true},
		{input: "70000.0.0.0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVersion(%q) = %s, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersionTextRoundTrip(t *testing.T) {
	original := Version{0, 16, 36, 2}
	text, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(text) != "0.16.36.2" {
		t.Errorf("MarshalText = %q, want %q", text, "0.16.36.2")
	}
	var parsed Version
	if err := parsed.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if parsed != original {
		t.Errorf("UnmarshalText = %s, want %s", parsed, original)
	}
}

func TestCheckVersion(t *testing.T) {
	known := Version{0, 17, 0, 0}

	if mismatch := checkVersion(Version{0, 17, 0, 0}, known); mismatch != nil {
		t.Errorf("equal version flagged: %v", mismatch)
	}
	if mismatch := checkVersion(Version{0, 16, 99, 99}, known); mismatch != nil {
		t.Errorf("older version flagged: %v", mismatch)
	}
	mismatch := checkVersion(Version{0, 17, 0, 30}, known)
	if mismatch == nil {
		t.Fatal("newer version not flagged")
	}
	if mismatch.Observed != (Version{0, 17, 0, 30}) || mismatch.Known != known {
		t.Errorf("mismatch = %+v", mismatch)
	}
}

func TestSupports(t *testing.T) {
	tests := []struct {
		version Version
		feature Feature
		want    bool
	}{
		{Version{0, 16, 0, 21}, FeatureStartingPoints, false},
		{Version{0, 16, 0, 22}, FeatureStartingPoints, true},
		{Version{0, 16, 0, 62}, FeatureStartingArea, false},
		{Version{0, 16, 36, 2}, FeatureStartingArea, true},
		{Version{0, 16, 36, 2}, FeatureFloatSize, false},
		{Version{0, 17, 0, 0}, FeatureFloatSize, true},
		{Version{0, 17, 0, 0}, FeaturePaddingByte, true},
		{Version{0, 15, 40, 0}, FeatureAutoplaceSettings, false},
		{Version{0, 15, 40, 0}, "", true},
	}
	for _, tt := range tests {
		if got := tt.version.Supports(tt.feature); got != tt.want {
			t.Errorf("%s.Supports(%q) = %v, want %v", tt.version, tt.feature, got, tt.want)
		}
	}
}

func TestThresholdsCoverEveryFeature(t *testing.T) {
	layouts := map[string]layout{
		"map_gen_settings":        mapGenSettingsLayout,
		"cliff_settings":          cliffSettingsLayout,
		"autoplace_settings":      autoplaceSettingsLayout,
		"bounding_box":            boundingBoxLayout,
		"frequency_size_richness": frequencySizeRichnessLayout,
	}
	for name, fields := range layouts {
		for _, row := range fields {
			if row.since == "" {
				continue
			}
			if _, ok := thresholdIndex[row.since]; !ok {
				t.Errorf("%s.%s gated on unknown feature %q", name, row.name, row.since)
			}
		}
	}
}

func TestThresholdsReturnsCopy(t *testing.T) {
	table := Thresholds()
	if len(table) == 0 {
		t.Fatal("Thresholds returned an empty table")
	}
	before := Version{0, 16, 0, 10}.Supports(FeatureAutoplaceSettings)
	for index := range table {
		table[index].Since = Version{9, 9, 9, 9}
	}
	table[0].Feature = "edited"

	if got := (Version{0, 16, 0, 10}).Supports(FeatureAutoplaceSettings); got != before || !got {
		t.Errorf("Supports after editing the returned table = %v, want true", got)
	}
	fresh := Thresholds()
	if fresh[0].Feature != FeatureAutoplaceSettings || fresh[0].Since != (Version{0, 16, 0, 0}) {
		t.Errorf("Thresholds()[0] = %+v after editing an earlier copy", fresh[0])
	}
	for index := 1; index < len(fresh); index++ {
		if fresh[index].Since.Compare(fresh[index-1].Since) < 0 {
			t.Errorf("thresholds out of order at %d: %s before %s", index, fresh[index-1].Since, fresh[index].Since)
		}
	}
}
