// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Format   string   `flag:"format,f" desc:"output format"`
		Verbose  bool     `flag:"verbose,v" desc:"enable verbose output"`
		Count    int      `flag:"count" desc:"number of items"`
		Limit    int64    `flag:"limit" desc:"byte limit"`
		Tags     []string `flag:"tags" desc:"tag list"`
		Untagged string   // no flag tag, skipped
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"-f", "yaml",
		"-v",
		"--count", "42",
		"--limit", "1099511627776",
		"--tags", "a,b,c",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Format != "yaml" {
		t.Errorf("Format = %q, want %q", p.Format, "yaml")
	}
	if !p.Verbose {
		t.Error("Verbose = false, want true")
	}
	if p.Count != 42 {
		t.Errorf("Count = %d, want 42", p.Count)
	}
	if p.Limit != 1099511627776 {
		t.Errorf("Limit = %d, want 1099511627776", p.Limit)
	}
	if len(p.Tags) != 3 || p.Tags[0] != "a" || p.Tags[1] != "b" || p.Tags[2] != "c" {
		t.Errorf("Tags = %v, want [a b c]", p.Tags)
	}
	if flagSet.Lookup("untagged") != nil {
		t.Error("untagged field should not become a flag")
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Format  string   `flag:"format" desc:"format" default:"json"`
		Count   int      `flag:"count" desc:"count" default:"8"`
		Limit   int64    `flag:"limit" desc:"limit" default:"100"`
		Verify  bool     `flag:"verify" desc:"verify" default:"true"`
		Formats []string `flag:"formats" desc:"formats" default:"lua,yaml"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Format != "json" || p.Count != 8 || p.Limit != 100 || !p.Verify {
		t.Errorf("defaults not applied: %+v", p)
	}
	if len(p.Formats) != 2 || p.Formats[0] != "lua" || p.Formats[1] != "yaml" {
		t.Errorf("Formats = %v, want [lua yaml]", p.Formats)
	}
}

func TestBindFlags_EmbeddedJSONOutput(t *testing.T) {
	type params struct {
		JSONOutput
		Config string `flag:"config" desc:"configuration file"`
	}

	var p params
	flagSet := FlagsFromParams("inspect", &p)
	if err := flagSet.Parse([]string{"--json", "--config", "mapstring.yaml"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.OutputJSON {
		t.Error("OutputJSON = false, want true")
	}
	if p.Config != "mapstring.yaml" {
		t.Errorf("Config = %q", p.Config)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	tests := []struct {
		name   string
		params any
		want   string
	}{
		{
			name:   "not a pointer",
			params: struct{}{},
			want:   "pointer to a struct",
		},
		{
			name:   "unsupported type",
			params: &struct{ Ratio float32 `flag:"ratio"` }{},
			want:   "unsupported type float32",
		},
		{
			name:   "bad default",
			params: &struct{ Count int `flag:"count" default:"many"` }{},
			want:   "default for --count",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := BindFlags(test.params, pflag.NewFlagSet("test", pflag.ContinueOnError))
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("BindFlags = %v, want error containing %q", err, test.want)
			}
		})
	}
}

func TestFlagsFromParams_PanicsOnInvalidParams(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("FlagsFromParams did not panic")
		}
	}()
	FlagsFromParams("bad", 42)
}

func TestEmitJSON(t *testing.T) {
	var output bytes.Buffer

	disabled := JSONOutput{}
	if done, err := disabled.EmitJSON(&output, map[string]int{"a": 1}); done || err != nil {
		t.Errorf("EmitJSON without --json = (%v, %v)", done, err)
	}
	if output.Len() != 0 {
		t.Errorf("EmitJSON without --json wrote %q", output.String())
	}

	enabled := JSONOutput{OutputJSON: true}
	var empty []string
	if done, err := enabled.EmitJSON(&output, empty); !done || err != nil {
		t.Fatalf("EmitJSON = (%v, %v)", done, err)
	}
	if output.String() != "[]\n" {
		t.Errorf("nil slice rendered as %q, want []", output.String())
	}

	output.Reset()
	if err := WriteJSON(&output, map[string]string{"name": "<coal>"}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if output.String() != "{\n  \"name\": \"<coal>\"\n}\n" {
		t.Errorf("WriteJSON = %q", output.String())
	}
}
