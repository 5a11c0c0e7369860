// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/mapstring/cmd/mapstring/cli"
	"github.com/bureau-foundation/mapstring/lib/mapstring"
	"github.com/bureau-foundation/mapstring/lib/plain"
)

type encodeParams struct {
	Version string `json:"version" flag:"version" desc:"stream version to write (default: the input envelope's version, else the known version)"`
}

func encodeCommand(streams Streams) *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Encode a settings document into a map exchange string",
		Description: `Read a JSON settings document and write the exchange string for it.

The input is either a bare settings object, as written by "decode", or
the envelope written by "decode --json", whose version is used unless
--version is given. Comments and trailing commas are accepted, so a
hand-edited file needs no cleanup.

The stream layout follows the target version: fields introduced after
it are not written, and MapGenSize values are enumerated labels before
0.17 and numbers from 0.17 on.`,
		Usage: "mapstring encode [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Edit the seed of a string and re-encode it",
				Command:     "mapstring decode old.txt | jq '.seed = 42' | mapstring encode",
			},
			{
				Description: "Encode for an older client",
				Command:     "mapstring encode --version 0.16.51.0 settings.jsonc",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("encode", &params)
		},
		Run: func(args []string) error {
			data, err := readInputFile(args, streams.Stdin)
			if err != nil {
				return err
			}

			settings, envelopeVersion, err := parseSettingsDocument(data)
			if err != nil {
				return err
			}

			version := mapstring.KnownVersion
			switch {
			case params.Version != "":
				version, err = mapstring.ParseVersion(params.Version)
				if err != nil {
					return cli.Validation("--version: %w", err)
				}
			case envelopeVersion != nil:
				version = *envelopeVersion
			}

			text, err := mapstring.Encode(settings, version)
			if err != nil {
				return cli.Validation("encode settings for %s: %w", version, err)
			}
			_, err = fmt.Fprintln(streams.Stdout, text)
			return err
		},
	}
}

// parseSettingsDocument parses JSON-with-comments input into a plain
// tree. An object with a "settings" member is a decode envelope: the
// member is the tree and its "version", if any, is returned.
func parseSettingsDocument(data []byte) (any, *mapstring.Version, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, cli.Validation("empty input: expected a JSON settings document")
	}

	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()
	var document any
	if err := decoder.Decode(&document); err != nil {
		return nil, nil, cli.Validation("parse settings document: %w", err)
	}
	tree, err := plain.Normalize(document)
	if err != nil {
		return nil, nil, cli.Validation("settings document: %w", err)
	}
	object, ok := tree.(plain.Object)
	if !ok {
		return nil, nil, cli.Validation("settings document must be a JSON object, got %T", document)
	}

	settings, isEnvelope := object.Get("settings")
	if !isEnvelope {
		return object, nil, nil
	}
	versionValue, present := object.Get("version")
	if !present {
		return settings, nil, nil
	}
	versionText, ok := versionValue.(string)
	if !ok {
		return nil, nil, cli.Validation("envelope version must be a string, got %T", versionValue)
	}
	version, err := mapstring.ParseVersion(versionText)
	if err != nil {
		return nil, nil, cli.Validation("envelope version: %w", err)
	}
	return settings, &version, nil
}
