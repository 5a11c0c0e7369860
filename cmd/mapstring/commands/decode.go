// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/mapstring/cmd/mapstring/cli"
	"github.com/bureau-foundation/mapstring/lib/preview"
	"github.com/bureau-foundation/mapstring/lib/render"
)

type decodeParams struct {
	commonParams
	cli.JSONOutput
	Format string `json:"format" flag:"format,f" desc:"output format: cbor, json, lua or yaml (default from configuration)"`
	Output string `json:"output" flag:"output,o" desc:"write a file into this directory instead of stdout"`
	Name   string `json:"name"   flag:"name"     desc:"output file name without extension (default: the string's identifier)"`
}

func decodeCommand(ctx context.Context, streams Streams) *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Decode a map exchange string into a settings document",
		Description: `Decode a map exchange string and write its map generation settings.

The input is the exchange string itself (when the argument starts with
">>>"), a file containing it, or stdin. Line breaks and indentation
inside the string are ignored.

Settings are written to stdout in the configured format, or with
--output into a file named by the string's identifier (a digest of the
payload, stable across re-wrapping). CBOR is binary and is not written
to a terminal.

With --json the output is an envelope carrying the identifier, the
producer version, any version mismatch and the settings.`,
		Usage: "mapstring decode [flags] [input]",
		Examples: []cli.Example{
			{
				Description: "Decode a saved string to JSON",
				Command:     "mapstring decode settings.txt",
			},
			{
				Description: "Decode from the clipboard as Lua",
				Command:     "wl-paste | mapstring decode -f lua",
			},
			{
				Description: "Write a YAML preview into a directory",
				Command:     "mapstring decode -f yaml -o previews/ settings.txt",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("decode", &params)
		},
		Run: func(args []string) error {
			cfg, err := params.loadConfig()
			if err != nil {
				return err
			}
			text, err := readExchangeString(args, streams.Stdin)
			if err != nil {
				return err
			}

			service := preview.NewService(cfg, params.logger(streams, "decode"))
			format := service.DefaultFormat()
			if params.Format != "" {
				format = render.Format(params.Format)
			}
			renderer, err := render.Lookup(string(format))
			if err != nil {
				return cli.Categorize(cli.CategoryValidation, err)
			}

			decoded, err := service.Decode(ctx, text)
			if err != nil {
				return decodeFailure(err)
			}

			if params.Output != "" {
				location := service.Location(decoded)
				location.Directory = params.Output
				if params.Name != "" {
					location.Name = params.Name
				}
				path, err := service.Render(ctx, decoded.Settings, renderer.Format(), location)
				if err != nil {
					return cli.Internal("write settings: %w", err)
				}
				_, err = fmt.Fprintln(streams.Stdout, path)
				return err
			}

			if done, err := params.EmitJSON(streams.Stdout, decoded); done {
				return err
			}

			if renderer.Binary() && cli.IsTerminal(streams.Stdout) {
				return cli.Validation("refusing to write %s to a terminal", renderer.Format()).
					WithHint("Pass --output <directory> or redirect stdout.")
			}
			if err := render.Render(streams.Stdout, decoded.Settings, renderer.Format()); err != nil {
				return cli.Internal("write settings: %w", err)
			}
			return nil
		},
	}
}
