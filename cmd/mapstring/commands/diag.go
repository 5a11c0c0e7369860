// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/mapstring/cmd/mapstring/cli"
	"github.com/bureau-foundation/mapstring/lib/codec"
	"github.com/bureau-foundation/mapstring/lib/mapstring"
	"github.com/bureau-foundation/mapstring/lib/preview"
	"github.com/bureau-foundation/mapstring/lib/render"
)

type diagParams struct {
	commonParams
}

func diagCommand(ctx context.Context, streams Streams) *cli.Command {
	var params diagParams

	return &cli.Command{
		Name:    "diag",
		Summary: "Show CBOR settings in diagnostic notation",
		Description: `Write RFC 8949 diagnostic notation for CBOR settings, one line per
item.

The input is a CBOR file written by "decode -f cbor", or stdin. An
exchange string (an argument or input starting with ">>>") is decoded
first and its settings encoded as CBOR, so the command shows exactly
what "decode -f cbor" would write.

Unlike JSON output, diagnostic notation keeps CBOR types visible:
integers and floats differ, and a float keeps its encoded width.`,
		Usage: "mapstring diag [flags] [input]",
		Examples: []cli.Example{
			{
				Description: "Inspect a CBOR artifact",
				Command:     "mapstring diag previews/map-0123456789abcdef.cbor",
			},
			{
				Description: "Show the CBOR form of a string",
				Command:     "mapstring diag settings.txt",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("diag", &params)
		},
		Run: func(args []string) error {
			var data []byte
			if len(args) == 1 && strings.HasPrefix(strings.TrimSpace(args[0]), mapstring.FramePrefix) {
				data = []byte(args[0])
			} else {
				input, err := readInputFile(args, streams.Stdin)
				if err != nil {
					return err
				}
				data = input
			}

			if bytes.HasPrefix(bytes.TrimSpace(data), []byte(mapstring.FramePrefix)) {
				cfg, err := params.loadConfig()
				if err != nil {
					return err
				}
				service := preview.NewService(cfg, params.logger(streams, "diag"))
				decoded, err := service.Decode(ctx, string(data))
				if err != nil {
					return decodeFailure(err)
				}
				data, err = render.Bytes(decoded.Settings, render.FormatCBOR)
				if err != nil {
					return cli.Internal("encode settings as CBOR: %w", err)
				}
			}
			if len(data) == 0 {
				return cli.Validation("empty input: expected CBOR data or an exchange string")
			}

			items, err := codec.Diagnose(data)
			for _, item := range items {
				if _, writeErr := fmt.Fprintln(streams.Stdout, item); writeErr != nil {
					return writeErr
				}
			}
			if err != nil {
				return cli.Validation("%w", err)
			}
			return nil
		},
	}
}
