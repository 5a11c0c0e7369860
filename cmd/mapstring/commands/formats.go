// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/mapstring/cmd/mapstring/cli"
	"github.com/bureau-foundation/mapstring/lib/render"
)

type formatsParams struct {
	cli.JSONOutput
}

type formatEntry struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
	Binary    bool   `json:"binary"`
}

func formatsCommand(streams Streams) *cli.Command {
	var params formatsParams

	return &cli.Command{
		Name:    "formats",
		Summary: "List the output formats of decode",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("formats", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("formats takes no arguments, got %q", args[0])
			}

			var entries []formatEntry
			for _, format := range render.Formats() {
				renderer, err := render.Lookup(string(format))
				if err != nil {
					return cli.Internal("format registry: %w", err)
				}
				entries = append(entries, formatEntry{
					Name:      string(format),
					Extension: renderer.Extension(),
					Binary:    renderer.Binary(),
				})
			}

			if done, err := params.EmitJSON(streams.Stdout, entries); done {
				return err
			}

			table := tabwriter.NewWriter(streams.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(table, "FORMAT\tEXTENSION\tBINARY\n")
			for _, entry := range entries {
				fmt.Fprintf(table, "%s\t%s\t%v\n", entry.Name, entry.Extension, entry.Binary)
			}
			return table.Flush()
		},
	}
}
