// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/mapstring/cmd/mapstring/cli"
	"github.com/bureau-foundation/mapstring/lib/mapstring"
)

type thresholdsParams struct {
	cli.JSONOutput
}

type thresholdEntry struct {
	mapstring.Threshold
	Supported *bool `json:"supported,omitempty"`
}

func thresholdsCommand(streams Streams) *cli.Command {
	var params thresholdsParams

	return &cli.Command{
		Name:    "thresholds",
		Summary: "Show the version gates of the stream layout",
		Description: `List every stream layout change with the version that introduced it.

Given a version argument, also show whether streams of that version
carry each change.`,
		Usage: "mapstring thresholds [flags] [version]",
		Examples: []cli.Example{
			{
				Description: "Which fields does a 0.16.20 stream have?",
				Command:     "mapstring thresholds 0.16.20.0",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("thresholds", &params)
		},
		Run: func(args []string) error {
			if len(args) > 1 {
				return cli.Validation("expected at most one version, got %d arguments", len(args))
			}
			var target *mapstring.Version
			if len(args) == 1 {
				version, err := mapstring.ParseVersion(args[0])
				if err != nil {
					return cli.Validation("version: %w", err)
				}
				target = &version
			}

			gates := mapstring.Thresholds()
			entries := make([]thresholdEntry, len(gates))
			for index, threshold := range gates {
				entries[index].Threshold = threshold
				if target != nil {
					supported := target.Supports(threshold.Feature)
					entries[index].Supported = &supported
				}
			}

			if done, err := params.EmitJSON(streams.Stdout, entries); done {
				return err
			}

			table := tabwriter.NewWriter(streams.Stdout, 0, 0, 2, ' ', 0)
			if target != nil {
				fmt.Fprintf(table, "FEATURE\tSINCE\t%s\tFIELDS\n", target)
			} else {
				fmt.Fprintf(table, "FEATURE\tSINCE\tFIELDS\n")
			}
			for _, entry := range entries {
				if entry.Supported != nil {
					fmt.Fprintf(table, "%s\t%s\t%s\t%s\n", entry.Feature, entry.Since, yesNo(*entry.Supported), entry.Fields)
				} else {
					fmt.Fprintf(table, "%s\t%s\t%s\n", entry.Feature, entry.Since, entry.Fields)
				}
			}
			return table.Flush()
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
