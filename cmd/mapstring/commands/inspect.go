// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/mapstring/cmd/mapstring/cli"
	"github.com/bureau-foundation/mapstring/lib/mapstring"
	"github.com/bureau-foundation/mapstring/lib/plain"
	"github.com/bureau-foundation/mapstring/lib/preview"
)

type inspectParams struct {
	commonParams
	cli.JSONOutput
	Strict bool `json:"strict" flag:"strict" desc:"exit 1 when the string is newer than the known version"`
}

// summary is the inspect view of a decoded string.
type summary struct {
	ID             string                     `json:"id"`
	Version        mapstring.Version          `json:"version"`
	Mismatch       *mapstring.VersionMismatch `json:"mismatch,omitempty"`
	Seed           any                        `json:"seed"`
	Width          any                        `json:"width"`
	Height         any                        `json:"height"`
	StartingArea   any                        `json:"starting_area"`
	PeacefulMode   any                        `json:"peaceful_mode"`
	StartingPoints int                        `json:"starting_points"`
	Controls       []controlSummary           `json:"controls"`
}

type controlSummary struct {
	Name      string `json:"name"`
	Frequency string `json:"frequency"`
	Size      string `json:"size"`
	Richness  string `json:"richness"`
}

func inspectCommand(ctx context.Context, streams Streams) *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Summarize a map exchange string",
		Description: `Decode a map exchange string and print a short summary: identifier,
producer version, seed, map size, starting area and the autoplace
controls with their frequency, size and richness.

Input is read as for "decode". With --strict, a string produced by a
version newer than the known version exits with status 1 after the
summary is printed.`,
		Usage: "mapstring inspect [flags] [input]",
		Examples: []cli.Example{
			{
				Description: "Summarize a saved string",
				Command:     "mapstring inspect settings.txt",
			},
			{
				Description: "Print the seed from a pasted string",
				Command:     "mapstring inspect --json < settings.txt | jq .seed",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("inspect", &params)
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

			service := preview.NewService(cfg, params.logger(streams, "inspect"))
			decoded, err := service.Decode(ctx, text)
			if err != nil {
				return decodeFailure(err)
			}

			result := summarize(decoded)
			done, err := params.EmitJSON(streams.Stdout, result)
			if err != nil {
				return err
			}
			if !done {
				if err := writeSummary(streams.Stdout, result, cli.IsTerminal(streams.Stdout)); err != nil {
					return cli.Internal("write summary: %w", err)
				}
			}

			if params.Strict && result.Mismatch != nil {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func summarize(decoded *preview.Decoded) summary {
	settings := decoded.Settings
	result := summary{
		ID:       decoded.ID,
		Version:  decoded.Version,
		Mismatch: decoded.Mismatch,
		Controls: []controlSummary{},
	}
	result.Seed, _ = settings.Get("seed")
	result.Width, _ = settings.Get("width")
	result.Height, _ = settings.Get("height")
	result.StartingArea, _ = settings.Get("starting_area")
	result.PeacefulMode, _ = settings.Get("peaceful_mode")
	if points, ok := plain.Lookup(settings, "starting_points"); ok {
		if list, ok := points.([]any); ok {
			result.StartingPoints = len(list)
		}
	}

	controls, _ := settings.Get("autoplace_controls")
	if object, ok := controls.(plain.Object); ok {
		for _, member := range object {
			control := controlSummary{Name: member.Key}
			if value, ok := member.Value.(plain.Object); ok {
				control.Frequency = sizeText(value, "frequency")
				control.Size = sizeText(value, "size")
				control.Richness = sizeText(value, "richness")
			}
			result.Controls = append(result.Controls, control)
		}
	}
	return result
}

func sizeText(control plain.Object, key string) string {
	value, ok := control.Get(key)
	if !ok {
		return "-"
	}
	return fmt.Sprint(value)
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	headingStyle = lipgloss.NewStyle().Faint(true)
)

// writeSummary prints result as aligned text. Styles apply only when
// styled is set, and never inside the tables: tabwriter counts escape
// sequences as cell width.
func writeSummary(w io.Writer, result summary, styled bool) error {
	style := func(style lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return style.Render(text)
	}

	if _, err := fmt.Fprintln(w, style(titleStyle, result.ID)); err != nil {
		return err
	}
	if result.Mismatch != nil {
		if _, err := fmt.Fprintln(w, style(warningStyle, "warning: "+result.Mismatch.String())); err != nil {
			return err
		}
	}

	fields := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(fields, "  version\t%s\n", result.Version)
	fmt.Fprintf(fields, "  seed\t%v\n", result.Seed)
	fmt.Fprintf(fields, "  size\t%v x %v\n", result.Width, result.Height)
	fmt.Fprintf(fields, "  starting area\t%v\n", result.StartingArea)
	fmt.Fprintf(fields, "  peaceful mode\t%v\n", result.PeacefulMode)
	fmt.Fprintf(fields, "  starting points\t%d\n", result.StartingPoints)
	if err := fields.Flush(); err != nil {
		return err
	}

	if len(result.Controls) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\n%s\n", style(headingStyle, "  autoplace controls")); err != nil {
		return err
	}
	controls := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(controls, "  NAME\tFREQUENCY\tSIZE\tRICHNESS\n")
	for _, control := range result.Controls {
		fmt.Fprintf(controls, "  %s\t%s\t%s\t%s\n", control.Name, control.Frequency, control.Size, control.Richness)
	}
	return controls.Flush()
}
