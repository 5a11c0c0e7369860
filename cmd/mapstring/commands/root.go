// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/mapstring/cmd/mapstring/cli"
	"github.com/bureau-foundation/mapstring/lib/version"
)

// Streams are the standard streams a command tree reads and writes.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultStreams returns the process's standard streams.
func DefaultStreams() Streams {
	return Streams{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Root builds the complete command tree. ctx bounds every decode.
func Root(ctx context.Context, streams Streams) *cli.Command {
	return &cli.Command{
		Name: "mapstring",
		Description: `mapstring: decode and encode map exchange strings.

A map exchange string is the ">>>...<<<" text block a game client
produces to share map generation settings. mapstring decodes it into a
settings document (JSON, Lua, YAML or CBOR), summarizes it, and encodes
edited settings back into an exchange string.`,
		Output: streams.Stderr,
		Subcommands: []*cli.Command{
			decodeCommand(ctx, streams),
			encodeCommand(streams),
			inspectCommand(ctx, streams),
			diagCommand(ctx, streams),
			formatsCommand(streams),
			thresholdsCommand(streams),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					_, err := fmt.Fprintf(streams.Stdout, "mapstring %s\n", version.Full())
					return err
				},
			},
		},
	}
}
