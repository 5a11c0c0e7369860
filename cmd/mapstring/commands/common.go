// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/bureau-foundation/mapstring/cmd/mapstring/cli"
	"github.com/bureau-foundation/mapstring/lib/config"
	"github.com/bureau-foundation/mapstring/lib/mapstring"
	"github.com/bureau-foundation/mapstring/lib/preview"
)

// commonParams are the flags every decoding command shares.
type commonParams struct {
	Config  string `json:"config"  flag:"config"    desc:"configuration file (default: $MAPSTRING_CONFIG, else built-in defaults)"`
	Verbose bool   `json:"verbose" flag:"verbose,v" desc:"log every decode, not only warnings"`
}

// loadConfig resolves the configuration named by --config or the
// environment.
func (p *commonParams) loadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(p.Config)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, cli.NotFound("configuration file: %w", err)
	}
	if err != nil {
		return nil, cli.Validation("configuration: %w", err)
	}
	return cfg, nil
}

// logger returns the command logger on stderr, scoped to command.
func (p *commonParams) logger(streams Streams, command string) *slog.Logger {
	level := slog.LevelWarn
	if p.Verbose {
		level = slog.LevelInfo
	}
	return cli.NewCommandLogger(streams.Stderr, level).With("command", command)
}

// readExchangeString returns the exchange string named by args: the
// argument itself when it is framed, the contents of the file it names
// otherwise, or stdin when there is no argument or it is "-".
func readExchangeString(args []string, stdin io.Reader) (string, error) {
	if len(args) > 1 {
		return "", cli.Validation("expected at most one input, got %d", len(args))
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", cli.Internal("read stdin: %w", err)
		}
		return string(data), nil
	}
	if strings.HasPrefix(strings.TrimSpace(args[0]), mapstring.FramePrefix) {
		return args[0], nil
	}
	return readFile(args[0])
}

// readInputFile returns the contents of the file named by args, or
// stdin.
func readInputFile(args []string, stdin io.Reader) ([]byte, error) {
	if len(args) > 1 {
		return nil, cli.Validation("expected at most one input file, got %d", len(args))
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, cli.Internal("read stdin: %w", err)
		}
		return data, nil
	}
	text, err := readFile(args[0])
	return []byte(text), err
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", cli.NotFound("input file %s does not exist", path)
	}
	if err != nil {
		return "", cli.Internal("read %s: %w", path, err)
	}
	return string(data), nil
}

// decodeFailure categorizes an error from preview.Service.Decode.
// Only the user-facing message of an undecodable string is shown; the
// cause has already been logged.
func decodeFailure(err error) error {
	var inputError *preview.InputError
	if errors.As(err, &inputError) {
		if errors.Is(err, preview.ErrInputTooLarge) {
			return cli.Categorize(cli.CategoryValidation, err)
		}
		return &cli.ToolError{Category: cli.CategoryValidation, Err: &conciseError{err: inputError}}
	}
	return cli.Categorize(cli.CategoryInternal, fmt.Errorf("decode: %w", err))
}

// conciseError prints only preview.UserMessage while keeping the full
// chain for errors.Is and errors.As.
type conciseError struct {
	err error
}

func (e *conciseError) Error() string { return preview.UserMessage }

func (e *conciseError) Unwrap() error { return e.err }
