// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/bureau-foundation/mapstring/lib/config"
	"github.com/bureau-foundation/mapstring/lib/mapstring"
	"github.com/bureau-foundation/mapstring/lib/plain"
	"github.com/bureau-foundation/mapstring/lib/render"
)

// Decoded is a successfully decoded exchange string.
type Decoded struct {
	// ID names the artifacts derived from this string.
	ID string `json:"id"`

	// Fingerprint is the payload digest ID is taken from.
	Fingerprint Fingerprint `json:"-"`

	// Version is the producer version.
	Version mapstring.Version `json:"version"`

	// Mismatch is set when Version is newer than the known version.
	Mismatch *mapstring.VersionMismatch `json:"mismatch,omitempty"`

	// Settings is the plain settings tree.
	Settings plain.Object `json:"settings"`
}

// Location is where Render writes: Directory/Name plus the format's
// extension.
type Location struct {
	Directory string
	Name      string
}

// Service decodes and renders exchange strings. It holds no mutable
// state and is safe for concurrent use.
type Service struct {
	maxInputBytes int
	options       []mapstring.Option
	previews      string
	format        render.Format
	logger        *slog.Logger
}

// NewService creates a service configured by cfg, which must have been
// validated. A nil logger discards log output.
func NewService(cfg *config.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		maxInputBytes: cfg.Decode.MaxInputBytes,
		options:       cfg.DecodeOptions(),
		previews:      cfg.Paths.Previews,
		format:        render.Format(cfg.Output.Format),
		logger:        logger,
	}
}

// DefaultFormat returns the configured render format.
func (s *Service) DefaultFormat() render.Format { return s.format }

// Decode decodes text. Failures caused by the input are *InputError;
// a done context returns the context's error before any work.
func (s *Service) Decode(ctx context.Context, text string) (*Decoded, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.maxInputBytes > 0 && len(text) > s.maxInputBytes {
		return nil, s.reject(ctx, "", &InputError{
			Err: fmt.Errorf("%w: %d bytes, limit %d", ErrInputTooLarge, len(text), s.maxInputBytes),
		})
	}

	fingerprint := FingerprintPayload(mapstring.ExtractPayload(text))
	id := fingerprint.Identifier()

	result, err := mapstring.Decode(text, s.options...)
	if err != nil {
		return nil, s.reject(ctx, id, &InputError{Err: err})
	}

	if result.Mismatch != nil {
		s.logger.WarnContext(ctx, "map string is newer than the known version",
			"id", id,
			"version", result.Version.String(),
			"known", result.Mismatch.Known.String(),
		)
	}
	s.logger.InfoContext(ctx, "decoded map string",
		"id", id,
		"version", result.Version.String(),
	)

	return &Decoded{
		ID:          id,
		Fingerprint: fingerprint,
		Version:     result.Version,
		Mismatch:    result.Mismatch,
		Settings:    result.Tree(),
	}, nil
}

func (s *Service) reject(ctx context.Context, id string, err *InputError) error {
	attributes := []any{"kind", failureKind(err.Err), "error", err.Err.Error()}
	if id != "" {
		attributes = append(attributes, "id", id)
	}
	var structural *mapstring.StructuralError
	if errors.As(err.Err, &structural) && structural.Mismatch != nil {
		attributes = append(attributes, "version", structural.Mismatch.Observed.String())
	}
	s.logger.WarnContext(ctx, "rejected map string", attributes...)
	return err
}

// Location returns the default location for a decoded string: the
// configured previews directory, named by the string's identifier.
func (s *Service) Location(decoded *Decoded) Location {
	return Location{Directory: s.previews, Name: decoded.ID}
}

// Render writes tree in format to location and returns the file path.
func (s *Service) Render(ctx context.Context, tree any, format render.Format, location Location) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := render.WriteFile(location.Directory, location.Name, format, tree)
	if err != nil {
		s.logger.ErrorContext(ctx, "rendering settings failed",
			"name", location.Name,
			"format", string(format),
			"error", err,
		)
		return "", err
	}
	s.logger.InfoContext(ctx, "rendered settings",
		"path", path,
		"format", string(format),
	)
	return path, nil
}

// Preview decodes text and renders its settings to the default
// location in the default format. It is Decode followed by Render.
func (s *Service) Preview(ctx context.Context, text string) (*Decoded, string, error) {
	decoded, err := s.Decode(ctx, text)
	if err != nil {
		return nil, "", err
	}
	path, err := s.Render(ctx, decoded.Settings, s.format, s.Location(decoded))
	if err != nil {
		return decoded, "", err
	}
	return decoded, path, nil
}
