// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the mapstring
// tools.
//
// Configuration is loaded from a single file specified by either the
// MAPSTRING_CONFIG environment variable or a --config flag. There is no
// ~/.config discovery and no automatic file search. When neither is
// given, [Resolve] returns [Default]; commands that decode a single
// string should not need a file.
//
// The configuration file supports environment-specific sections
// (development, production) that override base values when
// [Config].Environment matches. Production defaults are stricter:
// checksum verification cannot be disabled and the input cap is lower.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${MAPSTRING_ROOT}, and ${VAR:-default} patterns are
// expanded. No other environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with Paths, Decode, Output
//   - [Default] -- returns a Config with development defaults
//   - [Load], [LoadFile] and [Resolve] -- the entry points for loading
package config
