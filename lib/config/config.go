// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/mapstring/lib/mapstring"
	"github.com/bureau-foundation/mapstring/lib/render"
)

// EnvironmentVariable names the variable Load reads the config path
// from.
const EnvironmentVariable = "MAPSTRING_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local use of the CLI.
	Development Environment = "development"
	// Production is for services that decode strings from untrusted
	// users.
	Production Environment = "production"
)

// Config is the master configuration.
type Config struct {
	// Environment identifies the deployment type (development, production).
	Environment Environment `yaml:"environment"`

	// Paths configures directory locations.
	Paths PathsConfig `yaml:"paths"`

	// Decode configures the exchange string decoder.
	Decode DecodeConfig `yaml:"decode"`

	// Output configures rendered settings files.
	Output OutputConfig `yaml:"output"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Paths  *PathsConfig          `yaml:"paths,omitempty"`
	Decode *DecodeOverrideConfig `yaml:"decode,omitempty"`
	Output *OutputConfig         `yaml:"output,omitempty"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Root is the base directory for mapstring data.
	Root string `yaml:"root"`

	// Previews is where rendered settings files are written.
	Previews string `yaml:"previews"`
}

// DecodeConfig configures the decoder.
type DecodeConfig struct {
	// KnownVersion is the newest producer version whose layout is
	// trusted. Newer streams decode with a mismatch warning.
	// Default: the decoder's built-in known version.
	KnownVersion string `yaml:"known_version"`

	// MaxInputBytes caps the length of an exchange string before any
	// decoding. Default: 1 MiB.
	MaxInputBytes int `yaml:"max_input_bytes"`

	// MaxInflatedBytes caps the decompressed stream. Default: 16 MiB.
	MaxInflatedBytes int `yaml:"max_inflated_bytes"`

	// VerifyChecksum enables the CRC-32 trailer check.
	// Default: true.
	VerifyChecksum bool `yaml:"verify_checksum"`
}

// DecodeOverrideConfig is DecodeConfig with the boolean optional, so
// an override section can leave it unset.
type DecodeOverrideConfig struct {
	KnownVersion     string `yaml:"known_version"`
	MaxInputBytes    int    `yaml:"max_input_bytes"`
	MaxInflatedBytes int    `yaml:"max_inflated_bytes"`
	VerifyChecksum   *bool  `yaml:"verify_checksum"`
}

// OutputConfig configures rendered output.
type OutputConfig struct {
	// Format is the default render format: json, lua, yaml or cbor.
	// Default: json.
	Format string `yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(homeDir, ".cache", "mapstring")

	return &Config{
		Environment: Development,
		Paths: PathsConfig{
			Root:     defaultRoot,
			Previews: filepath.Join(defaultRoot, "previews"),
		},
		Decode: DecodeConfig{
			KnownVersion:     mapstring.KnownVersion.String(),
			MaxInputBytes:    1 << 20,
			MaxInflatedBytes: mapstring.DefaultMaxInflatedSize,
			VerifyChecksum:   true,
		},
		Output: OutputConfig{
			Format: string(render.FormatJSON),
		},
	}
}

// Load loads configuration from the MAPSTRING_CONFIG environment
// variable. It fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your mapstring.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// Resolve loads the file named by flagPath, else the file named by
// MAPSTRING_CONFIG, else returns the defaults. The result is
// validated.
func Resolve(flagPath string) (*Config, error) {
	var cfg *Config
	var err error
	switch {
	case flagPath != "":
		cfg, err = LoadFile(flagPath)
	case os.Getenv(EnvironmentVariable) != "":
		cfg, err = Load()
	default:
		cfg = Default()
		cfg.expandVariables()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current
// config. Unknown keys are errors so that typos do not silently fall
// back to defaults.
func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			// An empty file leaves the defaults in place.
			return nil
		}
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Production:
		overrides = c.Production
		// Production never skips the checksum and accepts only
		// string-sized input, whatever the section says.
		defer func() {
			c.Decode.VerifyChecksum = true
			if c.Decode.MaxInputBytes > productionMaxInputBytes {
				c.Decode.MaxInputBytes = productionMaxInputBytes
			}
		}()
	}

	if overrides == nil {
		return
	}

	if overrides.Paths != nil {
		if overrides.Paths.Root != "" {
			c.Paths.Root = overrides.Paths.Root
		}
		if overrides.Paths.Previews != "" {
			c.Paths.Previews = overrides.Paths.Previews
		}
	}

	if overrides.Decode != nil {
		if overrides.Decode.KnownVersion != "" {
			c.Decode.KnownVersion = overrides.Decode.KnownVersion
		}
		if overrides.Decode.MaxInputBytes != 0 {
			c.Decode.MaxInputBytes = overrides.Decode.MaxInputBytes
		}
		if overrides.Decode.MaxInflatedBytes != 0 {
			c.Decode.MaxInflatedBytes = overrides.Decode.MaxInflatedBytes
		}
		if overrides.Decode.VerifyChecksum != nil {
			c.Decode.VerifyChecksum = *overrides.Decode.VerifyChecksum
		}
	}

	if overrides.Output != nil {
		if overrides.Output.Format != "" {
			c.Output.Format = overrides.Output.Format
		}
	}
}

// productionMaxInputBytes bounds input in production. Real exchange
// strings are a few kilobytes.
const productionMaxInputBytes = 64 << 10

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"MAPSTRING_ROOT": c.Paths.Root,
		"HOME":           os.Getenv("HOME"),
	}

	c.Paths.Root = expandVars(c.Paths.Root, vars)
	vars["MAPSTRING_ROOT"] = c.Paths.Root // Update for dependent paths.

	c.Paths.Previews = expandVars(c.Paths.Previews, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Paths.Previews == "" {
		errs = append(errs, fmt.Errorf("paths.previews is required"))
	}

	if _, err := mapstring.ParseVersion(c.Decode.KnownVersion); err != nil {
		errs = append(errs, fmt.Errorf("decode.known_version: %w", err))
	}
	if c.Decode.MaxInputBytes <= 0 {
		errs = append(errs, fmt.Errorf("decode.max_input_bytes must be positive"))
	}
	if c.Decode.MaxInflatedBytes <= 0 {
		errs = append(errs, fmt.Errorf("decode.max_inflated_bytes must be positive"))
	}

	if _, err := render.Lookup(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// KnownVersion returns Decode.KnownVersion parsed. Call after Validate.
func (c *Config) KnownVersion() mapstring.Version {
	version, err := mapstring.ParseVersion(c.Decode.KnownVersion)
	if err != nil {
		return mapstring.KnownVersion
	}
	return version
}

// DecodeOptions returns the decoder options the configuration selects.
func (c *Config) DecodeOptions() []mapstring.Option {
	options := []mapstring.Option{
		mapstring.WithKnownVersion(c.KnownVersion()),
		mapstring.WithMaxInflatedSize(c.Decode.MaxInflatedBytes),
	}
	if !c.Decode.VerifyChecksum {
		options = append(options, mapstring.WithoutChecksum())
	}
	return options
}

// EnsurePaths creates all configured directories if they don't exist.
func (c *Config) EnsurePaths() error {
	for _, path := range []string{c.Paths.Root, c.Paths.Previews} {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return nil
}
