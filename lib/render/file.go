// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile renders tree in format to directory/name plus the
// format's extension and returns the path written. The file is
// written to a temporary name in the same directory, synced, and
// renamed into place, so an existing file is replaced atomically.
// directory is created if missing.
func WriteFile(directory, name string, format Format, tree any) (string, error) {
	renderer, err := Lookup(string(format))
	if err != nil {
		return "", err
	}
	if name == "" || strings.ContainsRune(name, filepath.Separator) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid output name %q", name)
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	finalPath := filepath.Join(directory, name+renderer.Extension())

	temporaryFile, err := os.CreateTemp(directory, "."+name+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temporary output file: %w", err)
	}
	temporaryPath := temporaryFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(temporaryPath)
		}
	}()

	if err := renderTo(temporaryFile, renderer, tree); err != nil {
		temporaryFile.Close()
		return "", err
	}
	if err := temporaryFile.Chmod(0o644); err != nil {
		temporaryFile.Close()
		return "", fmt.Errorf("setting output file mode: %w", err)
	}
	if err := temporaryFile.Sync(); err != nil {
		temporaryFile.Close()
		return "", fmt.Errorf("syncing temporary output file: %w", err)
	}
	if err := temporaryFile.Close(); err != nil {
		return "", fmt.Errorf("closing temporary output file: %w", err)
	}
	if err := os.Rename(temporaryPath, finalPath); err != nil {
		return "", fmt.Errorf("renaming output to %s: %w", finalPath, err)
	}

	success = true
	return finalPath, nil
}
