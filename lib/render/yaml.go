// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"io"

	"gopkg.in/yaml.v3"
)

type yamlRenderer struct{}

func (yamlRenderer) Format() Format    { return FormatYAML }
func (yamlRenderer) Extension() string { return ".yaml" }
func (yamlRenderer) Binary() bool      { return false }

func (yamlRenderer) Render(w io.Writer, tree any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(tree); err != nil {
		return err
	}
	return encoder.Close()
}
