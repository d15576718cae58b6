// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest loads the book.yaml manifest describing a manuscript
// project: metadata plus per-stage build settings.
package manifest

import (
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/book-engine/pkg/types"
)

// DefaultFile is the manifest filename looked up in the project root.
const DefaultFile = "book.yaml"

// Default returns a BookConfig with the conventional project layout:
// master document under src/, ideas under src/ideas/, outputs under build/.
func Default() *types.BookConfig {
	return &types.BookConfig{
		Source: "src/book.tex",
		Structure: types.StructureConfig{
			IdeasDir: "src/ideas",
		},
		Typeset: types.TypesetConfig{
			BuildDir: "build",
			Passes:   2,
		},
		HTML: types.HTMLConfig{
			TOC: true,
		},
	}
}

// Load reads and parses the manifest at path. Fields the manifest omits
// keep their defaults.
func Load(path string) (*types.BookConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault reads the manifest at path, or returns the default
// configuration when no manifest exists. Any other failure is an error.
func LoadOrDefault(path string) (*types.BookConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}
