// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/book-engine/pkg/types"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t, `title: Tech Management Notes
author: J. Doe
source: src/tech-management.tex
assembly:
  recursive: true
structure:
  ideas_dir: src/ideas
typeset:
  engine: xelatex
  build_dir: out
  passes: 3
html:
  template: web/template.html
  stylesheet: web/style.css
  toc: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Tech Management Notes", cfg.Title)
	assert.Equal(t, "J. Doe", cfg.Author)
	assert.Equal(t, "src/tech-management.tex", cfg.Source)
	assert.True(t, cfg.Assembly.Recursive)
	assert.Equal(t, "src/ideas", cfg.Structure.IdeasDir)
	assert.Equal(t, types.EngineXelatex, cfg.Typeset.Engine)
	assert.Equal(t, "out", cfg.Typeset.BuildDir)
	assert.Equal(t, 3, cfg.Typeset.Passes)
	assert.Equal(t, "web/template.html", cfg.HTML.Template)
	assert.Equal(t, "web/style.css", cfg.HTML.Stylesheet)
	assert.False(t, cfg.HTML.TOC)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeManifest(t, "title: Minimal\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Minimal", cfg.Title)
	assert.Equal(t, "src/book.tex", cfg.Source)
	assert.Equal(t, "src/ideas", cfg.Structure.IdeasDir)
	assert.Equal(t, "build", cfg.Typeset.BuildDir)
	assert.Equal(t, 2, cfg.Typeset.Passes)
	assert.True(t, cfg.HTML.TOC)
	assert.False(t, cfg.Assembly.Recursive)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeManifest(t, ":::bad\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing manifest")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), DefaultFile))
	require.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("missing manifest falls back to defaults", func(t *testing.T) {
		cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), DefaultFile))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("present manifest is loaded", func(t *testing.T) {
		path := writeManifest(t, "title: Present\n")
		cfg, err := LoadOrDefault(path)
		require.NoError(t, err)
		assert.Equal(t, "Present", cfg.Title)
	})

	t.Run("unparseable manifest is still an error", func(t *testing.T) {
		path := writeManifest(t, "{{{bad")
		_, err := LoadOrDefault(path)
		require.Error(t, err)
	})
}
