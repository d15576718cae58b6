// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package typeset

import (
	"fmt"
	"io"

	"github.com/pdiddy/book-engine/pkg/types"
)

const binPandoc = "pandoc"

// Converter transforms an expanded document source into a browser-viewable
// output file.
type Converter interface {
	// Convert reads the LaTeX source at texPath and writes HTML to outPath.
	Convert(texPath, outPath string) error
}

// PandocConverter converts expanded LaTeX to standalone HTML by invoking
// the pandoc binary with an optional presentation template and stylesheet.
type PandocConverter struct {
	cfg  types.HTMLConfig
	exec executor
}

// NewPandocConverter creates a converter using the given HTML settings. It
// verifies that pandoc is on PATH before returning.
func NewPandocConverter(cfg types.HTMLConfig) (*PandocConverter, error) {
	return newPandocConverter(cfg, defaultExec)
}

func newPandocConverter(cfg types.HTMLConfig, exec executor) (*PandocConverter, error) {
	if _, err := exec.LookPath(binPandoc); err != nil {
		return nil, fmt.Errorf("pandoc not found on PATH: %w", err)
	}
	return &PandocConverter{cfg: cfg, exec: exec}, nil
}

// Convert runs pandoc on texPath, producing standalone HTML at outPath.
func (p *PandocConverter) Convert(texPath, outPath string) error {
	args := []string{"-f", "latex", "-t", "html5", "--standalone"}
	if p.cfg.TOC {
		args = append(args, "--toc")
	}
	if p.cfg.Template != "" {
		args = append(args, "--template", p.cfg.Template)
	}
	if p.cfg.Stylesheet != "" {
		args = append(args, "--css", p.cfg.Stylesheet)
	}
	args = append(args, "-o", outPath, texPath)

	if err := p.exec.Run(binPandoc, args, io.Discard); err != nil {
		return fmt.Errorf("converting %s with pandoc: %w", texPath, err)
	}
	return nil
}
