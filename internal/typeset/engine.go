// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package typeset drives the external typesetting and conversion binaries
// that turn an expanded manuscript into PDF and HTML outputs. The binaries
// are treated as black boxes behind interfaces so the build pipeline can be
// tested without a TeX installation.
package typeset

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/pdiddy/book-engine/pkg/types"
)

const (
	binPdflatex = "pdflatex"
	binXelatex  = "xelatex"
)

// defaultPasses is the number of typesetting passes when the configuration
// does not say otherwise. The table of contents needs a second pass.
const defaultPasses = 2

// Engine runs a LaTeX binary over an expanded document source.
type Engine interface {
	// Name returns the engine binary name ("pdflatex" or "xelatex").
	Name() string

	// Available reports whether the engine binary exists on PATH and
	// responds to a version query.
	Available() bool

	// Typeset runs one typesetting pass over texPath, placing the PDF
	// and auxiliary files in outDir. Engine output goes to stdout.
	Typeset(texPath, outDir string, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	Run(name string, args []string, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) Run(name string, args []string, stdout io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stdout
	return cmd.Run()
}

// engine implements Engine for a specific LaTeX binary. pdflatex and
// xelatex take the same arguments; they differ only in binary name.
type engine struct {
	bin  string
	exec executor
}

func (e *engine) Name() string { return e.bin }

func (e *engine) Available() bool {
	if _, err := e.exec.LookPath(e.bin); err != nil {
		return false
	}
	return e.exec.RunSilent(e.bin, "--version") == nil
}

func (e *engine) Typeset(texPath, outDir string, stdout io.Writer) error {
	args := []string{
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory", outDir,
		texPath,
	}
	if err := e.exec.Run(e.bin, args, stdout); err != nil {
		return fmt.Errorf("running %s on %s: %w", e.bin, texPath, err)
	}
	return nil
}

var defaultExec executor = &osExecutor{}

// DetectEngine returns the requested engine, or when name is empty the
// first available one: pdflatex, then xelatex.
func DetectEngine(name types.TypesetEngine) (Engine, error) {
	return detectEngine(name, defaultExec)
}

func detectEngine(name types.TypesetEngine, exec executor) (Engine, error) {
	if name != "" {
		e := &engine{bin: string(name), exec: exec}
		if !e.Available() {
			return nil, fmt.Errorf("typesetting engine %s not found or not operational", name)
		}
		return e, nil
	}

	for _, bin := range []string{binPdflatex, binXelatex} {
		e := &engine{bin: bin, exec: exec}
		if e.Available() {
			return e, nil
		}
	}

	return nil, fmt.Errorf(
		"no typesetting engine available: neither %s nor %s found or operational",
		binPdflatex, binXelatex,
	)
}

// TypesetPDF runs the configured number of passes over texPath, writing a
// status line per pass to w. Engine output is discarded; the .log file in
// the build directory holds the full transcript on failure.
func TypesetPDF(e Engine, texPath string, cfg types.TypesetConfig, w io.Writer) error {
	passes := cfg.Passes
	if passes <= 0 {
		passes = defaultPasses
	}

	for i := 1; i <= passes; i++ {
		fmt.Fprintf(w, "%s pass %d/%d: %s\n", e.Name(), i, passes, texPath)
		if err := e.Typeset(texPath, cfg.BuildDir, io.Discard); err != nil {
			return fmt.Errorf("pass %d/%d: %w", i, passes, err)
		}
	}
	return nil
}
