// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared configuration structures for book-engine.
package types

// AssemblyConfig holds settings for the document assembly stage.
type AssemblyConfig struct {
	// FragmentsRoot is the directory against which inclusion directive
	// paths resolve. When empty, the master document's directory is used.
	FragmentsRoot string `json:"fragments_root,omitempty" yaml:"fragments_root,omitempty"`

	// Recursive controls whether included fragments are scanned for
	// further inclusion directives.
	Recursive bool `json:"recursive" yaml:"recursive"`
}

// StructureConfig holds settings for manuscript structure generation.
type StructureConfig struct {
	// IdeasDir is the directory holding the part/chapter hierarchy:
	// subdirectories are parts, .tex files within them are chapters.
	IdeasDir string `json:"ideas_dir" yaml:"ideas_dir"`
}

// TypesetEngine identifies the LaTeX binary used for PDF builds.
type TypesetEngine string

const (
	EnginePdflatex TypesetEngine = "pdflatex"
	EngineXelatex  TypesetEngine = "xelatex"
)

// TypesetConfig holds settings for the PDF typesetting stage.
type TypesetConfig struct {
	// Engine selects the LaTeX binary: pdflatex or xelatex. When empty,
	// the first available engine is used.
	Engine TypesetEngine `json:"engine,omitempty" yaml:"engine,omitempty"`

	// BuildDir is the directory for expanded sources, auxiliary files,
	// and final outputs.
	BuildDir string `json:"build_dir" yaml:"build_dir"`

	// Passes is the number of typesetting passes. Two passes are needed
	// for the table of contents to resolve (default 2).
	Passes int `json:"passes" yaml:"passes"`
}

// HTMLConfig holds settings for the HTML conversion stage.
type HTMLConfig struct {
	// Template is an optional pandoc HTML template path.
	Template string `json:"template,omitempty" yaml:"template,omitempty"`

	// Stylesheet is an optional CSS path linked from the generated HTML.
	Stylesheet string `json:"stylesheet,omitempty" yaml:"stylesheet,omitempty"`

	// TOC controls whether a table of contents is generated (default true).
	TOC bool `json:"toc" yaml:"toc"`
}

// BookConfig is the book.yaml manifest: manuscript metadata plus the
// per-stage build settings.
type BookConfig struct {
	// Title is the manuscript title.
	Title string `json:"title" yaml:"title"`

	// Author is the manuscript author line.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Source is the path to the master document (e.g. "src/book.tex").
	Source string `json:"source" yaml:"source"`

	Assembly  AssemblyConfig  `json:"assembly" yaml:"assembly"`
	Structure StructureConfig `json:"structure" yaml:"structure"`
	Typeset   TypesetConfig   `json:"typeset" yaml:"typeset"`
	HTML      HTMLConfig      `json:"html" yaml:"html"`
}
