// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package structure derives a manuscript's part/chapter skeleton from the
// ideas directory layout and splices it into the master document.
//
// Each subdirectory of the ideas directory is a part; each .tex file within
// a part is a chapter. Both are ordered lexically by name, so authors
// control ordering through file naming.
package structure

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// contentPattern captures the master document's preamble (through
// \tableofcontents), the generated content region, and the closing matter
// (from \end{document}).
var contentPattern = regexp.MustCompile(`(?s)^(.*?\\tableofcontents[ \t]*\n)(.*?)(\\end\{document\}.*)$`)

// Part is one top-level division of the manuscript with its chapters in
// order.
type Part struct {
	Name     string
	Chapters []string
}

// ScanIdeas walks the ideas directory and returns the manuscript structure.
// Parts without any chapters are omitted.
func ScanIdeas(ideasDir string) ([]Part, error) {
	entries, err := os.ReadDir(ideasDir)
	if err != nil {
		return nil, fmt.Errorf("reading ideas directory %s: %w", ideasDir, err)
	}

	var parts []Part
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		chapters, err := scanChapters(filepath.Join(ideasDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if len(chapters) == 0 {
			continue
		}
		parts = append(parts, Part{Name: entry.Name(), Chapters: chapters})
	}

	sort.Slice(parts, func(i, j int) bool { return parts[i].Name < parts[j].Name })
	return parts, nil
}

// scanChapters returns the chapter names (file stems) of the .tex files in
// a part directory, sorted by name.
func scanChapters(partDir string) ([]string, error) {
	entries, err := os.ReadDir(partDir)
	if err != nil {
		return nil, fmt.Errorf("reading part directory %s: %w", partDir, err)
	}

	var chapters []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".tex" {
			continue
		}
		chapters = append(chapters, strings.TrimSuffix(entry.Name(), ".tex"))
	}
	sort.Strings(chapters)
	return chapters, nil
}

// ContentSection renders the \part, \chapter, and \input lines for the
// given structure. Directive paths are relative to the master document's
// directory: ideas/<part>/<chapter>.
func ContentSection(parts []Part) string {
	var b strings.Builder
	for _, p := range parts {
		fmt.Fprintf(&b, "\\part{%s}\n", p.Name)
		for _, c := range p.Chapters {
			fmt.Fprintf(&b, "\\chapter{%s}\n", c)
			fmt.Fprintf(&b, "\\input{ideas/%s/%s}\n", p.Name, c)
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// UpdateDocument regenerates the content region of the master document at
// texPath from the ideas directory, preserving everything before
// \tableofcontents and from \end{document} on. The file is rewritten in
// place.
func UpdateDocument(texPath, ideasDir string) error {
	data, err := os.ReadFile(texPath)
	if err != nil {
		return fmt.Errorf("reading master document %s: %w", texPath, err)
	}

	parts, err := ScanIdeas(ideasDir)
	if err != nil {
		return err
	}
	if len(parts) == 0 {
		return fmt.Errorf("no chapters found under %s", ideasDir)
	}

	m := contentPattern.FindStringSubmatch(string(data))
	if m == nil {
		return fmt.Errorf("no content region in %s: expected \\tableofcontents followed by \\end{document}", texPath)
	}

	updated := m[1] + "\n" + ContentSection(parts) + "\n\n" + m[3]
	if updated == string(data) {
		// Already current. Leaving the file alone keeps its mod time
		// stable, which the build cache keys on.
		return nil
	}
	if err := os.WriteFile(texPath, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("writing master document %s: %w", texPath, err)
	}
	return nil
}
