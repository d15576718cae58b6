// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble resolves inclusion directives in a LaTeX master document,
// producing one self-contained source file. The typesetting and HTML
// conversion tools downstream cannot follow \input{} references themselves,
// so every referenced fragment is spliced in before they run.
package assemble

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// directivePattern matches inclusion directives: \input{path}.
var directivePattern = regexp.MustCompile(`\\input\{([^}]+)\}`)

// texExt is the extension assumed for fragment paths given without one,
// following LaTeX convention.
const texExt = ".tex"

// Expander substitutes fragment file contents for the inclusion directives
// in a master document. The zero value expands non-recursively with
// fragment paths resolved against the master document's directory.
type Expander struct {
	// FragmentsRoot is the directory against which directive paths
	// resolve. When empty, the master document's directory is used.
	FragmentsRoot string

	// Recursive controls whether included fragment content is itself
	// scanned for further directives. Cycles between fragments are
	// detected and reported as errors.
	Recursive bool
}

// Expand reads the master document at rootPath, substitutes every inclusion
// directive with its fragment's contents in document order, and writes the
// result to outputPath. The output's parent directory is created if needed.
// On any error nothing is written: an existing output file is left
// untouched.
func (e *Expander) Expand(rootPath, outputPath string) error {
	text, err := e.Text(rootPath)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}

// Text returns the expanded contents of the master document at rootPath
// without writing anything to disk.
func (e *Expander) Text(rootPath string) (string, error) {
	text, _, err := e.run(rootPath)
	return text, err
}

// Sources returns the master document and every fragment the expansion
// reads, in document order. The build cache keys on this set.
func (e *Expander) Sources(rootPath string) ([]string, error) {
	_, sources, err := e.run(rootPath)
	return sources, err
}

func (e *Expander) run(rootPath string) (string, []string, error) {
	data, err := os.ReadFile(rootPath)
	if err != nil {
		return "", nil, &ReadError{Path: rootPath, Err: err}
	}

	root := e.FragmentsRoot
	if root == "" {
		root = filepath.Dir(rootPath)
	}

	sources := []string{rootPath}
	text, err := e.expand(string(data), root, map[string]bool{}, &sources)
	if err != nil {
		return "", nil, err
	}
	return text, sources, nil
}

// expand performs one substitution pass over content, appending each
// fragment it reads to sources. In recursive mode the fragment contents are
// expanded in turn; active holds the fragments on the current inclusion
// chain so a cycle is caught rather than looped.
func (e *Expander) expand(content, root string, active map[string]bool, sources *[]string) (string, error) {
	matches := directivePattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(content[last:m[0]])
		last = m[1]

		fragPath := resolveFragment(root, content[m[2]:m[3]])

		if _, err := os.Stat(fragPath); os.IsNotExist(err) {
			return "", &MissingFragmentError{Path: fragPath}
		}
		data, err := os.ReadFile(fragPath)
		if err != nil {
			return "", &ReadError{Path: fragPath, Err: err}
		}
		*sources = append(*sources, fragPath)

		fragment := string(data)
		if e.Recursive {
			if active[fragPath] {
				return "", fmt.Errorf("inclusion cycle through %s", fragPath)
			}
			active[fragPath] = true
			fragment, err = e.expand(fragment, root, active, sources)
			delete(active, fragPath)
			if err != nil {
				return "", err
			}
		}
		b.WriteString(fragment)
	}
	b.WriteString(content[last:])

	return b.String(), nil
}

// resolveFragment joins a directive path to the fragments root, assuming
// the .tex extension when the path carries none.
func resolveFragment(root, name string) string {
	name = strings.TrimSpace(name)
	if filepath.Ext(name) == "" {
		name += texExt
	}
	return filepath.Join(root, name)
}
