package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/book-engine/internal/assemble"
	"github.com/pdiddy/book-engine/internal/buildcache"
	"github.com/pdiddy/book-engine/internal/structure"
	"github.com/pdiddy/book-engine/internal/typeset"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Produce the final PDF or HTML output",
	Long: `Build runs the full pipeline for one output target: refresh the manuscript
structure, expand the master document into the build directory, and invoke
the external typesetting or conversion tool. Unchanged manuscripts are
skipped via the build cache; use --force to rebuild anyway.`,
}

var buildPDFCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Typeset the manuscript to PDF",
	RunE:  runBuildPDF,
}

var buildHTMLCmd = &cobra.Command{
	Use:   "html",
	Short: "Convert the manuscript to standalone HTML",
	RunE:  runBuildHTML,
}

func runBuildPDF(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	expanded, done, err := prepareBuild(cmd.Context(), "pdf", force, func(expanded string) error {
		engine, err := typeset.DetectEngine(book.Typeset.Engine)
		if err != nil {
			return err
		}
		return typeset.TypesetPDF(engine, expanded, book.Typeset, os.Stdout)
	})
	if err != nil {
		return err
	}
	if !done {
		return nil
	}

	fmt.Printf("PDF written to %s\n", withExt(expanded, ".pdf"))
	return nil
}

func runBuildHTML(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	expanded, done, err := prepareBuild(cmd.Context(), "html", force, func(expanded string) error {
		conv, err := typeset.NewPandocConverter(book.HTML)
		if err != nil {
			return err
		}
		return conv.Convert(expanded, withExt(expanded, ".html"))
	})
	if err != nil {
		return err
	}
	if !done {
		return nil
	}

	fmt.Printf("HTML written to %s\n", withExt(expanded, ".html"))
	return nil
}

// prepareBuild runs the shared front half of a build: structure refresh,
// freshness check, and expansion into the build directory. When the target
// is up to date it reports so and returns done=false without calling run.
// After run succeeds the source set is recorded in the build cache.
func prepareBuild(ctx context.Context, target string, force bool, run func(expanded string) error) (string, bool, error) {
	if err := structure.UpdateDocument(book.Source, book.Structure.IdeasDir); err != nil {
		return "", false, err
	}

	exp := &assemble.Expander{
		FragmentsRoot: book.Assembly.FragmentsRoot,
		Recursive:     true,
	}
	sources, err := exp.Sources(book.Source)
	if err != nil {
		return "", false, err
	}

	cache, err := buildcache.NewStore(book.Typeset.BuildDir)
	if err != nil {
		return "", false, err
	}
	defer cache.Close()

	if !force {
		fresh, err := cache.Fresh(ctx, target, sources)
		if err != nil {
			return "", false, err
		}
		if fresh {
			fmt.Printf("%s output is up to date\n", target)
			return "", false, nil
		}
	}

	expanded := filepath.Join(book.Typeset.BuildDir, filepath.Base(book.Source))
	if err := exp.Expand(book.Source, expanded); err != nil {
		return "", false, err
	}

	if err := run(expanded); err != nil {
		return "", false, err
	}

	if err := cache.Record(ctx, target, sources); err != nil {
		return "", false, err
	}
	return expanded, true, nil
}

// withExt swaps a path's extension.
func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func init() {
	buildCmd.PersistentFlags().Bool("force", false, "rebuild even when sources are unchanged")

	buildCmd.AddCommand(buildPDFCmd)
	buildCmd.AddCommand(buildHTMLCmd)
	rootCmd.AddCommand(buildCmd)
}
