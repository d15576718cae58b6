package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/book-engine/internal/structure"
)

var generateCmd = &cobra.Command{
	Use:   "generate [master-document]",
	Short: "Regenerate the manuscript structure from the ideas directory",
	Long: `Generate scans the ideas directory (subdirectories are parts, .tex files
are chapters, both ordered by name) and rewrites the master document's
content region with matching \part, \chapter, and \input lines. The
preamble and closing matter are preserved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	texPath := book.Source
	if len(args) > 0 {
		texPath = args[0]
	}
	ideasDir, _ := cmd.Flags().GetString("ideas-dir")
	if ideasDir == "" {
		ideasDir = book.Structure.IdeasDir
	}

	if err := structure.UpdateDocument(texPath, ideasDir); err != nil {
		return err
	}

	fmt.Printf("Structure updated in %s\n", texPath)
	return nil
}

func init() {
	generateCmd.Flags().String("ideas-dir", "", "directory holding the part/chapter hierarchy (default: from the manifest)")

	rootCmd.AddCommand(generateCmd)
}
