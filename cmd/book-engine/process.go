package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/book-engine/internal/assemble"
	"github.com/pdiddy/book-engine/internal/structure"
)

var processCmd = &cobra.Command{
	Use:   "process <root-document> <output>",
	Short: "Regenerate the structure and expand in one step",
	Long: `Process refreshes the master document's part/chapter structure from the
ideas directory, then expands all inclusion directives (recursively) into a
single consolidated source file ready for typesetting or conversion.`,
	Args: cobra.ExactArgs(2),
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	ideasDir, _ := cmd.Flags().GetString("ideas-dir")
	if ideasDir == "" {
		ideasDir = book.Structure.IdeasDir
	}

	if err := structure.UpdateDocument(args[0], ideasDir); err != nil {
		return err
	}

	exp := &assemble.Expander{
		FragmentsRoot: book.Assembly.FragmentsRoot,
		Recursive:     true,
	}
	if err := exp.Expand(args[0], args[1]); err != nil {
		return err
	}

	fmt.Printf("Processed %s to %s\n", args[0], args[1])
	return nil
}

func init() {
	processCmd.Flags().String("ideas-dir", "", "directory holding the part/chapter hierarchy (default: from the manifest)")

	rootCmd.AddCommand(processCmd)
}
