package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/book-engine/internal/assemble"
)

var expandCmd = &cobra.Command{
	Use:   "expand <root-document> <output>",
	Short: "Expand inclusion directives into a single document source",
	Long: `Expand reads the master document, substitutes every \input{} directive with
the referenced fragment's contents in document order, and writes one
self-contained source file. A directive referencing a missing fragment
aborts the build; no partial output is written.`,
	Args: cobra.ExactArgs(2),
	RunE: runExpand,
}

func runExpand(cmd *cobra.Command, args []string) error {
	fragmentsRoot, _ := cmd.Flags().GetString("fragments-root")
	if fragmentsRoot == "" {
		fragmentsRoot = book.Assembly.FragmentsRoot
	}
	recursive, _ := cmd.Flags().GetBool("recursive")
	if !cmd.Flags().Changed("recursive") {
		recursive = book.Assembly.Recursive
	}

	exp := &assemble.Expander{
		FragmentsRoot: fragmentsRoot,
		Recursive:     recursive,
	}
	if err := exp.Expand(args[0], args[1]); err != nil {
		return err
	}

	fmt.Printf("Expanded %s to %s\n", args[0], args[1])
	return nil
}

func init() {
	expandCmd.Flags().String("fragments-root", "", "directory fragment paths resolve against (default: the master document's directory)")
	expandCmd.Flags().Bool("recursive", false, "expand directives inside included fragments")

	rootCmd.AddCommand(expandCmd)
}
