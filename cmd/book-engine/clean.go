package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// auxExtensions are the typesetting byproducts removed by clean. Final
// outputs (.pdf, .html) and the build cache are kept unless --all is given.
var auxExtensions = []string{".aux", ".log", ".toc", ".out", ".lof", ".lot"}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove auxiliary files from the build directory",
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	buildDir := book.Typeset.BuildDir

	if all {
		if err := os.RemoveAll(buildDir); err != nil {
			return fmt.Errorf("removing %s: %w", buildDir, err)
		}
		fmt.Printf("Removed %s\n", buildDir)
		return nil
	}

	entries, err := os.ReadDir(buildDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", buildDir, err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !isAux(entry.Name()) {
			continue
		}
		path := filepath.Join(buildDir, entry.Name())
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing %s: %w", path, err)
		}
		removed++
	}

	fmt.Printf("Removed %d auxiliary file(s) from %s\n", removed, buildDir)
	return nil
}

func isAux(name string) bool {
	ext := filepath.Ext(name)
	for _, aux := range auxExtensions {
		if ext == aux {
			return true
		}
	}
	return false
}

func init() {
	cleanCmd.Flags().Bool("all", false, "remove the entire build directory, outputs and cache included")

	rootCmd.AddCommand(cleanCmd)
}
