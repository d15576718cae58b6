// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the book-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/book-engine/internal/manifest"
	"github.com/pdiddy/book-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// book holds the project manifest loaded at startup. Commands read their
// defaults from it; flags override per invocation.
var book *types.BookConfig

// rootCmd is the base command for the book-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "book-engine",
	Short: "Build tooling for a multi-file LaTeX book manuscript",
	Long: `book-engine assembles a book manuscript written as per-idea LaTeX fragments
under a part/chapter hierarchy into a single document source, and drives the
external typesetting and conversion tools that produce PDF and HTML outputs.

Each build stage is a subcommand: generate refreshes the manuscript structure
from the ideas directory, expand resolves inclusion directives, process runs
both, and build produces the final outputs.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("manifest")
		if path == "" {
			path = viper.GetString("manifest")
		}
		if path == "" {
			path = manifest.DefaultFile
		}

		cfg, err := manifest.LoadOrDefault(path)
		if err != nil {
			return err
		}
		book = cfg

		if _, err := os.Stat(path); err == nil {
			fmt.Fprintln(os.Stderr, "Using manifest:", path)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./book-engine.yaml or ~/.config/book-engine/config.yaml)")
	rootCmd.PersistentFlags().String("manifest", "", "project manifest (default: ./book.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("book-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "book-engine"))
		}
	}

	viper.SetEnvPrefix("BOOK_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
