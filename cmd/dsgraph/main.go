// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command dsgraph is a test CLI for the dsgraph library.
// Implements: prd007-technology-stack R4.1-R4.10;
//
//	docs/ARCHITECTURE § Project Structure.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the root command and wires flags, env vars, and the
// optional config file into viper.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dsgraph",
		Short: "Design-system knowledge graph collector",
		Long:  "dsgraph scans a project for git history, design-token and component usage, and module imports, and assembles them into a unified graph.",
	}

	// Global flags.
	rootCmd.PersistentFlags().String("root", ".", "Project root directory")
	rootCmd.PersistentFlags().StringSlice("include", nil, "Glob patterns of paths to scan (empty = all)")
	rootCmd.PersistentFlags().StringSlice("exclude", nil, "Glob patterns of paths to skip")
	rootCmd.PersistentFlags().Int("commit-limit", 0, "Maximum commits to collect (0 = unlimited)")
	rootCmd.PersistentFlags().String("since", "", "Only commits at or after this time (RFC 3339)")
	rootCmd.PersistentFlags().String("until", "", "Only commits at or before this time (RFC 3339)")
	rootCmd.PersistentFlags().StringSlice("token-pattern", nil, "Extra token regexes beyond the built-in taxonomy")
	rootCmd.PersistentFlags().StringSlice("component-pattern", nil, "Extra component regexes")
	rootCmd.PersistentFlags().StringSlice("design-system-path", nil, "Paths considered part of the design system")
	rootCmd.PersistentFlags().Bool("design-system-only", false, "Restrict history to design-system paths")
	rootCmd.PersistentFlags().Int("workers", 0, "Parallel file scanners (0 = NumCPU)")
	rootCmd.PersistentFlags().Bool("no-git", false, "Disable history collection")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log collector progress to stderr")

	// Bind flags to viper.
	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("include", rootCmd.PersistentFlags().Lookup("include"))
	viper.BindPFlag("exclude", rootCmd.PersistentFlags().Lookup("exclude"))
	viper.BindPFlag("commit-limit", rootCmd.PersistentFlags().Lookup("commit-limit"))
	viper.BindPFlag("since", rootCmd.PersistentFlags().Lookup("since"))
	viper.BindPFlag("until", rootCmd.PersistentFlags().Lookup("until"))
	viper.BindPFlag("token-pattern", rootCmd.PersistentFlags().Lookup("token-pattern"))
	viper.BindPFlag("component-pattern", rootCmd.PersistentFlags().Lookup("component-pattern"))
	viper.BindPFlag("design-system-path", rootCmd.PersistentFlags().Lookup("design-system-path"))
	viper.BindPFlag("design-system-only", rootCmd.PersistentFlags().Lookup("design-system-only"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("no-git", rootCmd.PersistentFlags().Lookup("no-git"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Env vars: DSGRAPH_ROOT, DSGRAPH_COMMIT_LIMIT, etc. Hyphenated keys
	// map to underscores.
	viper.SetEnvPrefix("DSGRAPH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".dsgraph")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	// Add commands.
	rootCmd.AddCommand(newCollectCmd())
	rootCmd.AddCommand(newCyclesCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print dsgraph version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dsgraph %s\n", version)
		},
	}
}
