// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd007-technology-stack R4.3-R4.8.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/dsgraph/pkg/dsgraph"
)

// newCollectCmd creates the "collect" command.
func newCollectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Collect and assemble the project graph",
		Long:  "Collect runs the history, usage, and import collectors against the project root and prints the assembled graph as JSON.",
		RunE:  runCollect,
	}
}

// runCollect executes a full collection pass.
func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := configFromViper()
	if err != nil {
		return err
	}

	c, err := dsgraph.New(cfg)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	report, err := c.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	printJSON(report)
	return nil
}

// newCyclesCmd creates the "cycles" command.
func newCyclesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cycles",
		Short: "Report circular import chains",
		Long:  "Cycles runs only the import collector and prints each circular dependency chain it finds.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFromViper()
			if err != nil {
				return err
			}
			cfg.NoGit = true

			c, err := dsgraph.New(cfg)
			if err != nil {
				return fmt.Errorf("initialization failed: %w", err)
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			report, err := c.Run(ctx)
			if err != nil {
				return err
			}

			if len(report.Cycles) == 0 {
				fmt.Println("No import cycles found.")
				return nil
			}
			for _, cycle := range report.Cycles {
				fmt.Println(strings.Join(cycle.Files, " -> "))
			}
			return nil
		},
	}
}

// configFromViper builds a dsgraph.Config from the bound flags, env
// vars, and config file.
func configFromViper() (dsgraph.Config, error) {
	cfg := dsgraph.Config{
		Root:              viper.GetString("root"),
		Include:           viper.GetStringSlice("include"),
		Exclude:           viper.GetStringSlice("exclude"),
		CommitLimit:       viper.GetInt("commit-limit"),
		TokenPatterns:     viper.GetStringSlice("token-pattern"),
		ComponentPatterns: viper.GetStringSlice("component-pattern"),
		DesignSystemPaths: viper.GetStringSlice("design-system-path"),
		DesignSystemOnly:  viper.GetBool("design-system-only"),
		Workers:           viper.GetInt("workers"),
		NoGit:             viper.GetBool("no-git"),
	}

	var err error
	if cfg.Since, err = parseTimeFlag("since"); err != nil {
		return cfg, err
	}
	if cfg.Until, err = parseTimeFlag("until"); err != nil {
		return cfg, err
	}

	logOut := io.Discard
	if viper.GetBool("verbose") {
		logOut = os.Stderr
	}
	cfg.Logger = slog.New(slog.NewTextHandler(logOut, nil))

	return cfg, nil
}

// parseTimeFlag reads an optional RFC 3339 timestamp flag.
func parseTimeFlag(name string) (*time.Time, error) {
	raw := viper.GetString(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: %v", name, err)
	}
	return &t, nil
}

// printJSON outputs the report as JSON to stdout.
func printJSON(report *dsgraph.Report) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling report: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
