// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd001-collector-interface R4;
//
//	docs/ARCHITECTURE § Collector Interface.
package dsgraph

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"runtime"

	"github.com/petar-djukic/dsgraph/internal/runner"
)

// New validates the config and returns a ready-to-use Collector. It
// does not touch the project tree; that happens in Run.
//
// Implements: prd001-collector-interface R4.1-R4.3.
func New(cfg Config) (Collector, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	applyDefaults(&cfg)

	r := runner.NewRunner(runner.Deps{
		Root:              cfg.Root,
		Include:           cfg.Include,
		Exclude:           cfg.Exclude,
		CommitLimit:       cfg.CommitLimit,
		Since:             cfg.Since,
		Until:             cfg.Until,
		TokenPatterns:     cfg.TokenPatterns,
		ComponentPatterns: cfg.ComponentPatterns,
		DesignSystemPaths: cfg.DesignSystemPaths,
		DesignSystemOnly:  cfg.DesignSystemOnly,
		Workers:           cfg.Workers,
		NoGit:             cfg.NoGit,
		Logger:            cfg.Logger,
	})

	return &collectorAdapter{runner: r}, nil
}

// collectorAdapter adapts internal/runner.Runner to the public
// Collector interface.
type collectorAdapter struct {
	runner *runner.Runner
}

func (a *collectorAdapter) Run(ctx context.Context) (*Report, error) {
	ir, err := a.runner.Run(ctx)
	if ir == nil {
		return &Report{}, err
	}
	report := &Report{
		Graph:       ir.Graph,
		Diagnostics: ir.Diagnostics,
		Status:      ir.Status,
	}
	if ir.History != nil {
		report.Stats.Commits = len(ir.History.Commits)
		report.Stats.Developers = len(ir.History.Developers)
	}
	if ir.Usage != nil {
		report.Stats.TokenUsages = len(ir.Usage.Tokens)
		report.Stats.ComponentUsages = len(ir.Usage.Components)
	}
	if ir.Imports != nil {
		report.Stats.Imports = len(ir.Imports.Imports)
		report.Cycles = ir.Imports.Cycles
		report.Stats.Cycles = len(ir.Imports.Cycles)
	}
	return report, err
}

// validateConfig checks that required fields are present and that
// user-supplied patterns compile.
//
// Implements: prd001-collector-interface R1.10-R1.12.
func validateConfig(cfg Config) error {
	if cfg.Root == "" {
		return fmt.Errorf("Root is required")
	}
	if info, err := os.Stat(cfg.Root); err != nil || !info.IsDir() {
		return fmt.Errorf("Root %q does not exist or is not a directory", cfg.Root)
	}
	for _, p := range cfg.TokenPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("token pattern %q: %v", p, err)
		}
	}
	for _, p := range cfg.ComponentPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("component pattern %q: %v", p, err)
		}
	}
	if cfg.Since != nil && cfg.Until != nil && cfg.Until.Before(*cfg.Since) {
		return fmt.Errorf("Until %s is before Since %s", cfg.Until, cfg.Since)
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
}
