// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package dsgraph defines the public interface for dsgraph, a library
// that collects git history, design-token and component usage, and
// module imports from a project tree and assembles them into one graph.
// Implements: prd001-collector-interface R1, R3, R6;
//
//	docs/ARCHITECTURE § Collector Interface.
package dsgraph

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/petar-djukic/dsgraph/pkg/types"
)

// Error types for the dsgraph API.
//
// Implements: prd001-collector-interface R6.1-R6.2.
var (
	ErrInvalidConfig = errors.New("invalid config")
)

// Config configures a Collector instance.
//
// Implements: prd001-collector-interface R1.1-R1.12.
type Config struct {
	Root              string     // Project root (required)
	Include           []string   // Glob patterns of paths to scan (empty = all)
	Exclude           []string   // Glob patterns of paths to skip
	CommitLimit       int        // Maximum commits to collect (0 = unlimited)
	Since             *time.Time // Only commits at or after this time
	Until             *time.Time // Only commits at or before this time
	TokenPatterns     []string   // Extra token regexes beyond the built-in taxonomy
	ComponentPatterns []string   // Extra component regexes
	DesignSystemPaths []string   // Paths considered part of the design system
	DesignSystemOnly  bool       // Restrict history to design-system paths
	Workers           int        // Parallel file scanners (default NumCPU)
	NoGit             bool       // Disable history collection
	Logger            *slog.Logger
}

// Stats summarizes what a run collected.
type Stats struct {
	Commits         int `json:"commits"`
	Developers      int `json:"developers"`
	TokenUsages     int `json:"token_usages"`
	ComponentUsages int `json:"component_usages"`
	Imports         int `json:"imports"`
	Cycles          int `json:"cycles"`
}

// Report holds the outcome of a Collector.Run invocation.
//
// Implements: prd001-collector-interface R3.1-R3.5.
type Report struct {
	Graph       *types.Graph       `json:"graph"`
	Cycles      []types.Cycle      `json:"cycles,omitempty"`
	Stats       Stats              `json:"stats"`
	Diagnostics []types.Diagnostic `json:"diagnostics,omitempty"`
	Status      types.Status       `json:"status"`
}

// Collector runs a full collection pass against a project tree.
//
// Implements: prd001-collector-interface R2.1-R2.4.
type Collector interface {
	// Run executes the full collection lifecycle: scan history, usage,
	// and imports in parallel, then assemble the unified graph. A
	// partial run still returns a graph; Run returns an error only for
	// configuration problems surfaced before collection starts.
	Run(ctx context.Context) (*Report, error)
}
