// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runner wires the collectors together: parallel, independent
// collection followed by a single-threaded merge barrier.
// Implements: prd001-collector-interface R2;
//
//	docs/ARCHITECTURE § Orchestration, Lifecycle.
package runner

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/petar-djukic/dsgraph/internal/assemble"
	"github.com/petar-djukic/dsgraph/internal/history"
	"github.com/petar-djukic/dsgraph/internal/imports"
	"github.com/petar-djukic/dsgraph/internal/usage"
	"github.com/petar-djukic/dsgraph/pkg/types"
)

// Deps holds injected dependencies and configuration for the runner.
type Deps struct {
	Root              string
	Include           []string
	Exclude           []string
	CommitLimit       int
	Since             *time.Time
	Until             *time.Time
	TokenPatterns     []string
	ComponentPatterns []string
	DesignSystemPaths []string
	DesignSystemOnly  bool // History restricted to design-system paths
	Workers           int
	NoGit             bool // Skip history collection entirely
	Logger            *slog.Logger
}

// RunResult holds the outcome of a Runner.Run invocation. This is the
// internal result type; pkg/dsgraph converts it to the public Report.
type RunResult struct {
	Graph       *types.Graph
	History     *history.Result
	Usage       *usage.Result
	Imports     *imports.Result
	Diagnostics []types.Diagnostic
	Status      types.Status
}

// Runner orchestrates one collection run.
type Runner struct {
	deps Deps
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Runner{deps: deps}
}

// Run executes the full lifecycle: the three collectors in parallel
// against the same project root, a join barrier, then assembly. The
// barrier is required because node deduplication must see the full
// candidate set before assigning final identities; partial or streaming
// assembly would break the no-duplicate-nodes invariant.
//
// Implements: prd001-collector-interface R2.1-R2.4.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{}

	usageCollector, err := usage.New(usage.Config{
		Root:              r.deps.Root,
		Include:           r.deps.Include,
		Exclude:           r.deps.Exclude,
		TokenPatterns:     r.deps.TokenPatterns,
		ComponentPatterns: r.deps.ComponentPatterns,
		Workers:           r.deps.Workers,
	})
	if err != nil {
		return nil, err
	}

	importCollector := imports.New(imports.Config{
		Root:    r.deps.Root,
		Include: r.deps.Include,
		Exclude: r.deps.Exclude,
		Workers: r.deps.Workers,
	})

	// Collectors are read-only and share no mutable state, so they run
	// in parallel; the Wait below is the single serialization point.
	g, gctx := errgroup.WithContext(ctx)

	if !r.deps.NoGit {
		historyCollector := history.New(history.Config{
			RepositoryPath:    r.deps.Root,
			Include:           r.deps.Include,
			Exclude:           r.deps.Exclude,
			CommitLimit:       r.deps.CommitLimit,
			Since:             r.deps.Since,
			Until:             r.deps.Until,
			DesignSystemPaths: r.deps.DesignSystemPaths,
		})
		g.Go(func() error {
			if r.deps.DesignSystemOnly {
				result.History = historyCollector.CollectDesignSystem(gctx)
			} else {
				result.History = historyCollector.Collect(gctx)
			}
			r.deps.Logger.Info("collector finished",
				slog.String("collector", "history"),
				slog.String("status", result.History.Status.String()),
				slog.Int("commits", len(result.History.Commits)))
			return nil
		})
	}

	g.Go(func() error {
		result.Usage = usageCollector.Collect(gctx)
		r.deps.Logger.Info("collector finished",
			slog.String("collector", "usage"),
			slog.String("status", result.Usage.Status.String()),
			slog.Int("tokens", len(result.Usage.Tokens)),
			slog.Int("components", len(result.Usage.Components)))
		return nil
	})

	g.Go(func() error {
		result.Imports = importCollector.Collect(gctx)
		r.deps.Logger.Info("collector finished",
			slog.String("collector", "imports"),
			slog.String("status", result.Imports.Status.String()),
			slog.Int("imports", len(result.Imports.Imports)),
			slog.Int("cycles", len(result.Imports.Cycles)))
		return nil
	})

	// Join barrier: assembly starts only after every collector it
	// consumes has completed.
	if err := g.Wait(); err != nil {
		return result, err
	}

	graph, diags := assemble.Assemble(assemble.Inputs{
		History: result.History,
		Usage:   result.Usage,
		Imports: result.Imports,
	})
	result.Graph = graph

	result.Diagnostics = append(result.Diagnostics, collectorDiags(result)...)
	result.Diagnostics = append(result.Diagnostics, diags...)
	result.Status = overallStatus(result)

	r.deps.Logger.Info("graph assembled",
		slog.String("status", result.Status.String()),
		slog.Int("nodes", len(graph.Nodes)),
		slog.Int("edges", len(graph.Edges)))

	return result, nil
}

// collectorDiags flattens the per-collector diagnostic lists.
func collectorDiags(r *RunResult) []types.Diagnostic {
	var diags []types.Diagnostic
	if r.History != nil {
		diags = append(diags, r.History.Diagnostics...)
	}
	if r.Usage != nil {
		diags = append(diags, r.Usage.Diagnostics...)
	}
	if r.Imports != nil {
		diags = append(diags, r.Imports.Diagnostics...)
	}
	return diags
}

// overallStatus derives the run status from the collector statuses: the
// graph is produced whenever at least one collector succeeds, so the
// run fails only when every collector fails.
func overallStatus(r *RunResult) types.Status {
	var statuses []types.Status
	if r.History != nil {
		statuses = append(statuses, r.History.Status)
	}
	if r.Usage != nil {
		statuses = append(statuses, r.Usage.Status)
	}
	if r.Imports != nil {
		statuses = append(statuses, r.Imports.Status)
	}
	if len(statuses) == 0 {
		return types.StatusFailed
	}

	allComplete, allFailed := true, true
	for _, s := range statuses {
		if s != types.StatusComplete {
			allComplete = false
		}
		if s != types.StatusFailed {
			allFailed = false
		}
	}
	switch {
	case allFailed:
		return types.StatusFailed
	case allComplete:
		return types.StatusComplete
	default:
		return types.StatusPartial
	}
}
