// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package usage scans source and style files for hardcoded design
// values, design-token references, and component invocations.
// Implements: prd004-usage-collector R1, R2, R3, R4;
//
//	docs/ARCHITECTURE § Usage Collector.
package usage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/petar-djukic/dsgraph/internal/pathfilter"
	"github.com/petar-djukic/dsgraph/pkg/types"
)

// Config configures usage collection.
//
// Implements: prd004-usage-collector R1.1-R1.4.
type Config struct {
	Root              string   // Project root (required)
	Include           []string // Path patterns; empty admits all files
	Exclude           []string // Applied after include; exclusion wins
	TokenPatterns     []string // Regexes recognized as token references
	ComponentPatterns []string // Regexes recognized as component usages
	Workers           int      // Parallel file scanners (default NumCPU)
}

// Result is the collector's output boundary. A file with zero matches
// yields zero usages, not an error; skipped files appear as diagnostics.
type Result struct {
	Tokens      []types.TokenUsage      `json:"tokens"`
	Components  []types.ComponentUsage  `json:"components"`
	Definitions []types.TokenDefinition `json:"definitions,omitempty"`

	Diagnostics []types.Diagnostic `json:"diagnostics,omitempty"`
	Status      types.Status       `json:"status"`
}

// fileResult holds one file's matches before merging.
type fileResult struct {
	tokens      []types.TokenUsage
	components  []types.ComponentUsage
	definitions []types.TokenDefinition
	diag        *types.Diagnostic
}

// Collector scans a file set for design-value usage.
type Collector struct {
	cfg          Config
	filter       *pathfilter.Filter
	tokenRes     []*regexp.Regexp
	componentRes []*regexp.Regexp
}

// New compiles the taxonomy patterns and returns a collector. Invalid
// patterns are rejected up front rather than silently accepted.
func New(cfg Config) (*Collector, error) {
	c := &Collector{
		cfg:    cfg,
		filter: pathfilter.New(cfg.Include, cfg.Exclude),
	}
	for _, p := range cfg.TokenPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("token pattern %q: %w", p, err)
		}
		c.tokenRes = append(c.tokenRes, re)
	}
	for _, p := range cfg.ComponentPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("component pattern %q: %w", p, err)
		}
		c.componentRes = append(c.componentRes, re)
	}
	return c, nil
}

// Collect resolves the file set and scans every file line by line.
// Per-file scanning is parallel with no ordering dependency; results are
// merged into a single sequence ordered by (path, line, column) for
// byte-identical reproducibility across runs.
//
// Implements: prd004-usage-collector R4.1-R4.4.
func (c *Collector) Collect(ctx context.Context) *Result {
	result := &Result{}

	files, err := pathfilter.Walk(c.cfg.Root, c.filter)
	if err != nil {
		result.Status = types.StatusFailed
		result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
			Path:     c.cfg.Root,
			Message:  "walking project: " + err.Error(),
			Severity: types.SevError,
		})
		return result
	}

	workers := c.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	perFile := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	scheduled := 0
	for i, path := range files {
		i, path := i, path
		// Cooperative cancellation: stop scheduling new files; in-flight
		// scans finish so no usage record is partially emitted.
		if gctx.Err() != nil {
			break
		}
		scheduled++
		g.Go(func() error {
			perFile[i] = c.scanFile(gctx, path)
			return nil
		})
	}
	_ = g.Wait()

	if scheduled < len(files) {
		result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
			Message:  fmt.Sprintf("usage scan canceled: %d of %d files scanned", scheduled, len(files)),
			Severity: types.SevWarning,
		})
	}

	for _, fr := range perFile {
		result.Tokens = append(result.Tokens, fr.tokens...)
		result.Components = append(result.Components, fr.components...)
		result.Definitions = append(result.Definitions, fr.definitions...)
		if fr.diag != nil {
			result.Diagnostics = append(result.Diagnostics, *fr.diag)
		}
	}

	sort.SliceStable(result.Tokens, func(i, j int) bool {
		return usageLess(result.Tokens[i].Path, result.Tokens[i].Line, result.Tokens[i].Column,
			result.Tokens[j].Path, result.Tokens[j].Line, result.Tokens[j].Column)
	})
	sort.SliceStable(result.Components, func(i, j int) bool {
		return usageLess(result.Components[i].Path, result.Components[i].Line, result.Components[i].Column,
			result.Components[j].Path, result.Components[j].Line, result.Components[j].Column)
	})
	sort.SliceStable(result.Definitions, func(i, j int) bool {
		if result.Definitions[i].Path != result.Definitions[j].Path {
			return result.Definitions[i].Path < result.Definitions[j].Path
		}
		return result.Definitions[i].Line < result.Definitions[j].Line
	})

	suggestTokens(result)

	if len(result.Diagnostics) > 0 {
		result.Status = types.StatusPartial
	} else {
		result.Status = types.StatusComplete
	}
	return result
}

// scanFile reads one file and emits its matches. Malformed or unreadable
// files are skipped with a per-file diagnostic, never a failure.
func (c *Collector) scanFile(ctx context.Context, path string) fileResult {
	var fr fileResult

	content, err := os.ReadFile(filepath.Join(c.cfg.Root, path))
	if err != nil {
		fr.diag = &types.Diagnostic{
			Path:     path,
			Message:  "reading file: " + err.Error(),
			Severity: types.SevWarning,
		}
		return fr
	}

	if strings.EqualFold(filepath.Ext(path), ".css") {
		defs, err := cssDefinitions(ctx, content, path)
		if err != nil {
			fr.diag = &types.Diagnostic{
				Path:     path,
				Message:  "parsing stylesheet: " + err.Error(),
				Severity: types.SevWarning,
			}
		}
		fr.definitions = defs
	}

	scope := ""
	for lineNo, line := range strings.Split(string(content), "\n") {
		if s := enclosingScope(line); s != "" {
			scope = s
		}
		c.scanLine(path, lineNo+1, line, scope, &fr)
	}
	return fr
}

// usageLess orders usage records by (path, line, column).
func usageLess(pa string, la, ca int, pb string, lb, cb int) bool {
	if pa != pb {
		return pa < pb
	}
	if la != lb {
		return la < lb
	}
	return ca < cb
}
