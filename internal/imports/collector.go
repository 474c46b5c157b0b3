// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd005-import-collector R1, R5;
//
//	docs/ARCHITECTURE § Import Collector.
package imports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/petar-djukic/dsgraph/internal/pathfilter"
	"github.com/petar-djukic/dsgraph/pkg/types"
)

// Config configures import collection.
type Config struct {
	Root    string   // Project root (required)
	Include []string // Path patterns; empty admits all files
	Exclude []string // Applied after include; exclusion wins
	Workers int      // Parallel file parsers (default NumCPU)
}

// Result is the collector's output boundary. External and unresolved
// imports appear in Imports but contribute no graph edges: they have no
// internal target node.
type Result struct {
	Imports []types.FileImport `json:"imports"`
	Graph   *DepGraph          `json:"-"`
	Cycles  []types.Cycle      `json:"cycles,omitempty"`

	Diagnostics []types.Diagnostic `json:"diagnostics,omitempty"`
	Status      types.Status       `json:"status"`
}

// Collector parses a file set for import edges.
type Collector struct {
	cfg    Config
	filter *pathfilter.Filter
}

// New creates an import collector.
func New(cfg Config) *Collector {
	return &Collector{
		cfg:    cfg,
		filter: pathfilter.New(cfg.Include, cfg.Exclude),
	}
}

// Collect parses every supported file, resolves specifiers against the
// scanned file set, and builds the dependency graph with its cycle
// report. Parsing failures on individual files become diagnostics and
// never abort the collector.
//
// Implements: prd005-import-collector R5.1-R5.4.
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

	fileSet := make(map[string]bool, len(files))
	for _, f := range files {
		fileSet[f] = true
	}

	workers := c.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	type fileImports struct {
		imports []rawImport
		diag    *types.Diagnostic
	}
	perFile := make([]fileImports, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	scheduled := 0
	for i, path := range files {
		i, path := i, path
		spec, ok := supportedLangs[filepath.Ext(path)]
		if !ok {
			continue
		}
		// Cooperative cancellation: stop scheduling new files.
		if gctx.Err() != nil {
			break
		}
		scheduled++
		g.Go(func() error {
			content, err := os.ReadFile(filepath.Join(c.cfg.Root, path))
			if err != nil {
				perFile[i].diag = &types.Diagnostic{
					Path:     path,
					Message:  "reading file: " + err.Error(),
					Severity: types.SevWarning,
				}
				return nil
			}
			raws, err := extractFile(gctx, content, spec)
			if err != nil {
				perFile[i].diag = &types.Diagnostic{
					Path:     path,
					Message:  "parsing imports: " + err.Error(),
					Severity: types.SevWarning,
				}
				return nil
			}
			perFile[i].imports = raws
			return nil
		})
	}
	_ = g.Wait()

	if ctx.Err() != nil {
		result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
			Message:  fmt.Sprintf("import scan canceled after %d files", scheduled),
			Severity: types.SevWarning,
		})
	}

	graph := newDepGraph(files)
	for i, path := range files {
		if perFile[i].diag != nil {
			result.Diagnostics = append(result.Diagnostics, *perFile[i].diag)
			continue
		}
		for _, raw := range perFile[i].imports {
			resolved, resolution := resolve(fileSet, path, raw.specifier)
			result.Imports = append(result.Imports, types.FileImport{
				Path:       path,
				Specifier:  raw.specifier,
				Resolved:   resolved,
				Kind:       raw.kind,
				Resolution: resolution,
				Line:       raw.line,
			})
			if resolution == types.ResolvedInternal {
				graph.addEdge(path, resolved)
			}
		}
	}

	result.Graph = graph
	result.Cycles = graph.Cycles()

	if len(result.Diagnostics) > 0 {
		result.Status = types.StatusPartial
	} else {
		result.Status = types.StatusComplete
	}
	return result
}
