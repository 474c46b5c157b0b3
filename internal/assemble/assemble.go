// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package assemble merges the three collectors' results into one
// unified node/edge graph, deduplicating entities referenced by more
// than one source.
// Implements: prd006-graph-assembler R1, R2, R3, R4;
//
//	docs/ARCHITECTURE § Graph Assembler.
package assemble

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"

	"github.com/petar-djukic/dsgraph/internal/history"
	"github.com/petar-djukic/dsgraph/internal/imports"
	"github.com/petar-djukic/dsgraph/internal/usage"
	"github.com/petar-djukic/dsgraph/pkg/types"
)

// Inputs are the collector results to merge. Any subset may be nil or
// partial due to upstream failure; the assembler produces a graph from
// whatever is present.
type Inputs struct {
	History *history.Result
	Usage   *usage.Result
	Imports *imports.Result
}

// builder owns the dedup maps during a single assembly. It is the only
// shared mutable structure of a run and is confined to one goroutine.
type builder struct {
	nodes map[string]*types.GraphNode
	edges map[edgeKey]*types.GraphEdge
	diags []types.Diagnostic
}

type edgeKey struct {
	from, to string
	relation types.Relation
}

// Assemble merges the inputs into one graph. Nodes are deduplicated by
// (kind, canonical-key); every edge references nodes created before it,
// so the graph never contains dangling edges. Re-assembling the same
// inputs yields a graph equal in node and edge content.
//
// Implements: prd006-graph-assembler R1.1-R4.4.
func Assemble(in Inputs) (*types.Graph, []types.Diagnostic) {
	b := &builder{
		nodes: make(map[string]*types.GraphNode),
		edges: make(map[edgeKey]*types.GraphEdge),
	}

	// Step 1: File nodes for the union of all paths in any input. A File
	// node is singular per canonical path regardless of which collector
	// first observed it.
	b.addHistoryFiles(in.History)
	b.addUsageFiles(in.Usage)
	b.addImportFiles(in.Imports)

	// Step 2: Commit and Developer nodes with authored/modified edges.
	b.addHistory(in.History)

	// Step 3: Token and Component nodes with uses-* edges.
	b.addUsage(in.Usage)

	// Step 4: imports edges from the resolved-internal edge set.
	// Step 5: the cycle report rides as graph-level metadata, not edges.
	graph := &types.Graph{}
	if in.Imports != nil && in.Imports.Graph != nil {
		for _, e := range in.Imports.Graph.Edges() {
			b.addEdge(fileID(e[0]), fileID(e[1]), types.Imports, 1)
		}
		graph.Cycles = in.Imports.Cycles
	}

	for _, n := range b.nodes {
		graph.Nodes = append(graph.Nodes, *n)
	}
	sort.Slice(graph.Nodes, func(i, j int) bool {
		return graph.Nodes[i].ID < graph.Nodes[j].ID
	})

	for _, e := range b.edges {
		graph.Edges = append(graph.Edges, *e)
	}
	sort.Slice(graph.Edges, func(i, j int) bool {
		a, z := graph.Edges[i], graph.Edges[j]
		if a.From != z.From {
			return a.From < z.From
		}
		if a.Relation != z.Relation {
			return a.Relation < z.Relation
		}
		return a.To < z.To
	})

	return graph, b.diags
}

// canonicalPath normalizes a file path into its canonical key.
func canonicalPath(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

func fileID(p string) string {
	return string(types.FileNode) + ":" + canonicalPath(p)
}

// node returns the existing node for (kind, key) or creates it.
func (b *builder) node(kind types.NodeKind, key string) *types.GraphNode {
	id := string(kind) + ":" + key
	if n, ok := b.nodes[id]; ok {
		return n
	}
	n := &types.GraphNode{ID: id, Kind: kind, Key: key}
	b.nodes[id] = n
	return n
}

// setAttr records a node attribute, resolving conflicts deterministically:
// the first collector to claim a value wins (collection order is fixed as
// history, usage, imports) and the disagreement surfaces as a diagnostic,
// never a silent drop.
func (b *builder) setAttr(n *types.GraphNode, key string, value any) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]any)
	}
	if prev, ok := n.Attrs[key]; ok {
		if prev != value {
			b.diags = append(b.diags, types.Diagnostic{
				Path:     n.ID,
				Message:  fmt.Sprintf("assembly conflict on %q: keeping %v, ignoring %v", key, prev, value),
				Severity: types.SevWarning,
			})
		}
		return
	}
	n.Attrs[key] = value
}

// addEdge accumulates weight on the deduplicated (from, relation, to)
// edge. Nodes must already exist; callers create them first.
func (b *builder) addEdge(from, to string, rel types.Relation, weight float64) {
	key := edgeKey{from: from, to: to, relation: rel}
	if e, ok := b.edges[key]; ok {
		e.Weight += weight
		return
	}
	b.edges[key] = &types.GraphEdge{From: from, To: to, Relation: rel, Weight: weight}
}

func (b *builder) addHistoryFiles(h *history.Result) {
	if h == nil {
		return
	}
	for _, c := range h.Commits {
		for _, ch := range c.Changes {
			b.node(types.FileNode, canonicalPath(ch.Path))
		}
	}
}

func (b *builder) addUsageFiles(u *usage.Result) {
	if u == nil {
		return
	}
	for _, t := range u.Tokens {
		b.node(types.FileNode, canonicalPath(t.Path))
	}
	for _, c := range u.Components {
		b.node(types.FileNode, canonicalPath(c.Path))
	}
	for _, d := range u.Definitions {
		b.node(types.FileNode, canonicalPath(d.Path))
	}
}

func (b *builder) addImportFiles(im *imports.Result) {
	if im == nil || im.Graph == nil {
		return
	}
	for _, f := range im.Graph.Files() {
		b.node(types.FileNode, canonicalPath(f))
	}
}

func (b *builder) addHistory(h *history.Result) {
	if h == nil {
		return
	}
	for _, dev := range h.Developers {
		n := b.node(types.DeveloperNode, dev.Identity)
		b.setAttr(n, "name", dev.Name)
		b.setAttr(n, "email", dev.Email)
	}
	for _, c := range h.Commits {
		n := b.node(types.CommitNode, c.Hash)
		b.setAttr(n, "message", c.Message)
		b.setAttr(n, "when", c.When.UTC().Format("2006-01-02T15:04:05Z07:00"))

		// The author node is created here, not assumed from the developer
		// list, so the edge never dangles on inconsistent input.
		dev := b.node(types.DeveloperNode, c.Author.Identity)
		b.setAttr(dev, "name", c.Author.Name)
		b.setAttr(dev, "email", c.Author.Email)
		b.addEdge(n.ID, dev.ID, types.Authored, 1)
		for _, ch := range c.Changes {
			b.addEdge(n.ID, fileID(ch.Path), types.ModifiedFile, 1)
		}
	}
}

func (b *builder) addUsage(u *usage.Result) {
	if u == nil {
		return
	}
	for _, d := range u.Definitions {
		n := b.node(types.TokenNode, d.Name)
		b.setAttr(n, "value", d.Value)
		b.setAttr(n, "defined_in", canonicalPath(d.Path))
	}
	for _, t := range u.Tokens {
		n := b.node(types.TokenNode, t.Value)
		if t.Kind == types.Hardcoded {
			b.setAttr(n, "hardcoded", true)
			if t.Suggestion != "" {
				b.setAttr(n, "suggestion", t.Suggestion)
			}
		}
		b.addEdge(fileID(t.Path), n.ID, types.UsesToken, 1)
	}
	for _, c := range u.Components {
		n := b.node(types.ComponentNode, c.Component)
		b.addEdge(fileID(c.Path), n.ID, types.UsesComp, 1)
	}
}
