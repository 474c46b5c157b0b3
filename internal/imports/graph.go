// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd005-import-collector R3;
//
//	docs/ARCHITECTURE § Import Collector.
package imports

import "sort"

// DepGraph is the directed file-dependency graph: nodes are an arena of
// file records addressed by index, edges are index-based adjacency
// lists. Identifiers instead of references keep the cyclic structure
// free of ownership cycles; cycle detection operates purely on indices.
//
// Implements: prd005-import-collector R3.1-R3.4.
type DepGraph struct {
	files []string       // Arena, sorted; index is the node id
	index map[string]int // Path → arena index
	out   [][]int        // Forward adjacency (imports of)
	in    [][]int        // Reverse adjacency (importers of)

	edgeSet map[[2]int]bool
}

// newDepGraph builds an empty graph over the given file arena.
func newDepGraph(files []string) *DepGraph {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	g := &DepGraph{
		files:   sorted,
		index:   make(map[string]int, len(sorted)),
		out:     make([][]int, len(sorted)),
		in:      make([][]int, len(sorted)),
		edgeSet: make(map[[2]int]bool),
	}
	for i, f := range sorted {
		g.index[f] = i
	}
	return g
}

// addEdge records a resolved-internal import edge, deduplicating
// repeated imports of the same target.
func (g *DepGraph) addEdge(from, to string) {
	fi, okF := g.index[from]
	ti, okT := g.index[to]
	if !okF || !okT {
		return
	}
	key := [2]int{fi, ti}
	if g.edgeSet[key] {
		return
	}
	g.edgeSet[key] = true
	g.out[fi] = append(g.out[fi], ti)
	g.in[ti] = append(g.in[ti], fi)
}

// Files returns the node arena in sorted order.
func (g *DepGraph) Files() []string {
	return g.files
}

// ImportsOf returns the files that path imports (forward adjacency).
// The slice is a fresh, finite, restartable view over the edge set.
func (g *DepGraph) ImportsOf(path string) []string {
	i, ok := g.index[path]
	if !ok {
		return nil
	}
	return g.names(g.out[i])
}

// ImportersOf returns the files that import path (reverse adjacency).
func (g *DepGraph) ImportersOf(path string) []string {
	i, ok := g.index[path]
	if !ok {
		return nil
	}
	return g.names(g.in[i])
}

// Edges returns every (from, to) pair in deterministic order.
func (g *DepGraph) Edges() [][2]string {
	var edges [][2]string
	for fi, targets := range g.out {
		for _, ti := range g.sorted(targets) {
			edges = append(edges, [2]string{g.files[fi], g.files[ti]})
		}
	}
	return edges
}

// names maps arena indices to sorted file paths.
func (g *DepGraph) names(indices []int) []string {
	names := make([]string, 0, len(indices))
	for _, i := range g.sorted(indices) {
		names = append(names, g.files[i])
	}
	return names
}

// sorted returns a sorted copy of an adjacency list.
func (g *DepGraph) sorted(indices []int) []int {
	out := append([]int(nil), indices...)
	sort.Ints(out)
	return out
}
