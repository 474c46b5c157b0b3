// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd005-import-collector R4;
//
//	docs/ARCHITECTURE § Import Collector.
package imports

import (
	"sort"

	"github.com/petar-djukic/dsgraph/pkg/types"
)

// Cycles reports every circular-dependency group in the graph: each
// strongly connected component of size > 1, plus any self-import. Each
// group is identified by a closed walk naming every member, and every
// independent cycle is reported, not just the first found.
//
// Implements: prd005-import-collector R4.1-R4.4.
func (g *DepGraph) Cycles() []types.Cycle {
	var cycles []types.Cycle

	for _, scc := range g.tarjan() {
		if len(scc) == 1 {
			v := scc[0]
			if !g.edgeSet[[2]int{v, v}] {
				continue // Single node, no self-import.
			}
		}
		cycles = append(cycles, types.Cycle{Files: g.cyclePath(scc)})
	}

	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i].Files[0] < cycles[j].Files[0]
	})
	return cycles
}

// tarjan computes strongly connected components over arena indices.
func (g *DepGraph) tarjan() [][]int {
	n := len(g.files)
	index := 0
	indices := make([]int, n)
	lowlinks := make([]int, n)
	onStack := make([]bool, n)
	for i := range indices {
		indices[i] = -1
	}
	var stack []int
	var sccs [][]int

	var strongConnect func(v int)
	strongConnect = func(v int) {
		indices[v] = index
		lowlinks[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.sorted(g.out[v]) {
			if indices[w] < 0 {
				strongConnect(w)
				if lowlinks[w] < lowlinks[v] {
					lowlinks[v] = lowlinks[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlinks[v] {
					lowlinks[v] = indices[w]
				}
			}
		}

		if lowlinks[v] == indices[v] {
			var scc []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for v := 0; v < n; v++ {
		if indices[v] < 0 {
			strongConnect(v)
		}
	}
	return sccs
}

// cyclePath orders a strongly connected component as a closed walk
// covering every member, starting from the lexicographically smallest
// one. A component weaving more than one loop through a shared file has
// no simple cycle visiting all members, so the walk may revisit files;
// every member appears at least once and consecutive entries are always
// real import edges.
func (g *DepGraph) cyclePath(scc []int) []string {
	inSCC := make(map[int]bool, len(scc))
	for _, v := range scc {
		inSCC[v] = true
	}

	start := scc[0]
	for _, v := range scc[1:] {
		if g.files[v] < g.files[start] {
			start = v
		}
	}

	if len(scc) == 1 {
		return []string{g.files[start]}
	}

	covered := map[int]bool{start: true}
	walk := []int{start}
	remaining := len(scc) - 1

	current := start
	for remaining > 0 {
		seg := g.shortestPath(current, inSCC, func(v int) bool { return !covered[v] })
		for _, v := range seg {
			if !covered[v] {
				covered[v] = true
				remaining--
			}
			walk = append(walk, v)
		}
		current = seg[len(seg)-1]
	}
	if current != start {
		// Close the loop; the final hop back to start is implicit.
		seg := g.shortestPath(current, inSCC, func(v int) bool { return v == start })
		walk = append(walk, seg[:len(seg)-1]...)
	}

	files := make([]string, len(walk))
	for i, v := range walk {
		files[i] = g.files[v]
	}
	return files
}

// shortestPath runs a breadth-first search from src over in-component
// edges and returns the path to the nearest vertex satisfying want,
// excluding src and ending at the target. Neighbors expand in sorted
// order so the result is deterministic.
func (g *DepGraph) shortestPath(src int, inSCC map[int]bool, want func(int) bool) []int {
	parent := map[int]int{src: -1}
	queue := []int{src}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range g.sorted(g.out[v]) {
			if !inSCC[w] {
				continue
			}
			if _, seen := parent[w]; seen {
				continue
			}
			parent[w] = v
			if want(w) {
				var path []int
				for u := w; u != src; u = parent[u] {
					path = append(path, u)
				}
				for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
					path[i], path[j] = path[j], path[i]
				}
				return path
			}
			queue = append(queue, w)
		}
	}
	return nil
}
