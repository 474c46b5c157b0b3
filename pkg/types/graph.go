// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd006-graph-assembler R1, R2, R4;
//
//	docs/ARCHITECTURE § Graph Assembler.
package types

// NodeKind tags the entity category of a graph node.
type NodeKind string

const (
	FileNode      NodeKind = "file"
	CommitNode    NodeKind = "commit"
	DeveloperNode NodeKind = "developer"
	TokenNode     NodeKind = "token"
	ComponentNode NodeKind = "component"
)

// Relation tags the meaning of a graph edge.
type Relation string

const (
	Authored     Relation = "authored"       // Commit → Developer
	ModifiedFile Relation = "modified"       // Commit → File
	UsesToken    Relation = "uses-token"     // File → Token
	UsesComp     Relation = "uses-component" // File → Component
	Imports      Relation = "imports"        // File → File
)

// GraphNode is one deduplicated entity in the assembled graph. ID is
// content-derived ("<kind>:<canonical-key>"): collecting the same logical
// entity twice yields the same id.
//
// Implements: prd006-graph-assembler R1.1-R1.3.
type GraphNode struct {
	ID    string         `json:"id"`
	Kind  NodeKind       `json:"kind"`
	Key   string         `json:"key"` // Canonical key within the kind
	Attrs map[string]any `json:"attrs,omitempty"`
}

// GraphEdge is a directed relation between two existing nodes. Weight
// carries relation-specific metadata such as usage or change counts.
type GraphEdge struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Relation Relation `json:"relation"`
	Weight   float64  `json:"weight,omitempty"`
}

// Graph is the terminal artifact of a collection run, handed to
// consumers read-only. Cycles are graph-level metadata, not edges: a
// cycle is a property of a subgraph, not a single relation.
//
// Implements: prd006-graph-assembler R4.1-R4.4.
type Graph struct {
	Nodes  []GraphNode `json:"nodes"`
	Edges  []GraphEdge `json:"edges"`
	Cycles []Cycle     `json:"cycles,omitempty"`
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *GraphNode {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Out returns the edges leaving id with the given relation.
func (g *Graph) Out(id string, rel Relation) []GraphEdge {
	var edges []GraphEdge
	for _, e := range g.Edges {
		if e.From == id && e.Relation == rel {
			edges = append(edges, e)
		}
	}
	return edges
}

// In returns the edges arriving at id with the given relation.
func (g *Graph) In(id string, rel Relation) []GraphEdge {
	var edges []GraphEdge
	for _, e := range g.Edges {
		if e.To == id && e.Relation == rel {
			edges = append(edges, e)
		}
	}
	return edges
}
