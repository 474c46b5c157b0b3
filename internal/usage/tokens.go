// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd004-usage-collector R5;
//
//	docs/ARCHITECTURE § Usage Collector.
package usage

import (
	"context"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"

	"github.com/petar-djukic/dsgraph/pkg/types"
)

// suggestionThreshold is the minimum similarity between a hardcoded
// literal and a declared token value before a suggestion is attached.
const suggestionThreshold = 0.6

// cssDefinitions parses a stylesheet and returns its custom-property
// declarations as token definitions.
func cssDefinitions(ctx context.Context, content []byte, path string) ([]types.TokenDefinition, error) {
	root, err := sitter.ParseCtx(ctx, content, css.GetLanguage())
	if err != nil {
		return nil, err
	}

	var defs []types.TokenDefinition
	collectDeclarations(root, content, path, &defs)
	return defs, nil
}

// collectDeclarations walks the stylesheet tree and records every
// declaration whose property name starts with "--".
func collectDeclarations(node *sitter.Node, content []byte, path string, defs *[]types.TokenDefinition) {
	if node == nil {
		return
	}

	if node.Type() == "declaration" {
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if child.Type() != "property_name" {
				continue
			}
			name := child.Content(content)
			if !strings.HasPrefix(name, "--") {
				continue
			}
			*defs = append(*defs, types.TokenDefinition{
				Name:  name,
				Value: declarationValue(node.Content(content)),
				Path:  path,
				Line:  int(node.StartPoint().Row) + 1,
			})
		}
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		collectDeclarations(node.Child(i), content, path, defs)
	}
}

// declarationValue extracts the value text from "name: value;".
func declarationValue(decl string) string {
	_, value, ok := strings.Cut(decl, ":")
	if !ok {
		return ""
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), ";"))
}

// suggestTokens attaches the closest declared token to each hardcoded
// usage, so a consumer can render "replace #ff0000 with --color-danger".
func suggestTokens(result *Result) {
	if len(result.Definitions) == 0 {
		return
	}

	for i := range result.Tokens {
		if result.Tokens[i].Kind != types.Hardcoded {
			continue
		}
		best := ""
		bestSim := 0.0
		for _, def := range result.Definitions {
			sim := similarity(result.Tokens[i].Value, def.Value)
			if sim >= suggestionThreshold && sim > bestSim {
				best = def.Name
				bestSim = sim
			}
		}
		result.Tokens[i].Suggestion = best
	}
}

// similarity computes the Levenshtein-based similarity ratio between two
// strings using the go-diff library. Returns a value between 0.0 and 1.0.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	distance := dmp.DiffLevenshtein(diffs)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return 1.0 - float64(distance)/float64(maxLen)
}
