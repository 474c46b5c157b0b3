// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd004-usage-collector R2;
//
//	docs/ARCHITECTURE § Usage Collector.
package usage

import (
	"regexp"
	"strings"

	"github.com/petar-djukic/dsgraph/pkg/types"
)

// Built-in hardcoded-value detectors. A raw color or spacing literal not
// going through a token reference is flagged as technical debt.
var (
	hexColorRe = regexp.MustCompile(`#(?:[0-9a-fA-F]{8}|[0-9a-fA-F]{6}|[0-9a-fA-F]{3,4})\b`)
	colorFnRe  = regexp.MustCompile(`\b(?:rgb|rgba|hsl|hsla)\([^)]*\)`)
	spacingRe  = regexp.MustCompile(`\b\d+(?:\.\d+)?(?:px|rem|em)\b`)

	// varRefRe captures CSS custom-property references: var(--name).
	varRefRe = regexp.MustCompile(`var\(\s*(--[A-Za-z0-9_-]+)`)

	// declRe matches a custom-property declaration line. The literal on
	// such a line is the token's value, not a hardcoded usage.
	declRe = regexp.MustCompile(`^\s*--[A-Za-z0-9_-]+\s*:`)

	// jsxComponentRe matches capitalized JSX element names.
	jsxComponentRe = regexp.MustCompile(`<([A-Z][A-Za-z0-9]*)\b`)

	// componentCallRe matches call-style component invocations:
	// Button({...}). Member accesses and JSX are excluded by the
	// leading-character class.
	componentCallRe = regexp.MustCompile(`(?:^|[^.\w$</])([A-Z][A-Za-z0-9]*)\(`)

	// contextRe tracks the enclosing function or class while scanning.
	contextRe = regexp.MustCompile(`(?:function\s+([A-Za-z0-9_$]+)|const\s+([A-Za-z0-9_$]+)\s*=|class\s+([A-Za-z0-9_$]+))`)
)

// hardcodedRes are the detectors for literal design values.
var hardcodedRes = []*regexp.Regexp{hexColorRe, colorFnRe, spacingRe}

// scanLine matches one line of a file and appends TokenUsage and
// ComponentUsage records. Columns are 1-based byte offsets so every
// match stays traceable to its exact location.
func (c *Collector) scanLine(path string, lineNo int, line, scope string, out *fileResult) {
	// Symbolic references: var(--token) and configured token patterns.
	for _, m := range varRefRe.FindAllStringSubmatchIndex(line, -1) {
		out.tokens = append(out.tokens, types.TokenUsage{
			Path:   path,
			Line:   lineNo,
			Column: m[2] + 1,
			Value:  line[m[2]:m[3]],
			Kind:   types.TokenReference,
		})
	}
	for _, re := range c.tokenRes {
		for _, m := range re.FindAllStringIndex(line, -1) {
			out.tokens = append(out.tokens, types.TokenUsage{
				Path:   path,
				Line:   lineNo,
				Column: m[0] + 1,
				Value:  line[m[0]:m[1]],
				Kind:   types.TokenReference,
			})
		}
	}

	// Hardcoded literals, except on declaration lines where the literal
	// is the token's own value.
	if !declRe.MatchString(line) {
		for _, re := range hardcodedRes {
			for _, m := range re.FindAllStringIndex(line, -1) {
				out.tokens = append(out.tokens, types.TokenUsage{
					Path:   path,
					Line:   lineNo,
					Column: m[0] + 1,
					Value:  line[m[0]:m[1]],
					Kind:   types.Hardcoded,
				})
			}
		}
	}

	// Component invocations: JSX elements, call-style invocations, and
	// configured patterns.
	for _, m := range jsxComponentRe.FindAllStringSubmatchIndex(line, -1) {
		out.components = append(out.components, types.ComponentUsage{
			Path:      path,
			Line:      lineNo,
			Column:    m[2] + 1,
			Component: line[m[2]:m[3]],
			Context:   scope,
		})
	}
	for _, m := range componentCallRe.FindAllStringSubmatchIndex(line, -1) {
		name := line[m[2]:m[3]]
		// A declaration or constructor call is not a component usage.
		if name == enclosingScope(line) || strings.HasSuffix(line[:m[2]], "new ") {
			continue
		}
		out.components = append(out.components, types.ComponentUsage{
			Path:      path,
			Line:      lineNo,
			Column:    m[2] + 1,
			Component: name,
			Context:   scope,
		})
	}
	for _, re := range c.componentRes {
		for _, m := range re.FindAllStringIndex(line, -1) {
			out.components = append(out.components, types.ComponentUsage{
				Path:      path,
				Line:      lineNo,
				Column:    m[0] + 1,
				Component: line[m[0]:m[1]],
				Context:   scope,
			})
		}
	}
}

// enclosingScope returns the declaration name a line introduces, or ""
// when the line does not open a new scope.
func enclosingScope(line string) string {
	m := contextRe.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	for _, group := range m[1:] {
		if group != "" {
			return group
		}
	}
	return ""
}
