// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd004-usage-collector R1, R2;
//
//	docs/ARCHITECTURE § Usage Collector.
package types

// UsageKind distinguishes hardcoded design values from token references.
type UsageKind int

const (
	Hardcoded      UsageKind = iota // Raw literal (hex color, px spacing) not going through a token
	TokenReference                  // Recognized design-token identifier
)

// String returns the human-readable name of the usage kind.
func (k UsageKind) String() string {
	switch k {
	case Hardcoded:
		return "hardcoded"
	case TokenReference:
		return "token-reference"
	default:
		return "unknown"
	}
}

// TokenUsage records one occurrence of a design value in a source or
// style file. Line and Column are 1-based for traceability.
//
// Implements: prd004-usage-collector R2.1-R2.4.
type TokenUsage struct {
	Path   string    `json:"path"`
	Line   int       `json:"line"`
	Column int       `json:"column"`
	Value  string    `json:"value"` // Literal text or token identifier as matched
	Kind   UsageKind `json:"kind"`

	// Suggestion is the closest declared token for a hardcoded value,
	// empty when no declaration is similar enough.
	Suggestion string `json:"suggestion,omitempty"`
}

// ComponentUsage records one invocation of a design-system component.
//
// Implements: prd004-usage-collector R3.1-R3.3.
type ComponentUsage struct {
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Component string `json:"component"`
	Context   string `json:"context,omitempty"` // Enclosing function/scope when resolvable
}

// TokenDefinition records a design-token declaration (a CSS custom
// property) found in a style file.
type TokenDefinition struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Path  string `json:"path"`
	Line  int    `json:"line"`
}
