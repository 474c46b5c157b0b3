// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package usage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/dsgraph/pkg/types"
)

func TestCollect_HardcodedHexColor(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/button.tsx", `export const Button = () => <button style={{ color: "#ff0000" }} />`+"\n")

	result := collect(t, Config{Root: dir})
	require.Equal(t, types.StatusComplete, result.Status)

	var hardcoded []types.TokenUsage
	for _, u := range result.Tokens {
		if u.Kind == types.Hardcoded {
			hardcoded = append(hardcoded, u)
		}
	}
	require.Len(t, hardcoded, 1)
	assert.Equal(t, "src/button.tsx", hardcoded[0].Path)
	assert.Equal(t, 1, hardcoded[0].Line)
	assert.Equal(t, "#ff0000", hardcoded[0].Value)
}

func TestCollect_HardcodedColorFnAndSpacing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "styles/app.css",
		".card {\n  background: rgba(0, 0, 0, 0.5);\n  padding: 12px;\n}\n")

	result := collect(t, Config{Root: dir})

	values := tokenValues(result, types.Hardcoded)
	assert.Equal(t, []string{"rgba(0, 0, 0, 0.5)", "12px"}, values)
}

func TestCollect_TokenReference(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "styles/app.css", ".card { color: var(--color-primary); }\n")

	result := collect(t, Config{Root: dir})

	refs := tokenValues(result, types.TokenReference)
	assert.Equal(t, []string{"--color-primary"}, refs)
	assert.Empty(t, tokenValues(result, types.Hardcoded))
}

func TestCollect_DeclarationLineIsNotHardcoded(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "styles/tokens.css", ":root {\n  --color-primary: #0055ff;\n}\n")

	result := collect(t, Config{Root: dir})

	// The literal defines the token; it is not a violation.
	assert.Empty(t, tokenValues(result, types.Hardcoded))
	require.Len(t, result.Definitions, 1)
	assert.Equal(t, "--color-primary", result.Definitions[0].Name)
	assert.Equal(t, "#0055ff", result.Definitions[0].Value)
	assert.Equal(t, "styles/tokens.css", result.Definitions[0].Path)
	assert.Equal(t, 2, result.Definitions[0].Line)
}

func TestCollect_ComponentUsageWithContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/page.tsx",
		"function HomePage() {\n  return <Button label=\"go\" />\n}\n")

	result := collect(t, Config{Root: dir})

	require.Len(t, result.Components, 1)
	assert.Equal(t, "Button", result.Components[0].Component)
	assert.Equal(t, "HomePage", result.Components[0].Context)
	assert.Equal(t, 2, result.Components[0].Line)
}

func TestCollect_ComponentCallInvocation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/page.ts",
		"function render() {\n  const el = Button({ label: \"go\" })\n  const when = new Date()\n}\n")

	result := collect(t, Config{Root: dir})

	// The constructor call is not a component usage.
	require.Len(t, result.Components, 1)
	assert.Equal(t, "Button", result.Components[0].Component)
	assert.Equal(t, "render", result.Components[0].Context)
}

func TestCollect_ConfiguredPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/theme.ts",
		"const color = theme.colors.primary\nrender(createElement(Card))\n")

	result := collect(t, Config{
		Root:              dir,
		TokenPatterns:     []string{`theme\.colors\.[a-z]+`},
		ComponentPatterns: []string{`createElement\([A-Z][A-Za-z0-9]*\)`},
	})

	assert.Equal(t, []string{"theme.colors.primary"}, tokenValues(result, types.TokenReference))
	require.Len(t, result.Components, 1)
	assert.Equal(t, "createElement(Card)", result.Components[0].Component)
}

func TestCollect_SuggestionForCloseLiteral(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "styles/tokens.css", ":root {\n  --color-primary: #0055ff;\n}\n")
	writeFile(t, dir, "styles/app.css", ".link { color: #0055fe; }\n")

	result := collect(t, Config{Root: dir})

	var hardcoded []types.TokenUsage
	for _, u := range result.Tokens {
		if u.Kind == types.Hardcoded {
			hardcoded = append(hardcoded, u)
		}
	}
	require.Len(t, hardcoded, 1)
	assert.Equal(t, "--color-primary", hardcoded[0].Suggestion)
}

func TestCollect_DeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.css", ".b { margin: 4px; padding: 8px; }\n")
	writeFile(t, dir, "a.css", ".a { margin: 2px; }\n")

	first := collect(t, Config{Root: dir, Workers: 4})
	second := collect(t, Config{Root: dir, Workers: 1})
	assert.Equal(t, first.Tokens, second.Tokens)

	assert.Equal(t, []string{"2px", "4px", "8px"}, tokenValues(first, types.Hardcoded))
}

func TestCollect_ExcludedFilesSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/app.css", ".a { margin: 2px; }\n")
	writeFile(t, dir, "dist/app.css", ".a { margin: 2px; }\n")

	result := collect(t, Config{Root: dir, Exclude: []string{"dist/**"}})

	require.Len(t, result.Tokens, 1)
	assert.Equal(t, "src/app.css", result.Tokens[0].Path)
}

func TestScanFile_UnreadableFileDiagnostic(t *testing.T) {
	c, err := New(Config{Root: t.TempDir()})
	require.NoError(t, err)

	fr := c.scanFile(context.Background(), "missing.css")
	require.NotNil(t, fr.diag)
	assert.Equal(t, "missing.css", fr.diag.Path)
	assert.Equal(t, types.SevWarning, fr.diag.Severity)
}

func TestNew_InvalidPatternRejected(t *testing.T) {
	_, err := New(Config{Root: ".", TokenPatterns: []string{"("}})
	assert.Error(t, err)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("#ff0000", "#ff0000"))
	assert.Equal(t, 0.0, similarity("", "#ff0000"))
	assert.Greater(t, similarity("#0055ff", "#0055fe"), suggestionThreshold)
	assert.Less(t, similarity("#0055ff", "12px"), suggestionThreshold)
}

func collect(t *testing.T, cfg Config) *Result {
	t.Helper()
	c, err := New(cfg)
	require.NoError(t, err)
	return c.Collect(context.Background())
}

func tokenValues(result *Result, kind types.UsageKind) []string {
	var values []string
	for _, u := range result.Tokens {
		if u.Kind == kind {
			values = append(values, u.Value)
		}
	}
	return values
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
