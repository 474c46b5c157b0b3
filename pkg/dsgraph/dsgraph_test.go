// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package dsgraph

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/dsgraph/pkg/types"
)

func TestNew_RequiresRoot(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNew_RootMustExist(t *testing.T) {
	_, err := New(Config{Root: filepath.Join(t.TempDir(), "nope")})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNew_RejectsInvalidPatterns(t *testing.T) {
	_, err := New(Config{Root: t.TempDir(), TokenPatterns: []string{"("}})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New(Config{Root: t.TempDir(), ComponentPatterns: []string{"["}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "styles/tokens.css", ":root {\n  --space-m: 16px;\n}\n")
	writeFile(t, dir, "src/card.tsx", `import "../styles/tokens.css"

function Card() {
  return <Panel style={{ padding: "var(--space-m)" }} />
}
`)

	c, err := New(Config{Root: dir, NoGit: true})
	require.NoError(t, err)

	report, err := c.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, types.StatusComplete, report.Status)
	require.NotNil(t, report.Graph)
	assert.NotNil(t, report.Graph.Node("token:--space-m"))
	assert.NotNil(t, report.Graph.Node("component:Panel"))
	assert.Equal(t, 1, report.Stats.Imports)
	assert.Equal(t, 1, report.Stats.ComponentUsages)
	assert.Zero(t, report.Stats.Commits)
}

func TestRun_ReportsCycles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", `import "./b"`+"\n")
	writeFile(t, dir, "b.ts", `import "./a"`+"\n")

	c, err := New(Config{Root: dir, NoGit: true})
	require.NoError(t, err)

	report, err := c.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Cycles, 1)
	assert.Equal(t, []string{"a.ts", "b.ts"}, report.Cycles[0].Files)
	assert.Equal(t, 1, report.Stats.Cycles)
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
