// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package imports

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/dsgraph/pkg/types"
)

func TestCollect_ImportKinds(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/app.ts", `import React from "react"
import { useState } from "preact/hooks"
import * as path from "path-browserify"
import "./global.css"
const fs = require("fs-extra")
const lazy = import("./lazy")
`)
	writeFile(t, dir, "src/global.css", "body {}\n")
	writeFile(t, dir, "src/lazy.ts", "export {}\n")

	result := collect(t, dir)
	require.Equal(t, types.StatusComplete, result.Status)

	kinds := make(map[string]types.ImportKind)
	for _, imp := range result.Imports {
		if imp.Path == "src/app.ts" {
			kinds[imp.Specifier] = imp.Kind
		}
	}
	assert.Equal(t, types.DefaultImport, kinds["react"])
	assert.Equal(t, types.NamedImport, kinds["preact/hooks"])
	assert.Equal(t, types.NamespaceImport, kinds["path-browserify"])
	assert.Equal(t, types.SideEffectImport, kinds["./global.css"])
	assert.Equal(t, types.NamespaceImport, kinds["fs-extra"])
	assert.Equal(t, types.SideEffectImport, kinds["./lazy"])
}

func TestCollect_NamedImportKind(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", `import { helper } from "./b"`+"\n")
	writeFile(t, dir, "b.ts", "export const helper = 1\n")

	result := collect(t, dir)
	require.Len(t, result.Imports, 1)
	assert.Equal(t, types.NamedImport, result.Imports[0].Kind)
	assert.Equal(t, 1, result.Imports[0].Line)
}

func TestCollect_Resolution(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/app.ts", `import { Button } from "./components/button"
import missing from "./nowhere"
import React from "react"
`)
	writeFile(t, dir, "src/components/button.tsx", "export const Button = 1\n")

	result := collect(t, dir)

	byspec := make(map[string]types.FileImport)
	for _, imp := range result.Imports {
		byspec[imp.Specifier] = imp
	}

	internal := byspec["./components/button"]
	assert.Equal(t, types.ResolvedInternal, internal.Resolution)
	assert.Equal(t, "src/components/button.tsx", internal.Resolved)

	assert.Equal(t, types.Unresolved, byspec["./nowhere"].Resolution)
	assert.Equal(t, types.ResolvedExternal, byspec["react"].Resolution)
}

func TestCollect_IndexResolution(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/app.ts", `import { Card } from "./card"`+"\n")
	writeFile(t, dir, "src/card/index.ts", "export const Card = 1\n")

	result := collect(t, dir)
	require.Len(t, result.Imports, 1)
	assert.Equal(t, "src/card/index.ts", result.Imports[0].Resolved)
	assert.Equal(t, types.ResolvedInternal, result.Imports[0].Resolution)
}

func TestCollect_CSSImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "styles/app.css", `@import "./tokens.css";
@import url("./base.css");
`)
	writeFile(t, dir, "styles/tokens.css", ":root {}\n")
	writeFile(t, dir, "styles/base.css", "body {}\n")

	result := collect(t, dir)

	var resolved []string
	for _, imp := range result.Imports {
		resolved = append(resolved, imp.Resolved)
	}
	assert.ElementsMatch(t, []string{"styles/tokens.css", "styles/base.css"}, resolved)
}

func TestCollect_GraphAdjacency(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", `import "./b"`+"\n")
	writeFile(t, dir, "c.ts", `import "./b"`+"\n")
	writeFile(t, dir, "b.ts", "export {}\n")

	result := collect(t, dir)

	assert.Equal(t, []string{"b.ts"}, result.Graph.ImportsOf("a.ts"))
	assert.Equal(t, []string{"a.ts", "c.ts"}, result.Graph.ImportersOf("b.ts"))
	assert.Empty(t, result.Graph.ImportsOf("b.ts"))
}

func TestCollect_EdgePerInternalImport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", `import "./b"
import "./b"
import React from "react"
`)
	writeFile(t, dir, "b.ts", "export {}\n")

	result := collect(t, dir)

	// Repeated imports collapse to one edge; external imports add none.
	assert.Equal(t, [][2]string{{"a.ts", "b.ts"}}, result.Graph.Edges())
}

func TestCycles_SingleCycleAmongOtherFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", `import "./b"`+"\n")
	writeFile(t, dir, "b.ts", `import "./c"`+"\n")
	writeFile(t, dir, "c.ts", `import "./a"`+"\n")
	writeFile(t, dir, "d.ts", `import "./e"`+"\n")
	writeFile(t, dir, "e.ts", "export {}\n")

	result := collect(t, dir)

	require.Len(t, result.Cycles, 1)
	assert.Equal(t, []string{"a.ts", "b.ts", "c.ts"}, result.Cycles[0].Files)
}

func TestCycles_SelfImport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", `import "./a"`+"\n")

	result := collect(t, dir)

	require.Len(t, result.Cycles, 1)
	assert.Equal(t, []string{"a.ts"}, result.Cycles[0].Files)
}

func TestCycles_SharedFileInTwoLoops(t *testing.T) {
	// a↔b and b↔c form one strongly connected component with no simple
	// cycle through all three files; the reported group must still name
	// every member.
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", `import "./b"`+"\n")
	writeFile(t, dir, "b.ts", `import "./a"
import "./c"
`)
	writeFile(t, dir, "c.ts", `import "./b"`+"\n")

	result := collect(t, dir)

	require.Len(t, result.Cycles, 1)
	files := result.Cycles[0].Files

	members := make(map[string]bool)
	for _, f := range files {
		members[f] = true
	}
	assert.True(t, members["a.ts"])
	assert.True(t, members["b.ts"])
	assert.True(t, members["c.ts"])
	// The walk revisits the shared file to cover both loops.
	assert.Equal(t, []string{"a.ts", "b.ts", "c.ts", "b.ts"}, files)
}

func TestCycles_TwoIndependentCycles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", `import "./b"`+"\n")
	writeFile(t, dir, "b.ts", `import "./a"`+"\n")
	writeFile(t, dir, "x.ts", `import "./y"`+"\n")
	writeFile(t, dir, "y.ts", `import "./x"`+"\n")

	result := collect(t, dir)

	require.Len(t, result.Cycles, 2)
	assert.Equal(t, []string{"a.ts", "b.ts"}, result.Cycles[0].Files)
	assert.Equal(t, []string{"x.ts", "y.ts"}, result.Cycles[1].Files)
}

func TestCollect_Acyclic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", `import "./b"`+"\n")
	writeFile(t, dir, "b.ts", "export {}\n")

	result := collect(t, dir)
	assert.Empty(t, result.Cycles)
}

func TestCollect_GoImportsAreExternal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "tools/gen.go", `package main

import (
	"fmt"
	"os/exec"
)
`)

	result := collect(t, dir)

	var specs []string
	for _, imp := range result.Imports {
		assert.Equal(t, types.NamespaceImport, imp.Kind)
		assert.Equal(t, types.ResolvedExternal, imp.Resolution)
		specs = append(specs, imp.Specifier)
	}
	assert.ElementsMatch(t, []string{"fmt", "os/exec"}, specs)
	assert.Empty(t, result.Graph.Edges())
}

func TestCollect_UnsupportedFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "see ./other\n")
	writeFile(t, dir, "a.ts", "export {}\n")

	result := collect(t, dir)
	assert.Empty(t, result.Imports)
	assert.Equal(t, types.StatusComplete, result.Status)
}

func TestCollect_DeterministicAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ts", `import "./b"`+"\n")
	writeFile(t, dir, "b.ts", `import "./c"`+"\n")
	writeFile(t, dir, "c.ts", "export {}\n")

	first := collect(t, dir)
	second := collect(t, dir)
	assert.Equal(t, first.Imports, second.Imports)
	assert.Equal(t, first.Graph.Edges(), second.Graph.Edges())
}

func collect(t *testing.T, dir string) *Result {
	t.Helper()
	return New(Config{Root: dir}).Collect(context.Background())
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
