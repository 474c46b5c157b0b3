// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package imports parses source files for module-level import edges and
// derives a directed file-dependency graph plus cycle report.
// Implements: prd005-import-collector R1, R2, R3, R4;
//
//	docs/ARCHITECTURE § Import Collector.
package imports

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/petar-djukic/dsgraph/pkg/types"
)

// langSpec holds the tree-sitter language for a file type.
type langSpec struct {
	lang   *sitter.Language
	css    bool // @import syntax instead of ES modules
	golang bool // import declarations with package paths
}

// supportedLangs maps file extensions to their langSpec.
var supportedLangs = map[string]*langSpec{
	".js":  {lang: javascript.GetLanguage()},
	".jsx": {lang: javascript.GetLanguage()},
	".mjs": {lang: javascript.GetLanguage()},
	".ts":  {lang: typescript.GetLanguage()},
	".tsx": {lang: tsx.GetLanguage()},
	".css": {lang: css.GetLanguage(), css: true},
	".go":  {lang: golang.GetLanguage(), golang: true},
}

// rawImport is one import statement before resolution.
type rawImport struct {
	specifier string
	kind      types.ImportKind
	line      int
}

// extractFile parses one file and returns its import statements.
func extractFile(ctx context.Context, content []byte, spec *langSpec) ([]rawImport, error) {
	root, err := sitter.ParseCtx(ctx, content, spec.lang)
	if err != nil {
		return nil, err
	}

	var imports []rawImport
	switch {
	case spec.css:
		collectCSSImports(root, content, &imports)
	case spec.golang:
		collectGoImports(root, content, &imports)
	default:
		collectJSImports(root, content, &imports)
	}
	return imports, nil
}

// collectGoImports walks the tree for import specs. A Go import path is
// a package path, never file-relative, so each binds the whole package.
func collectGoImports(node *sitter.Node, content []byte, out *[]rawImport) {
	if node == nil {
		return
	}

	if node.Type() == "import_spec" {
		path := node.ChildByFieldName("path")
		if path == nil {
			return
		}
		spec := unquote(path.Content(content))
		if spec == "" {
			return
		}
		*out = append(*out, rawImport{
			specifier: spec,
			kind:      types.NamespaceImport,
			line:      int(node.StartPoint().Row) + 1,
		})
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		collectGoImports(node.Child(i), content, out)
	}
}

// collectJSImports walks the tree for import statements, require calls,
// and dynamic import() expressions.
func collectJSImports(node *sitter.Node, content []byte, out *[]rawImport) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "import_statement":
		if imp, ok := classifyImport(node, content); ok {
			*out = append(*out, imp)
		}
	case "call_expression":
		if imp, ok := classifyCall(node, content); ok {
			*out = append(*out, imp)
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		collectJSImports(node.Child(i), content, out)
	}
}

// classifyImport reads the specifier and binding form of an ES import
// statement: default, named, namespace, or side-effect.
func classifyImport(node *sitter.Node, content []byte) (rawImport, bool) {
	source := node.ChildByFieldName("source")
	if source == nil {
		return rawImport{}, false
	}

	imp := rawImport{
		specifier: unquote(source.Content(content)),
		kind:      types.SideEffectImport,
		line:      int(node.StartPoint().Row) + 1,
	}
	if imp.specifier == "" {
		return rawImport{}, false
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() != "import_clause" {
			continue
		}
		imp.kind = types.NamedImport
		for j := 0; j < int(child.NamedChildCount()); j++ {
			switch child.NamedChild(j).Type() {
			case "identifier":
				imp.kind = types.DefaultImport
			case "namespace_import":
				imp.kind = types.NamespaceImport
			}
		}
	}
	return imp, true
}

// classifyCall recognizes require("mod") and dynamic import("mod").
func classifyCall(node *sitter.Node, content []byte) (rawImport, bool) {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return rawImport{}, false
	}

	isRequire := fn.Type() == "identifier" && fn.Content(content) == "require"
	isDynamic := fn.Type() == "import"
	if !isRequire && !isDynamic {
		return rawImport{}, false
	}

	args := node.ChildByFieldName("arguments")
	if args == nil {
		return rawImport{}, false
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		arg := args.NamedChild(i)
		if arg.Type() != "string" {
			continue
		}
		spec := unquote(arg.Content(content))
		if spec == "" {
			return rawImport{}, false
		}
		kind := types.NamespaceImport // require binds the whole module
		if isDynamic {
			kind = types.SideEffectImport
		}
		return rawImport{
			specifier: spec,
			kind:      kind,
			line:      int(node.StartPoint().Row) + 1,
		}, true
	}
	return rawImport{}, false
}

// collectCSSImports walks a stylesheet for @import statements.
func collectCSSImports(node *sitter.Node, content []byte, out *[]rawImport) {
	if node == nil {
		return
	}

	if node.Type() == "import_statement" {
		if spec := cssImportPath(node, content); spec != "" {
			*out = append(*out, rawImport{
				specifier: spec,
				kind:      types.SideEffectImport,
				line:      int(node.StartPoint().Row) + 1,
			})
		}
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		collectCSSImports(node.Child(i), content, out)
	}
}

// cssImportPath extracts the target of an @import, from either a direct
// string or a url() call.
func cssImportPath(node *sitter.Node, content []byte) string {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "string_value":
			return unquote(child.Content(content))
		case "call_expression":
			for j := 0; j < int(child.ChildCount()); j++ {
				if args := child.Child(j); args.Type() == "arguments" {
					for k := 0; k < int(args.ChildCount()); k++ {
						if s := args.Child(k); s.Type() == "string_value" {
							return unquote(s.Content(content))
						}
					}
				}
			}
		}
	}
	return ""
}

// unquote strips surrounding quote characters from a string literal.
func unquote(s string) string {
	return strings.Trim(s, `"'`)
}
