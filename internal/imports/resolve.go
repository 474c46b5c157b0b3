// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd005-import-collector R2;
//
//	docs/ARCHITECTURE § Import Collector.
package imports

import (
	"path"
	"strings"

	"github.com/petar-djukic/dsgraph/pkg/types"
)

// probeExts are tried in order when a relative specifier has no
// extension, mirroring bundler resolution.
var probeExts = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".css"}

// resolve maps an import specifier from source to a project file.
// Relative specifiers that match a scanned file are resolved-internal;
// relative specifiers with no match are unresolved (a recorded fact, not
// an error); bare specifiers are resolved-external module names.
//
// Implements: prd005-import-collector R2.1-R2.4.
func resolve(fileSet map[string]bool, source, specifier string) (string, types.Resolution) {
	var base string
	switch {
	case strings.HasPrefix(specifier, "./"), strings.HasPrefix(specifier, "../"):
		base = path.Join(path.Dir(source), specifier)
	case strings.HasPrefix(specifier, "/"):
		// Project-root-relative specifier.
		base = strings.TrimPrefix(specifier, "/")
	default:
		return "", types.ResolvedExternal
	}
	base = path.Clean(base)

	if fileSet[base] {
		return base, types.ResolvedInternal
	}
	for _, ext := range probeExts {
		if fileSet[base+ext] {
			return base + ext, types.ResolvedInternal
		}
	}
	for _, ext := range probeExts {
		if candidate := base + "/index" + ext; fileSet[candidate] {
			return candidate, types.ResolvedInternal
		}
	}
	return "", types.Unresolved
}
