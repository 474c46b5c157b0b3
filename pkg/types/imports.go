// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd005-import-collector R1, R2;
//
//	docs/ARCHITECTURE § Import Collector.
package types

// ImportKind identifies the binding form of an import statement.
type ImportKind int

const (
	DefaultImport    ImportKind = iota // import X from "mod"
	NamedImport                        // import { a, b } from "mod"
	NamespaceImport                    // import * as X from "mod"
	SideEffectImport                   // import "mod" / @import / require for effect
)

// String returns the human-readable name of the import kind.
func (k ImportKind) String() string {
	switch k {
	case DefaultImport:
		return "default"
	case NamedImport:
		return "named"
	case NamespaceImport:
		return "namespace"
	case SideEffectImport:
		return "side-effect"
	default:
		return "unknown"
	}
}

// Resolution reports how an import specifier resolved.
type Resolution int

const (
	ResolvedInternal Resolution = iota // Specifier points at a scanned project file
	ResolvedExternal                   // Bare specifier for an external module
	Unresolved                         // Relative specifier with no matching file
)

// String returns the human-readable name of the resolution status.
func (r Resolution) String() string {
	switch r {
	case ResolvedInternal:
		return "resolved-internal"
	case ResolvedExternal:
		return "resolved-external"
	case Unresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// FileImport is one import edge extracted from a source file. Resolved
// holds the project-relative target path for resolved-internal imports
// and is empty otherwise. Unresolved imports are recorded facts, not
// errors.
//
// Implements: prd005-import-collector R1.1-R1.4.
type FileImport struct {
	Path       string     `json:"path"`      // Importing file
	Specifier  string     `json:"specifier"` // Literal specifier text
	Resolved   string     `json:"resolved,omitempty"`
	Kind       ImportKind `json:"kind"`
	Resolution Resolution `json:"resolution"`
	Line       int        `json:"line"`
}

// Cycle is one circular-dependency group: the ordered sequence of files
// forming the loop (the last file imports the first). Files may repeat
// when the group weaves more than one loop through a shared file.
//
// Implements: prd005-import-collector R4.2, R4.3.
type Cycle struct {
	Files []string `json:"files"`
}
