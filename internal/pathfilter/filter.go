// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pathfilter implements the include/exclude filter shared by all
// collectors: gitignore-style patterns, exclusion wins on conflict.
// Implements: prd001-collector-interface R2;
//
//	docs/ARCHITECTURE § Path Filtering.
package pathfilter

import (
	"os"
	"path/filepath"
	"sort"

	ignore "github.com/sabhiram/go-gitignore"
)

// Filter matches project-relative, slash-separated paths against ordered
// include and exclude pattern sets. An empty include set admits every
// path; exclusion always wins.
type Filter struct {
	include *ignore.GitIgnore
	exclude *ignore.GitIgnore
	narrow  *ignore.GitIgnore // Extra predicate layered by Narrow
}

// New compiles include and exclude patterns into a Filter.
func New(include, exclude []string) *Filter {
	f := &Filter{}
	if len(include) > 0 {
		f.include = ignore.CompileIgnoreLines(include...)
	}
	if len(exclude) > 0 {
		f.exclude = ignore.CompileIgnoreLines(exclude...)
	}
	return f
}

// Match reports whether path passes the filter. Path must be
// project-relative with forward slashes.
func (f *Filter) Match(path string) bool {
	if f.exclude != nil && f.exclude.MatchesPath(path) {
		return false
	}
	if f.include != nil && !f.include.MatchesPath(path) {
		return false
	}
	if f.narrow != nil && !f.narrow.MatchesPath(path) {
		return false
	}
	return true
}

// Narrow returns a copy of f that additionally requires one of the given
// patterns to match. Used for the design-system path predicate: same
// filter semantics, narrower candidate set.
func (f *Filter) Narrow(patterns []string) *Filter {
	if len(patterns) == 0 {
		return f
	}
	narrowed := *f
	narrowed.narrow = ignore.CompileIgnoreLines(patterns...)
	return &narrowed
}

// Walk lists files under root that pass the filter, as sorted
// project-relative slash paths. Version-control metadata and common
// dependency directories are skipped.
func Walk(root string, f *Filter) ([]string, error) {
	var files []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip files we cannot stat.
		}
		if info.IsDir() {
			base := filepath.Base(path)
			if base == ".git" || base == "vendor" || base == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if f.Match(rel) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
