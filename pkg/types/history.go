// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across dsgraph packages.
// Implements: prd001-collector-interface R5 (shared types).
package types

import (
	"strings"
	"time"
)

// ChangeKind identifies how a commit touched a file.
type ChangeKind int

const (
	Added    ChangeKind = iota // File created in this commit
	Modified                   // File content changed
	Deleted                    // File removed
	Renamed                    // File moved; OldPath holds the previous name
)

// String returns the human-readable name of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	case Renamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// FileChange records a single file touched by a commit. CommitHash is a
// back-reference to the owning commit, not ownership.
//
// Implements: prd003-history-collector R2.3, R2.4.
type FileChange struct {
	Path       string     `json:"path"`
	Kind       ChangeKind `json:"kind"`
	CommitHash string     `json:"commit_hash"`
	OldPath    string     `json:"old_path,omitempty"` // Set for renames
	Additions  int        `json:"additions"`
	Deletions  int        `json:"deletions"`
}

// Developer is a commit author deduplicated by normalized identity.
//
// Implements: prd003-history-collector R3.1-R3.3.
type Developer struct {
	Identity string `json:"identity"` // Normalized "name <email>" key
	Name     string `json:"name"`     // Display name as recorded in the commit
	Email    string `json:"email"`
}

// Identity normalizes a name and email into the deduplication key shared
// by all collectors: lowercased, whitespace-trimmed "name <email>".
func Identity(name, email string) string {
	return strings.ToLower(strings.TrimSpace(name)) + " <" + strings.ToLower(strings.TrimSpace(email)) + ">"
}

// Commit is a normalized version-control commit. Immutable once collected.
//
// Implements: prd003-history-collector R2.1, R2.2.
type Commit struct {
	Hash    string       `json:"hash"`
	Author  Developer    `json:"author"`
	When    time.Time    `json:"when"`
	Message string       `json:"message"`
	Changes []FileChange `json:"changes"`
}

// ShortHash returns the abbreviated commit hash used in rendered output.
func (c Commit) ShortHash() string {
	if len(c.Hash) < 8 {
		return c.Hash
	}
	return c.Hash[:8]
}
