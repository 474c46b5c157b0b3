// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package repo provides read-only access to version-control metadata:
// commit enumeration, blame, branch and remote lookup. All other
// VCS-facing logic depends on it.
// Implements: prd002-repo-inspector R1, R2, R3;
//
//	docs/ARCHITECTURE § Repository Inspector.
package repo

import (
	"errors"
	"fmt"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNotARepository is returned when the path has no recognizable VCS
// metadata. This is a common legitimate state (a newly initialized
// project), so callers catch and report it instead of failing the run.
var ErrNotARepository = errors.New("not a git repository")

// ErrInspection is returned when VCS metadata is present but unreadable
// or malformed.
var ErrInspection = errors.New("repository inspection failed")

// LogOptions bounds a commit log request.
type LogOptions struct {
	Path  string     // Restrict the log to one file (point lookup)
	Since *time.Time // Earliest commit time, inclusive
	Until *time.Time // Latest commit time, inclusive
}

// Repository wraps a go-git repository for the read-only operations the
// collectors need.
type Repository struct {
	repo *gogit.Repository
	path string
}

// Open opens the repository at path. Returns ErrNotARepository when the
// path is not a git checkout.
//
// Implements: prd002-repo-inspector R1.1, R1.2.
func Open(path string) (*Repository, error) {
	r, err := gogit.PlainOpen(path)
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotARepository, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrInspection, err)
	}
	return &Repository{repo: r, path: path}, nil
}

// Path returns the filesystem root the repository was opened at.
func (r *Repository) Path() string {
	return r.path
}

// Log returns a lazy, reverse-chronological iterator over raw commit
// records. The iterator is consumed at most once; callers own Close.
//
// Implements: prd002-repo-inspector R2.1, R2.2.
func (r *Repository) Log(opts LogOptions) (object.CommitIter, error) {
	logOpts := &gogit.LogOptions{
		Order: gogit.LogOrderCommitterTime,
		Since: opts.Since,
		Until: opts.Until,
	}
	if opts.Path != "" {
		p := opts.Path
		logOpts.FileName = &p
	}

	iter, err := r.repo.Log(logOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: reading log: %v", ErrInspection, err)
	}
	return iter, nil
}

// Branch returns the current branch name, or the short commit hash when
// HEAD is detached.
//
// Implements: prd002-repo-inspector R3.1.
func (r *Repository) Branch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("%w: reading HEAD: %v", ErrInspection, err)
	}
	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}
	return head.Hash().String()[:8], nil
}

// RemoteURL returns the first URL of the "origin" remote, falling back
// to the first configured remote. Empty when no remote is configured.
//
// Implements: prd002-repo-inspector R3.2.
func (r *Repository) RemoteURL() (string, error) {
	remote, err := r.repo.Remote("origin")
	if err != nil {
		remotes, err := r.repo.Remotes()
		if err != nil {
			return "", fmt.Errorf("%w: listing remotes: %v", ErrInspection, err)
		}
		if len(remotes) == 0 {
			return "", nil
		}
		remote = remotes[0]
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}
	return urls[0], nil
}

// IsShallow reports whether the checkout is a shallow clone, in which
// case history collection sees a truncated log.
func (r *Repository) IsShallow() (bool, error) {
	hashes, err := r.repo.Storer.Shallow()
	if err != nil {
		return false, fmt.Errorf("%w: reading shallow metadata: %v", ErrInspection, err)
	}
	return len(hashes) > 0, nil
}
