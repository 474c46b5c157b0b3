// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd002-repo-inspector R2.3;
//
//	docs/ARCHITECTURE § Repository Inspector.
package repo

import (
	"fmt"
	"time"

	gogit "github.com/go-git/go-git/v5"
)

// BlameLine attributes one line of a file to the commit that last
// changed it.
type BlameLine struct {
	Line       int       // 1-based line number
	CommitHash string
	Author     string // Author email as recorded by git
	AuthorName string
	When       time.Time
	Text       string
}

// Blame returns per-line attribution for the file at path, as of HEAD.
// Exposed as a point lookup for interactive use; it does not scan the
// full log.
func (r *Repository) Blame(path string) ([]BlameLine, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("%w: reading HEAD: %v", ErrInspection, err)
	}

	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("%w: reading HEAD commit: %v", ErrInspection, err)
	}

	result, err := gogit.Blame(commit, path)
	if err != nil {
		return nil, fmt.Errorf("%w: blaming %s: %v", ErrInspection, path, err)
	}

	lines := make([]BlameLine, 0, len(result.Lines))
	for i, l := range result.Lines {
		lines = append(lines, BlameLine{
			Line:       i + 1,
			CommitHash: l.Hash.String(),
			Author:     l.Author,
			AuthorName: l.AuthorName,
			When:       l.Date,
			Text:       l.Text,
		})
	}
	return lines, nil
}
