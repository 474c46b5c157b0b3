// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package history turns raw repository inspection into normalized
// Commit, Developer, and FileChange records, optionally restricted to a
// design-system subset of paths.
// Implements: prd003-history-collector R1, R2, R3, R4;
//
//	docs/ARCHITECTURE § Git History Collector.
package history

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"

	"github.com/petar-djukic/dsgraph/internal/pathfilter"
	"github.com/petar-djukic/dsgraph/internal/repo"
	"github.com/petar-djukic/dsgraph/pkg/types"
)

// errStop terminates commit iteration early without reporting a failure.
var errStop = errors.New("stop iteration")

// Config configures history collection.
//
// Implements: prd003-history-collector R1.1-R1.6.
type Config struct {
	RepositoryPath string     // Filesystem root of the VCS checkout (required)
	Include        []string   // Path patterns; empty admits all paths
	Exclude        []string   // Applied after include; exclusion wins
	CommitLimit    int        // Maximum commits to emit (0 = unlimited)
	Since          *time.Time // Earliest commit time, inclusive
	Until          *time.Time // Latest commit time, inclusive

	// DesignSystemPaths is the path predicate used by
	// CollectDesignSystem. Same algorithm, narrower filter.
	DesignSystemPaths []string
}

// Result is the collector's output boundary: the payload, non-fatal
// diagnostics, and an overall status.
type Result struct {
	Commits    []types.Commit    `json:"commits"`
	Developers []types.Developer `json:"developers"`
	Branch     string            `json:"branch,omitempty"`
	RemoteURL  string            `json:"remote_url,omitempty"`
	Shallow    bool              `json:"shallow,omitempty"`

	Diagnostics []types.Diagnostic `json:"diagnostics,omitempty"`
	Status      types.Status       `json:"status"`
}

// Collector collects normalized history from one repository.
type Collector struct {
	cfg    Config
	filter *pathfilter.Filter
}

// New creates a history collector for the configured repository.
func New(cfg Config) *Collector {
	return &Collector{
		cfg:    cfg,
		filter: pathfilter.New(cfg.Include, cfg.Exclude),
	}
}

// Collect walks the commit log most recent first and emits Commit
// records with FileChange entries restricted to matching paths, plus the
// deduplicated Developer set. A repository-level failure is reported in
// the result, never as a panic: the overall run continues with the other
// collectors.
//
// Implements: prd003-history-collector R2.1-R2.6.
func (c *Collector) Collect(ctx context.Context) *Result {
	return c.collect(ctx, c.filter)
}

// CollectDesignSystem restricts collection to paths recognized as
// design-system sources. Identical merge and dedup logic; only the
// predicate narrows.
//
// Implements: prd003-history-collector R4.1, R4.2.
func (c *Collector) CollectDesignSystem(ctx context.Context) *Result {
	return c.collect(ctx, c.filter.Narrow(c.cfg.DesignSystemPaths))
}

func (c *Collector) collect(ctx context.Context, filter *pathfilter.Filter) *Result {
	result := &Result{}

	r, err := repo.Open(c.cfg.RepositoryPath)
	if err != nil {
		result.Status = types.StatusFailed
		result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
			Path:     c.cfg.RepositoryPath,
			Message:  err.Error(),
			Severity: types.SevError,
		})
		return result
	}

	if branch, err := r.Branch(); err == nil {
		result.Branch = branch
	}
	if url, err := r.RemoteURL(); err == nil {
		result.RemoteURL = url
	}
	if shallow, err := r.IsShallow(); err == nil {
		result.Shallow = shallow
	}

	iter, err := r.Log(repo.LogOptions{Since: c.cfg.Since, Until: c.cfg.Until})
	if err != nil {
		result.Status = types.StatusFailed
		result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
			Path:     c.cfg.RepositoryPath,
			Message:  err.Error(),
			Severity: types.SevError,
		})
		return result
	}
	defer iter.Close()

	developers := make(map[string]types.Developer)
	canceled := false

	err = iter.ForEach(func(raw *object.Commit) error {
		// Cooperative cancellation: stop scheduling new commits.
		if ctx.Err() != nil {
			canceled = true
			return errStop
		}
		if c.cfg.CommitLimit > 0 && len(result.Commits) >= c.cfg.CommitLimit {
			return errStop
		}

		changes, err := fileChanges(ctx, raw)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
				Path:     raw.Hash.String(),
				Message:  "diffing commit: " + err.Error(),
				Severity: types.SevWarning,
			})
			return nil
		}

		var matched []types.FileChange
		for _, ch := range changes {
			if filter.Match(ch.Path) {
				matched = append(matched, ch)
			}
		}
		if len(matched) == 0 {
			return nil // Commit touches no path of interest.
		}

		author := types.Developer{
			Identity: types.Identity(raw.Author.Name, raw.Author.Email),
			Name:     raw.Author.Name,
			Email:    raw.Author.Email,
		}
		developers[author.Identity] = author

		result.Commits = append(result.Commits, types.Commit{
			Hash:    raw.Hash.String(),
			Author:  author,
			When:    raw.Author.When,
			Message: raw.Message,
			Changes: matched,
		})
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
			Path:     c.cfg.RepositoryPath,
			Message:  "walking log: " + err.Error(),
			Severity: types.SevWarning,
		})
	}
	if canceled {
		result.Diagnostics = append(result.Diagnostics, types.Diagnostic{
			Message:  "history collection canceled",
			Severity: types.SevWarning,
		})
	}

	for _, dev := range developers {
		result.Developers = append(result.Developers, dev)
	}
	sort.Slice(result.Developers, func(i, j int) bool {
		return result.Developers[i].Identity < result.Developers[j].Identity
	})

	if len(result.Diagnostics) > 0 {
		result.Status = types.StatusPartial
	} else {
		result.Status = types.StatusComplete
	}
	return result
}

// FileHistory returns the commits that touched path, most recent first,
// as a point lookup over the file's log rather than a full-log scan.
//
// Implements: prd003-history-collector R5.1.
func (c *Collector) FileHistory(ctx context.Context, path string) ([]types.Commit, error) {
	r, err := repo.Open(c.cfg.RepositoryPath)
	if err != nil {
		return nil, err
	}

	iter, err := r.Log(repo.LogOptions{Path: path, Since: c.cfg.Since, Until: c.cfg.Until})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var commits []types.Commit
	err = iter.ForEach(func(raw *object.Commit) error {
		if ctx.Err() != nil {
			return errStop
		}
		if c.cfg.CommitLimit > 0 && len(commits) >= c.cfg.CommitLimit {
			return errStop
		}
		commits = append(commits, types.Commit{
			Hash: raw.Hash.String(),
			Author: types.Developer{
				Identity: types.Identity(raw.Author.Name, raw.Author.Email),
				Name:     raw.Author.Name,
				Email:    raw.Author.Email,
			},
			When:    raw.Author.When,
			Message: raw.Message,
		})
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil, err
	}
	return commits, nil
}

// Blame returns per-line attribution for path as a point lookup.
//
// Implements: prd003-history-collector R5.2.
func (c *Collector) Blame(path string) ([]repo.BlameLine, error) {
	r, err := repo.Open(c.cfg.RepositoryPath)
	if err != nil {
		return nil, err
	}
	return r.Blame(path)
}

// fileChanges diffs a commit against its first parent (or the empty tree
// for a root commit) and returns normalized FileChange records with
// line-level stats.
func fileChanges(ctx context.Context, c *object.Commit) ([]types.FileChange, error) {
	stats := make(map[string][2]int)
	if fileStats, err := c.StatsContext(ctx); err == nil {
		for _, fs := range fileStats {
			stats[fs.Name] = [2]int{fs.Addition, fs.Deletion}
		}
	}

	hash := c.Hash.String()

	if c.NumParents() == 0 {
		tree, err := c.Tree()
		if err != nil {
			return nil, err
		}
		var changes []types.FileChange
		err = tree.Files().ForEach(func(f *object.File) error {
			s := stats[f.Name]
			changes = append(changes, types.FileChange{
				Path:       f.Name,
				Kind:       types.Added,
				CommitHash: hash,
				Additions:  s[0],
				Deletions:  s[1],
			})
			return nil
		})
		return changes, err
	}

	parent, err := c.Parent(0)
	if err != nil {
		return nil, err
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, err
	}
	tree, err := c.Tree()
	if err != nil {
		return nil, err
	}

	diff, err := object.DiffTreeWithOptions(ctx, parentTree, tree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, err
	}

	var changes []types.FileChange
	for _, change := range diff {
		action, err := change.Action()
		if err != nil {
			return nil, err
		}

		fc := types.FileChange{CommitHash: hash}
		switch action {
		case merkletrie.Insert:
			fc.Path = change.To.Name
			fc.Kind = types.Added
		case merkletrie.Delete:
			fc.Path = change.From.Name
			fc.Kind = types.Deleted
		case merkletrie.Modify:
			fc.Path = change.To.Name
			if change.From.Name != change.To.Name {
				fc.Kind = types.Renamed
				fc.OldPath = change.From.Name
			} else {
				fc.Kind = types.Modified
			}
		}

		if s, ok := stats[fc.Path]; ok {
			fc.Additions, fc.Deletions = s[0], s[1]
		} else if s, ok := stats[fc.OldPath]; ok && fc.OldPath != "" {
			fc.Additions, fc.Deletions = s[0], s[1]
		}
		changes = append(changes, fc)
	}
	return changes, nil
}
