// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package repo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_ValidRepo(t *testing.T) {
	dir := initTestRepo(t)

	r, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, r.Path())
}

func TestOpen_NotARepo(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.ErrorIs(t, err, ErrNotARepository)
}

func TestLog_ReverseChronological(t *testing.T) {
	dir := initTestRepo(t)
	addFileAndCommit(t, dir, "a.css", ":root {}\n", "add a.css")
	addFileAndCommit(t, dir, "b.css", ":root {}\n", "add b.css")

	r, err := Open(dir)
	require.NoError(t, err)

	iter, err := r.Log(LogOptions{})
	require.NoError(t, err)
	defer iter.Close()

	var messages []string
	require.NoError(t, iter.ForEach(func(c *object.Commit) error {
		messages = append(messages, c.Message)
		return nil
	}))
	assert.Equal(t, []string{"add b.css", "add a.css", "initial commit"}, messages)
}

func TestLog_FileScoped(t *testing.T) {
	dir := initTestRepo(t)
	addFileAndCommit(t, dir, "a.css", ":root {}\n", "add a.css")
	addFileAndCommit(t, dir, "b.css", ":root {}\n", "add b.css")

	r, err := Open(dir)
	require.NoError(t, err)

	iter, err := r.Log(LogOptions{Path: "a.css"})
	require.NoError(t, err)
	defer iter.Close()

	var messages []string
	require.NoError(t, iter.ForEach(func(c *object.Commit) error {
		messages = append(messages, c.Message)
		return nil
	}))
	assert.Equal(t, []string{"add a.css"}, messages)
}

func TestBranch_OnDefaultBranch(t *testing.T) {
	dir := initTestRepo(t)

	r, err := Open(dir)
	require.NoError(t, err)

	branch, err := r.Branch()
	require.NoError(t, err)
	assert.Contains(t, []string{"master", "main"}, branch)
}

func TestRemoteURL_NoRemote(t *testing.T) {
	dir := initTestRepo(t)

	r, err := Open(dir)
	require.NoError(t, err)

	url, err := r.RemoteURL()
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestRemoteURL_Origin(t *testing.T) {
	dir := initTestRepo(t)

	gr, err := gogit.PlainOpen(dir)
	require.NoError(t, err)
	_, err = gr.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"https://example.com/design-system.git"},
	})
	require.NoError(t, err)

	r, err := Open(dir)
	require.NoError(t, err)

	url, err := r.RemoteURL()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/design-system.git", url)
}

func TestIsShallow_FullClone(t *testing.T) {
	dir := initTestRepo(t)

	r, err := Open(dir)
	require.NoError(t, err)

	shallow, err := r.IsShallow()
	require.NoError(t, err)
	assert.False(t, shallow)
}

func TestBlame_AttributesLines(t *testing.T) {
	dir := initTestRepo(t)
	addFileAndCommit(t, dir, "tokens.css", ":root {\n  --color-primary: #0055ff;\n}\n", "add tokens")

	r, err := Open(dir)
	require.NoError(t, err)

	lines, err := r.Blame("tokens.css")
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, 1, lines[0].Line)
	assert.Equal(t, "test@test.com", lines[0].Author)
	assert.Equal(t, "Test", lines[0].AuthorName)
	assert.Contains(t, lines[1].Text, "--color-primary")
}

// initTestRepo creates a repository with a single initial commit.
func initTestRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	r, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	readme := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("# design system\n"), 0o644))

	_, err = wt.Add("README.md")
	require.NoError(t, err)

	sig := &object.Signature{
		Name:  "Test",
		Email: "test@test.com",
		When:  time.Now().Add(-time.Hour),
	}
	_, err = wt.Commit("initial commit", &gogit.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	require.NoError(t, err)

	return dir
}

// addFileAndCommit adds a file and creates a commit with the given message.
func addFileAndCommit(t *testing.T, dir, name, content, msg string) {
	t.Helper()

	r, err := gogit.PlainOpen(dir)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))

	_, err = wt.Add(name)
	require.NoError(t, err)

	// Distinct committer times keep the committer-time log order stable.
	commitSeq++
	sig := &object.Signature{
		Name:  "Test",
		Email: "test@test.com",
		When:  time.Now().Add(time.Duration(commitSeq) * time.Second),
	}
	_, err = wt.Commit(msg, &gogit.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	require.NoError(t, err)
}

var commitSeq int
