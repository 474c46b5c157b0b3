// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestEnvBinding(t *testing.T) {
	t.Setenv("DSGRAPH_ROOT", "/srv/design-system")
	t.Setenv("DSGRAPH_COMMIT_LIMIT", "7")
	t.Setenv("DSGRAPH_NO_GIT", "true")

	newRootCmd()

	assert.Equal(t, "/srv/design-system", viper.GetString("root"))
	// Hyphenated keys bind through the underscore replacer.
	assert.Equal(t, 7, viper.GetInt("commit-limit"))
	assert.True(t, viper.GetBool("no-git"))
}

func TestFlagDefaults(t *testing.T) {
	cmd := newRootCmd()

	root, err := cmd.PersistentFlags().GetString("root")
	assert.NoError(t, err)
	assert.Equal(t, ".", root)

	limit, err := cmd.PersistentFlags().GetInt("commit-limit")
	assert.NoError(t, err)
	assert.Zero(t, limit)
}
