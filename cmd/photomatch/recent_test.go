package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := executeCommand(t, "recent")
	require.NoError(t, err)
	assert.Contains(t, out, "excel_path")
	assert.Contains(t, out, "(none)")

	_, err = executeCommand(t, "rename", env.sheet, env.photos, env.output, "--log-dir", env.logDir, "--no-history")
	require.NoError(t, err)

	out, err = executeCommand(t, "recent", "photos_dirs")
	require.NoError(t, err)
	assert.Contains(t, out, "1. "+env.photos)
	assert.NotContains(t, out, "excel_path")

	out, err = executeCommand(t, "recent")
	require.NoError(t, err)
	assert.Contains(t, out, "1. "+env.sheet)
	assert.Contains(t, out, "1. "+env.output)
}

func TestRecentCommand_UnknownKey(t *testing.T) {
	newTestEnv(t)

	_, err := executeCommand(t, "recent", "favorites")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown key favorites")
}
