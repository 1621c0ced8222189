package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/photomatch/internal/common"
	"github.com/Veraticus/photomatch/internal/model"
	"github.com/Veraticus/photomatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenameCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := executeCommand(t, "rename", env.sheet, env.photos, env.output, "--log-dir", env.logDir)
	require.NoError(t, err)

	assert.Equal(t, []string{"1. ABC-7_B2_Q2_10.PNG", "2. XYZ-100_A1_Q1_5.png"}, testutil.ListDir(t, env.output))
	assert.Contains(t, out, "Unable to extract design code from: logo.png")
	assert.Contains(t, out, "Files processed: 4")
	assert.Contains(t, out, "Files renamed: 2")
	assert.Contains(t, out, "Photo renaming process completed. Check the log file for details.")

	logs := testutil.ListDir(t, env.logDir)
	require.Len(t, logs, 1)
	data, err := os.ReadFile(filepath.Join(env.logDir, logs[0]))
	require.NoError(t, err)
	assert.Contains(t, string(data), " - INFO - Renamed and saved: xyz100_front.png -> 2. XYZ-100_A1_Q1_5.png")
	assert.Contains(t, string(data), " - WARNING - Unable to extract design code from: logo.png")

	store, err := initStorage(context.Background(), env.historyDB)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, model.RunCompleted, runs[0].Status)
	assert.Equal(t, 2, runs[0].Renamed)
	assert.Equal(t, 4, runs[0].TotalSeen)
}

func TestRenameCommand_DryRun(t *testing.T) {
	env := newTestEnv(t)

	out, err := executeCommand(t, "rename", env.sheet, env.photos, env.output,
		"--log-dir", env.logDir, "--dry-run", "--no-history")
	require.NoError(t, err)

	assert.NoDirExists(t, env.output)
	assert.NoFileExists(t, env.historyDB)
	assert.Contains(t, out, "Would rename: xyz100_front.png -> 2. XYZ-100_A1_Q1_5.png")
	assert.Contains(t, out, "Dry run: no files were written")
}

func TestRenameCommand_MultiplePhotoDirs(t *testing.T) {
	env := newTestEnv(t)
	second := testutil.PhotoDir(t, env.home, "more", "XYZ-100.png")

	_, err := executeCommand(t, "rename", env.sheet, env.photos, second, env.output, "--log-dir", env.logDir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"1. ABC-7_B2_Q2_10.PNG",
		"1. XYZ-100_A1_Q1_5.png",
		"2. XYZ-100_A1_Q1_5.png",
	}, testutil.ListDir(t, env.output))

	store, err := initStorage(context.Background(), env.historyDB)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	runs, err := store.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestRenameCommand_Errors(t *testing.T) {
	tests := []struct {
		args    func(env *testEnv) []string
		want    error
		name    string
		wantMsg string
	}{
		{
			name: "too few args",
			args: func(env *testEnv) []string {
				return []string{"rename", env.sheet, env.photos}
			},
			wantMsg: "requires at least 3 arg(s)",
		},
		{
			name: "unsupported spreadsheet",
			args: func(env *testEnv) []string {
				return []string{"rename", filepath.Join(env.home, "designs.ods"), env.photos, env.output, "--no-history"}
			},
			want: common.ErrUnsupportedSource,
		},
		{
			name: "bad policy",
			args: func(env *testEnv) []string {
				return []string{"rename", env.sheet, env.photos, env.output, "--on-error", "ignore"}
			},
			want: common.ErrInvalidConfig,
		},
		{
			name: "missing photo dir",
			args: func(env *testEnv) []string {
				return []string{"rename", env.sheet, filepath.Join(env.home, "nope"), env.output, "--log-dir", env.logDir}
			},
			want: common.ErrPhotoDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			_, err := executeCommand(t, tt.args(env)...)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestRenameCommand_FailedRunIsRecorded(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.photos, "abc7_broken.jpg"), []byte("not an image"), 0600))

	_, err := executeCommand(t, "rename", env.sheet, env.photos, env.output, "--log-dir", env.logDir)
	require.ErrorIs(t, err, common.ErrInvalidImage)

	store, err := initStorage(context.Background(), env.historyDB)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	runs, err := store.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, model.RunFailed, runs[0].Status)
	assert.Contains(t, runs[0].Error, "abc7_broken.jpg")
}

func TestRenameCommand_SkipPolicy(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.photos, "abc7_broken.jpg"), []byte("not an image"), 0600))

	out, err := executeCommand(t, "rename", env.sheet, env.photos, env.output,
		"--log-dir", env.logDir, "--on-error", "skip", "--no-history")
	require.NoError(t, err)
	assert.Contains(t, out, "Failed to save abc7_broken.jpg")
	assert.Contains(t, out, "Files failed: 1")
	assert.Len(t, testutil.ListDir(t, env.output), 2)
}
