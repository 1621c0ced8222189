package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/photomatch/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)
	SetDefaults()

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "abort", s.OnImageError)
	assert.False(t, s.PhotosOnlyTotal)
	assert.True(t, s.HistoryEnabled)
	assert.Equal(t, filepath.Join(Dir(), "history.db"), s.HistoryPath)
	assert.Equal(t, filepath.Join(Dir(), "last_used_folders.json"), s.PrefsPath)
	assert.Equal(t, ".", s.LogDir)
}

func TestLoad_Overrides(t *testing.T) {
	resetViper(t)
	SetDefaults()
	t.Setenv("PHOTOMATCH_TEST_DIR", "/data")

	viper.Set("rename.on_error", "skip")
	viper.Set("rename.photos_only_total", true)
	viper.Set("rename.log_dir", "$PHOTOMATCH_TEST_DIR/logs")
	viper.Set("history.enabled", false)

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "skip", s.OnImageError)
	assert.True(t, s.PhotosOnlyTotal)
	assert.Equal(t, "/data/logs", s.LogDir)
	assert.False(t, s.HistoryEnabled)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		set  map[string]any
		name string
	}{
		{name: "bad policy", set: map[string]any{"rename.on_error": "ignore"}},
		{name: "empty history path", set: map[string]any{"history.path": ""}},
		{name: "empty prefs path", set: map[string]any{"prefs.path": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			SetDefaults()
			for k, v := range tt.set {
				viper.Set(k, v)
			}

			_, err := Load()
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestLoadSheetsConfig(t *testing.T) {
	resetViper(t)
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "env-id")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "env-secret")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")

	viper.Set("sheets.client_id", "viper-id")
	viper.Set("sheets.retry_attempts", 5)
	viper.Set("sheets.retry_delay", "250ms")

	cfg := LoadSheetsConfig()
	assert.Equal(t, "viper-id", cfg.ClientID, "viper wins over env")
	assert.Equal(t, "env-secret", cfg.ClientSecret, "env fills gaps")
	assert.Equal(t, 5, cfg.RetryAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, filepath.Join(Dir(), "token.json"), cfg.TokenFile)
	assert.NoError(t, cfg.Validate())
}

func TestLoadSheetsConfig_ServiceAccountExpanded(t *testing.T) {
	resetViper(t)
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "~/sa.json")

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := LoadSheetsConfig()
	assert.Equal(t, filepath.Join(home, "sa.json"), cfg.ServiceAccountPath)
	assert.Equal(t, 3, cfg.RetryAttempts)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("PHOTOMATCH_TEST_VAR", "value")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/photos", want: filepath.Join(home, "photos")},
		{in: "/abs/$PHOTOMATCH_TEST_VAR", want: "/abs/value"},
		{in: "relative/path", want: "relative/path"},
		{in: "~other/photos", want: "~other/photos"},
		{in: "~/$PHOTOMATCH_TEST_VAR/db", want: filepath.Join(home, "value", "db")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".config", "photomatch"), Dir())
	assert.Equal(t, filepath.Join(home, ".config", "photomatch", "history.db"), DefaultPath("history.db"))
}
