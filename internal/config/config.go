package config

import (
	"fmt"

	"github.com/Veraticus/photomatch/internal/common"
	"github.com/spf13/viper"
)

// AppName names the config directory and the env prefix.
const AppName = "photomatch"

// Settings is the resolved configuration for a rename run.
type Settings struct {
	OnImageError    string
	Sheet           string
	LogDir          string
	HistoryPath     string
	PrefsPath       string
	Theme           string
	PhotosOnlyTotal bool
	HistoryEnabled  bool
}

// SetDefaults registers the default value of every key with viper.
func SetDefaults() {
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")

	viper.SetDefault("rename.on_error", "abort")
	viper.SetDefault("rename.photos_only_total", false)
	viper.SetDefault("rename.log_dir", ".")
	viper.SetDefault("rename.sheet", "")

	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.path", DefaultPath("history.db"))
	viper.SetDefault("prefs.path", DefaultPath("last_used_folders.json"))

	viper.SetDefault("tui.theme", "default")
}

// Load resolves Settings from viper.
func Load() (*Settings, error) {
	s := &Settings{
		OnImageError:    viper.GetString("rename.on_error"),
		PhotosOnlyTotal: viper.GetBool("rename.photos_only_total"),
		LogDir:          ExpandPath(viper.GetString("rename.log_dir")),
		Sheet:           viper.GetString("rename.sheet"),
		HistoryEnabled:  viper.GetBool("history.enabled"),
		HistoryPath:     ExpandPath(viper.GetString("history.path")),
		PrefsPath:       ExpandPath(viper.GetString("prefs.path")),
		Theme:           viper.GetString("tui.theme"),
	}

	switch s.OnImageError {
	case "", "abort", "skip":
	default:
		return nil, fmt.Errorf("%w: rename.on_error must be abort or skip, got %q", common.ErrInvalidConfig, s.OnImageError)
	}
	if s.HistoryEnabled && s.HistoryPath == "" {
		return nil, fmt.Errorf("%w: history.path is empty", common.ErrInvalidConfig)
	}
	if s.PrefsPath == "" {
		return nil, fmt.Errorf("%w: prefs.path is empty", common.ErrInvalidConfig)
	}

	return s, nil
}
