package tui

import (
	"io"

	"github.com/Veraticus/photomatch/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Input     io.Reader
	Output    io.Writer
	Theme     themes.Theme
	Title     string
	Width     int
	Height    int
	AltScreen bool
	AutoQuit  bool
	customIO  bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Title:     "Renaming photos",
		Width:     80,
		Height:    24,
		AltScreen: true,
	}
}

// WithTheme sets the color scheme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithTitle sets the heading shown above the progress bar.
func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithIO replaces the terminal. A nil input disables keyboard handling.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *Config) {
		c.Input = in
		c.Output = out
		c.AltScreen = false
		c.customIO = true
	}
}

// WithAutoQuit closes the view as soon as the run finishes.
func WithAutoQuit(autoQuit bool) Option {
	return func(c *Config) {
		c.AutoQuit = autoQuit
	}
}
