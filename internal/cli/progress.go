package cli

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// ProgressReporter renders run events on a terminal: a progress bar for the
// percentage and styled lines for log messages.
type ProgressReporter struct {
	writer   io.Writer
	bar      *progressbar.ProgressBar
	minLevel slog.Level
	percent  int
	mu       sync.Mutex
}

// ProgressOption configures a ProgressReporter.
type ProgressOption func(*ProgressReporter)

// WithMinLevel hides messages below level.
func WithMinLevel(level slog.Level) ProgressOption {
	return func(r *ProgressReporter) {
		r.minLevel = level
	}
}

// NewProgressReporter creates a reporter writing to writer (stdout when nil).
func NewProgressReporter(writer io.Writer, opts ...ProgressOption) *ProgressReporter {
	if writer == nil {
		writer = os.Stdout
	}
	r := &ProgressReporter{
		writer:   writer,
		minLevel: slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.bar = progressbar.NewOptions(100,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Renaming photos...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return r
}

// Log prints a styled message above the progress bar.
func (r *ProgressReporter) Log(level slog.Level, msg string) {
	if level < r.minLevel {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.bar.Clear(); err != nil {
		slog.Warn("Failed to clear progress bar", "error", err)
	}
	if _, err := fmt.Fprintln(r.writer, FormatLevel(level, msg)); err != nil {
		slog.Warn("Failed to write run message", "error", err)
	}
	if r.percent > 0 && !r.bar.IsFinished() {
		if err := r.bar.RenderBlank(); err != nil {
			slog.Warn("Failed to redraw progress bar", "error", err)
		}
	}
}

// Progress moves the bar to pct. The bar never moves backwards and only
// reaches 100 once pct does.
func (r *ProgressReporter) Progress(pct float64) {
	target := int(math.Floor(pct + 1e-9))
	if target > 100 {
		target = 100
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if target <= r.percent {
		return
	}
	r.percent = target
	if err := r.bar.Set(target); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Percent returns the last rendered percentage.
func (r *ProgressReporter) Percent() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.percent
}

// Finish completes the bar if the run ended before reaching 100%.
func (r *ProgressReporter) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.percent == 0 || r.bar.IsFinished() {
		return
	}
	if err := r.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
}
