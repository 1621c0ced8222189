package report

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	runLogPrefix     = "renaming_log_"
	runLogTimeFormat = "20060102_150405"
	lineTimeFormat   = "2006-01-02 15:04:05,000"
)

// RunLog writes every log event of one run to its own timestamped file.
// Progress events are not written.
type RunLog struct {
	now  func() time.Time
	f    *os.File
	w    *bufio.Writer
	path string
	mu   sync.Mutex
}

// RunLogOption configures a RunLog.
type RunLogOption func(*RunLog)

// WithClock overrides the time source used for the file name and line stamps.
func WithClock(now func() time.Time) RunLogOption {
	return func(l *RunLog) {
		l.now = now
	}
}

// NewRunLog creates dir if needed and opens renaming_log_<timestamp>.txt in it.
func NewRunLog(dir string, opts ...RunLogOption) (*RunLog, error) {
	l := &RunLog{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	name := runLogPrefix + l.now().Format(runLogTimeFormat) + ".txt"
	l.path = filepath.Join(dir, name)

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}
	l.f = f
	l.w = bufio.NewWriter(f)

	return l, nil
}

// Path returns the log file location.
func (l *RunLog) Path() string {
	return l.path
}

// Log implements Reporter.
func (l *RunLog) Log(level slog.Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.w == nil {
		return
	}
	_, _ = fmt.Fprintf(l.w, "%s - %s - %s\n", l.now().Format(lineTimeFormat), levelName(level), msg)
}

// Progress implements Reporter.
func (l *RunLog) Progress(float64) {}

// Close flushes and closes the file.
func (l *RunLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	flushErr := l.w.Flush()
	closeErr := l.f.Close()
	l.f, l.w = nil, nil
	if flushErr != nil {
		return fmt.Errorf("failed to flush run log: %w", flushErr)
	}
	return closeErr
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
