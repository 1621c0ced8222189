// Package report delivers rename progress and log events to whoever is
// watching a run: the console, a log file, a terminal UI or a test.
package report

import (
	"context"
	"log/slog"
	"sync"
)

// Reporter receives the events of a rename run in the order they happen.
type Reporter interface {
	Log(level slog.Level, msg string)
	Progress(percent float64)
}

// Func adapts two plain functions to a Reporter. Either may be nil.
type Func struct {
	LogFunc      func(level slog.Level, msg string)
	ProgressFunc func(percent float64)
}

// Log implements Reporter.
func (f Func) Log(level slog.Level, msg string) {
	if f.LogFunc != nil {
		f.LogFunc(level, msg)
	}
}

// Progress implements Reporter.
func (f Func) Progress(percent float64) {
	if f.ProgressFunc != nil {
		f.ProgressFunc(percent)
	}
}

// Discard drops every event.
var Discard Reporter = Func{}

type multi []Reporter

// Multi fans each event out to every non-nil reporter, in argument order.
func Multi(reporters ...Reporter) Reporter {
	m := make(multi, 0, len(reporters))
	for _, r := range reporters {
		if r != nil {
			m = append(m, r)
		}
	}
	return m
}

func (m multi) Log(level slog.Level, msg string) {
	for _, r := range m {
		r.Log(level, msg)
	}
}

func (m multi) Progress(percent float64) {
	for _, r := range m {
		r.Progress(percent)
	}
}

// SlogReporter forwards log events to a slog.Logger. Progress is logged at
// debug level.
type SlogReporter struct {
	logger *slog.Logger
}

// NewSlogReporter wraps logger; a nil logger means slog.Default().
func NewSlogReporter(logger *slog.Logger) *SlogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogReporter{logger: logger}
}

// Log implements Reporter.
func (s *SlogReporter) Log(level slog.Level, msg string) {
	s.logger.Log(context.Background(), level, msg)
}

// Progress implements Reporter.
func (s *SlogReporter) Progress(percent float64) {
	s.logger.Debug("Progress", "percent", percent)
}

// Event is one recorded reporter call.
type Event struct {
	Message  string
	Level    slog.Level
	Percent  float64
	Progress bool
}

// Recorder keeps every event in memory. It is safe for concurrent use.
type Recorder struct {
	events []Event
	mu     sync.Mutex
}

// Log implements Reporter.
func (r *Recorder) Log(level slog.Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Level: level, Message: msg})
}

// Progress implements Reporter.
func (r *Recorder) Progress(percent float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Progress: true, Percent: percent})
}

// Events returns a copy of all recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Messages returns the log messages at or above level, in order.
func (r *Recorder) Messages(level slog.Level) []string {
	var out []string
	for _, e := range r.Events() {
		if !e.Progress && e.Level >= level {
			out = append(out, e.Message)
		}
	}
	return out
}

// ProgressValues returns every reported percentage, in order.
func (r *Recorder) ProgressValues() []float64 {
	var out []float64
	for _, e := range r.Events() {
		if e.Progress {
			out = append(out, e.Percent)
		}
	}
	return out
}
