package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/photomatch/internal/model"
	"github.com/Veraticus/photomatch/internal/report"
	tea "github.com/charmbracelet/bubbletea"
)

// RunFunc is the work shown by the TUI. It receives a reporter wired to the view.
type RunFunc func(ctx context.Context, rep report.Reporter) (*model.RunSummary, error)

// Reporter forwards run events to a running Bubble Tea program.
type Reporter struct {
	send func(tea.Msg)
}

// NewReporter creates a reporter that delivers events through send.
func NewReporter(send func(tea.Msg)) *Reporter {
	return &Reporter{send: send}
}

// Log implements report.Reporter.
func (r *Reporter) Log(level slog.Level, msg string) {
	r.send(logMsg{level: level, text: msg})
}

// Progress implements report.Reporter.
func (r *Reporter) Progress(pct float64) {
	r.send(progressMsg(pct))
}

type runResult struct {
	summary *model.RunSummary
	err     error
}

// Run starts the view, executes fn in a goroutine and blocks until the user
// closes the view (or it closes itself with WithAutoQuit). Closing the view
// early cancels the context passed to fn.
func Run(ctx context.Context, fn RunFunc, opts ...Option) (*model.RunSummary, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var programOpts []tea.ProgramOption
	if cfg.customIO {
		programOpts = append(programOpts, tea.WithInput(cfg.Input), tea.WithOutput(cfg.Output))
	}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	program := tea.NewProgram(newModel(cfg, cancel), programOpts...)

	results := make(chan runResult, 1)
	go func() {
		summary, err := fn(ctx, NewReporter(program.Send))
		results <- runResult{summary: summary, err: err}
		program.Send(doneMsg{summary: summary, err: err})
	}()

	_, tuiErr := program.Run()
	cancel()
	res := <-results

	if tuiErr != nil {
		return res.summary, fmt.Errorf("TUI error: %w", tuiErr)
	}
	return res.summary, res.err
}
