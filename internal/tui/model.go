// Package tui renders a rename run interactively with Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/photomatch/internal/model"
	"github.com/Veraticus/photomatch/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// headerHeight is the number of lines above the log viewport.
const headerHeight = 5

// footerHeight is the number of lines below the log viewport.
const footerHeight = 2

// Model holds the run view state.
type Model struct {
	theme    themes.Theme
	err      error
	summary  *model.RunSummary
	cancel   context.CancelFunc
	keymap   KeyMap
	title    string
	lines    []string
	progress progress.Model
	viewport viewport.Model
	percent  float64
	warnings int
	errors   int
	width    int
	height   int
	done     bool
	autoQuit bool
	quitting bool
}

func newModel(cfg Config, cancel context.CancelFunc) Model {
	m := Model{
		theme:    cfg.Theme,
		cancel:   cancel,
		keymap:   DefaultKeyMap(),
		title:    cfg.Title,
		autoQuit: cfg.AutoQuit,
		progress: progress.New(
			progress.WithGradient(string(cfg.Theme.Secondary), string(cfg.Theme.Primary)),
		),
		viewport: viewport.New(cfg.Width, 1),
	}
	m.resize(cfg.Width, cfg.Height)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			if !m.done && m.cancel != nil {
				m.cancel()
			}
			m.quitting = true
			return m, tea.Quit
		}
		m.scroll(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case logMsg:
		m.appendLine(msg.level, msg.text)

	case progressMsg:
		pct := float64(msg) / 100
		if pct > 1 {
			pct = 1
		}
		if pct > m.percent {
			m.percent = pct
		}

	case doneMsg:
		m.done = true
		m.summary = msg.summary
		m.err = msg.err
		if m.autoQuit {
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *Model) scroll(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keymap.Down):
		m.viewport.LineDown(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.viewport.ViewUp()
	case key.Matches(msg, m.keymap.PageDown):
		m.viewport.ViewDown()
	case key.Matches(msg, m.keymap.Home):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keymap.End):
		m.viewport.GotoBottom()
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	m.progress.Width = width - 4
	if m.progress.Width > 80 {
		m.progress.Width = 80
	}
	if m.progress.Width < 10 {
		m.progress.Width = 10
	}

	m.viewport.Width = width
	m.viewport.Height = height - headerHeight - footerHeight
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
}

func (m *Model) appendLine(level slog.Level, text string) {
	var line string
	switch {
	case level >= slog.LevelError:
		m.errors++
		line = m.theme.StatusError.Render(text)
	case level >= slog.LevelWarn:
		m.warnings++
		line = m.theme.StatusWarning.Render(text)
	case level >= slog.LevelInfo:
		line = m.theme.Normal.Render(text)
	default:
		line = m.theme.Muted.Render(text)
	}

	follow := m.viewport.AtBottom()
	m.lines = append(m.lines, line)
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	if follow {
		m.viewport.GotoBottom()
	}
}

// View renders the header, the progress bar, the log and a status line.
func (m Model) View() string {
	if m.quitting && !m.done {
		return m.theme.StatusWarning.Render("Cancelling run...") + "\n"
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(m.title),
		"",
		m.progress.ViewAs(m.percent),
		m.theme.Subtitle.Render(m.counters()),
		"",
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		"",
		m.statusLine(),
	)
}

func (m Model) counters() string {
	return fmt.Sprintf("%d messages, %d warnings, %d errors", len(m.lines), m.warnings, m.errors)
}

func (m Model) statusLine() string {
	switch {
	case !m.done:
		return m.theme.Muted.Render("Running... q to cancel, ↑/↓ to scroll")
	case m.err != nil:
		return m.theme.StatusError.Render("Rename failed: "+m.err.Error()) +
			m.theme.Muted.Render("  (q to exit)")
	case m.summary != nil:
		return m.theme.StatusSuccess.Render(fmt.Sprintf("Done: %d of %d files renamed", m.summary.Renamed, m.summary.TotalSeen)) +
			m.theme.Muted.Render("  (q to exit)")
	default:
		return m.theme.StatusSuccess.Render("Done") + m.theme.Muted.Render("  (q to exit)")
	}
}
