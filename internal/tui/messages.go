package tui

import (
	"log/slog"

	"github.com/Veraticus/photomatch/internal/model"
)

type logMsg struct {
	text  string
	level slog.Level
}

type progressMsg float64

type doneMsg struct {
	summary *model.RunSummary
	err     error
}
