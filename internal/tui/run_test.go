package tui

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/Veraticus/photomatch/internal/model"
	"github.com/Veraticus/photomatch/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsResultOfWork(t *testing.T) {
	var out bytes.Buffer

	summary, err := Run(context.Background(), func(_ context.Context, rep report.Reporter) (*model.RunSummary, error) {
		rep.Log(slog.LevelInfo, "Renamed and saved: a.jpg -> 1. A_B_C_D.jpg")
		rep.Progress(100)
		return &model.RunSummary{TotalSeen: 1, Processed: 1, Renamed: 1}, nil
	}, WithIO(nil, &out), WithAutoQuit(true), WithTitle("test run"))

	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 1, summary.Renamed)
	assert.Contains(t, out.String(), "test run")
}

func TestRun_PropagatesWorkError(t *testing.T) {
	var out bytes.Buffer
	boom := errors.New("boom")

	_, err := Run(context.Background(), func(context.Context, report.Reporter) (*model.RunSummary, error) {
		return nil, boom
	}, WithIO(nil, &out), WithAutoQuit(true))

	assert.ErrorIs(t, err, boom)
}
