package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Veraticus/photomatch/internal/cli"
	"github.com/Veraticus/photomatch/internal/common"
	"github.com/Veraticus/photomatch/internal/config"
	"github.com/Veraticus/photomatch/internal/model"
	"github.com/Veraticus/photomatch/internal/service"
	"github.com/spf13/cobra"
)

const historyTimeFormat = "2006-01-02 15:04:05"

func historyCmd() *cobra.Command {
	var (
		limit int
		runID string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past rename runs",
		Long: `List recorded rename runs, most recent first, or show the files one run
renamed with --run.`,
		Example: `  # The last 10 runs
  photomatch history --limit 10

  # Every file renamed by one run
  photomatch history --run 6f1c2a4e-...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}

			store, err := initStorage(cmd.Context(), settings.HistoryPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if runID != "" {
				return showRun(cmd.Context(), store, runID, cmd.OutOrStdout())
			}
			return listRuns(cmd.Context(), store, limit, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")
	cmd.Flags().StringVar(&runID, "run", "", "Show the renamed files of this run")

	return cmd
}

func listRuns(ctx context.Context, store service.RunHistory, limit int, out io.Writer) error {
	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, cli.FormatInfo("No runs recorded yet"))
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format(historyTimeFormat),
			statusLabel(run.Status),
			fmt.Sprintf("%d/%d", run.Renamed, run.TotalSeen),
			run.PhotoDir,
		})
	}

	fmt.Fprintln(out, cli.FormatTitle("Rename history"))
	fmt.Fprintln(out, cli.RenderTable([]string{"ID", "STARTED", "STATUS", "RENAMED", "PHOTOS"}, rows))
	return nil
}

func showRun(ctx context.Context, store service.RunHistory, id string, out io.Writer) error {
	run, err := store.GetRun(ctx, id)
	if err != nil {
		return common.NewUserError("Unknown run "+id, err)
	}

	details := fmt.Sprintf("Spreadsheet: %s\nPhotos: %s\nOutput: %s\nStarted: %s\nDuration: %s\nStatus: %s\nRenamed: %d of %d",
		run.Sheet,
		run.PhotoDir,
		run.OutputDir,
		run.StartedAt.Local().Format(historyTimeFormat),
		runDuration(run),
		statusLabel(run.Status),
		run.Renamed,
		run.TotalSeen,
	)
	if run.Failed > 0 {
		details += fmt.Sprintf("\nFailed: %d", run.Failed)
	}
	if run.Error != "" {
		details += "\nError: " + run.Error
	}
	fmt.Fprintln(out, cli.RenderBox("Run "+run.ID, details))

	if len(run.Files) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(run.Files))
	for _, f := range run.Files {
		rows = append(rows, []string{strconv.Itoa(f.Sequence), f.Source, f.Target})
	}
	fmt.Fprintln(out, cli.RenderTable([]string{"#", "SOURCE", "TARGET"}, rows))
	return nil
}

func statusLabel(status string) string {
	switch status {
	case model.RunCompleted:
		return cli.SuccessStyle.Render(status)
	case model.RunFailed:
		return cli.ErrorStyle.Render(status)
	default:
		return cli.WarningStyle.Render(status)
	}
}

func runDuration(run *model.RunRecord) string {
	if run.FinishedAt.IsZero() {
		return "unknown"
	}
	return run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
}
