package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Veraticus/photomatch/internal/cli"
	"github.com/Veraticus/photomatch/internal/common"
	"github.com/Veraticus/photomatch/internal/config"
	"github.com/Veraticus/photomatch/internal/model"
	"github.com/Veraticus/photomatch/internal/prefs"
	"github.com/Veraticus/photomatch/internal/renamer"
	"github.com/Veraticus/photomatch/internal/report"
	"github.com/Veraticus/photomatch/internal/service"
	"github.com/Veraticus/photomatch/internal/sheets"
	"github.com/Veraticus/photomatch/internal/spreadsheet"
	"github.com/Veraticus/photomatch/internal/storage"
	"github.com/Veraticus/photomatch/internal/tui"
	"github.com/Veraticus/photomatch/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type renameOptions struct {
	settings    *config.Settings
	sheets      sheets.Config
	spreadsheet string
	outputDir   string
	photoDirs   []string
	minLevel    slog.Level
	jsonEvents  bool
	dryRun      bool
	useTUI      bool
}

func renameCmd() *cobra.Command {
	var (
		dryRun    bool
		useTUI    bool
		noHistory bool
	)

	cmd := &cobra.Command{
		Use:   "rename <spreadsheet> <photo-dir>... <output-dir>",
		Short: "Copy matched photos into the output directory under their design names",
		Long: `Read design rows from a spreadsheet, match every photo in each photo directory
by the design code in its filename and copy matches to the output directory.

The spreadsheet is an .xlsx/.xlsm or .csv file, or a Google spreadsheet given as
gsheets:<spreadsheet-id>[/<range>]. It must have DESIGN, ARTICLE, QUALITY and
QTY columns. Unmatched photos are reported and left alone.

Each photo directory is a separate pass whose numbering starts at 1.`,
		Example: `  # Rename one folder of photos
  photomatch rename designs.xlsx ./photos ./renamed

  # Preview the names without copying anything
  photomatch rename designs.csv ./photos ./renamed --dry-run

  # Read a Google spreadsheet and keep going past unreadable images
  photomatch rename gsheets:1AbCdEf/Designs!A:F ./photos ./renamed --on-error skip`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load()
			if err != nil {
				return err
			}
			if noHistory {
				settings.HistoryEnabled = false
			}

			level, err := common.ParseLevel(viper.GetString("logging.level"))
			if err != nil {
				return err
			}

			opts := renameOptions{
				settings:    settings,
				sheets:      config.LoadSheetsConfig(),
				spreadsheet: args[0],
				photoDirs:   args[1 : len(args)-1],
				outputDir:   args[len(args)-1],
				minLevel:    level,
				jsonEvents:  viper.GetString("logging.format") == "json",
				dryRun:      dryRun,
				useTUI:      useTUI,
			}
			return runRename(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the new names without copying any file")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Follow the run in an interactive terminal view")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in the history database")
	cmd.Flags().String("on-error", "abort", "What to do when a matched image cannot be saved (abort, skip)")
	cmd.Flags().Bool("photos-only-total", false, "Count only photo files when computing progress")
	cmd.Flags().String("log-dir", ".", "Directory for the renaming_log_<timestamp>.txt file")
	cmd.Flags().String("sheet", "", "Worksheet to read from an xlsx file (default: the first)")

	_ = viper.BindPFlag("rename.on_error", cmd.Flags().Lookup("on-error"))
	_ = viper.BindPFlag("rename.photos_only_total", cmd.Flags().Lookup("photos-only-total"))
	_ = viper.BindPFlag("rename.log_dir", cmd.Flags().Lookup("log-dir"))
	_ = viper.BindPFlag("rename.sheet", cmd.Flags().Lookup("sheet"))

	return cmd
}

func runRename(ctx context.Context, opts renameOptions, out io.Writer) error {
	policy, err := renamer.ParseImageErrorPolicy(opts.settings.OnImageError)
	if err != nil {
		return err
	}

	rows, err := spreadsheet.Load(ctx, opts.spreadsheet, spreadsheet.Options{
		Logger: slog.Default(),
		Sheet:  opts.settings.Sheet,
		Google: opts.sheets,
	})
	if err != nil {
		return common.NewUserError("Could not read spreadsheet "+opts.spreadsheet, err)
	}

	rememberPaths(opts)

	runLog, err := report.NewRunLog(opts.settings.LogDir)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := runLog.Close(); closeErr != nil {
			slog.Warn("Failed to close run log", "error", closeErr)
		}
	}()

	store := openHistory(ctx, opts.settings)
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	if !opts.useTUI {
		handler := cli.NewInterruptHandler(out)
		var stop func()
		ctx, stop = handler.HandleInterrupts(ctx, opts.outputDir)
		defer stop()
	}

	r := renamer.New(renamer.Options{
		Logger:          slog.Default(),
		OnImageError:    policy,
		PhotosOnlyTotal: opts.settings.PhotosOnlyTotal,
		DryRun:          opts.dryRun,
	})

	var total model.RunSummary
	for _, photoDir := range opts.photoDirs {
		summary, runErr := renameDir(ctx, r, rows, photoDir, opts, runLog, out)
		recordRun(ctx, store, opts, photoDir, summary, runErr)
		if runErr != nil {
			return fmt.Errorf("rename of %s failed (see %s): %w", photoDir, runLog.Path(), runErr)
		}
		total.TotalSeen += summary.TotalSeen
		total.Renamed += summary.Renamed
		total.Failed += summary.Failed
	}

	printSummary(out, opts, &total, runLog.Path())
	return nil
}

func renameDir(ctx context.Context, r *renamer.Renamer, rows []model.RawRow, photoDir string, opts renameOptions, runLog *report.RunLog, out io.Writer) (*model.RunSummary, error) {
	work := func(ctx context.Context, display report.Reporter) (*model.RunSummary, error) {
		return r.Run(ctx, rows, photoDir, opts.outputDir, report.Multi(display, runLog))
	}

	switch {
	case opts.useTUI:
		return tui.Run(ctx, work,
			tui.WithTheme(themes.ByName(opts.settings.Theme)),
			tui.WithTitle("Renaming photos in "+photoDir),
		)
	case opts.jsonEvents:
		return work(ctx, report.NewSlogReporter(slog.Default()))
	default:
		bar := cli.NewProgressReporter(out, cli.WithMinLevel(opts.minLevel))
		defer bar.Finish()
		return work(ctx, bar)
	}
}

func openHistory(ctx context.Context, settings *config.Settings) service.RunHistory {
	if !settings.HistoryEnabled {
		return nil
	}
	store, err := initStorage(ctx, settings.HistoryPath)
	if err != nil {
		slog.Warn("Run history unavailable", "path", settings.HistoryPath, "error", err)
		return nil
	}
	return store
}

func recordRun(ctx context.Context, store service.RunHistory, opts renameOptions, photoDir string, summary *model.RunSummary, runErr error) {
	if store == nil {
		return
	}
	rec := storage.RecordFromSummary(storage.NewRunID(), opts.spreadsheet, photoDir, opts.outputDir, summary, runErr, opts.dryRun)
	// The run context may already be canceled; the record is still wanted.
	if err := store.SaveRun(context.WithoutCancel(ctx), rec); err != nil {
		slog.Warn("Failed to record run", "id", rec.ID, "error", err)
		return
	}
	slog.Debug("Recorded run", "id", rec.ID, "status", rec.Status)
}

func rememberPaths(opts renameOptions) {
	recent, err := prefs.Load(opts.settings.PrefsPath)
	if err != nil {
		slog.Warn("Failed to load recent paths", "error", err)
		return
	}

	sheet := opts.spreadsheet
	if !strings.HasPrefix(sheet, spreadsheet.GoogleSheetsScheme) {
		sheet = absPath(sheet)
	}
	recent.Touch(prefs.KeyExcelPath, sheet)
	for _, dir := range opts.photoDirs {
		recent.Touch(prefs.KeyPhotosDirs, absPath(dir))
	}
	recent.Touch(prefs.KeyOutputDirs, absPath(opts.outputDir))

	if err := recent.Save(); err != nil {
		slog.Warn("Failed to save recent paths", "error", err)
	}
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func printSummary(out io.Writer, opts renameOptions, total *model.RunSummary, logPath string) {
	body := fmt.Sprintf("Files processed: %d\nFiles renamed: %d\n", total.TotalSeen, total.Renamed)
	if total.Failed > 0 {
		body += fmt.Sprintf("Files failed: %d\n", total.Failed)
	}
	body += "Log file: " + logPath

	title := "Rename Complete"
	if opts.dryRun {
		title = "Dry Run Complete"
	}
	fmt.Fprintln(out, cli.RenderBox(title, body))

	if opts.dryRun {
		fmt.Fprintln(out, cli.FormatInfo("Dry run: no files were written to "+opts.outputDir))
		return
	}
	fmt.Fprintln(out, cli.FormatSuccess("Photo renaming process completed. Check the log file for details."))
}
