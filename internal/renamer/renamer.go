// Package renamer copies photos whose filenames carry a known design code
// into an output directory under names built from the matching spreadsheet row.
package renamer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Veraticus/photomatch/internal/common"
	"github.com/Veraticus/photomatch/internal/design"
	"github.com/Veraticus/photomatch/internal/model"
	"github.com/Veraticus/photomatch/internal/report"
)

// ImageErrorPolicy decides what a failed image copy does to the run.
type ImageErrorPolicy string

// Image error policies.
const (
	// AbortOnImageError stops the run at the first unreadable or unwritable image.
	AbortOnImageError ImageErrorPolicy = "abort"
	// SkipOnImageError logs the failure and continues with the next file.
	SkipOnImageError ImageErrorPolicy = "skip"
)

// ParseImageErrorPolicy validates a policy name from configuration.
func ParseImageErrorPolicy(s string) (ImageErrorPolicy, error) {
	switch ImageErrorPolicy(s) {
	case AbortOnImageError, "":
		return AbortOnImageError, nil
	case SkipOnImageError:
		return SkipOnImageError, nil
	default:
		return "", fmt.Errorf("%w: on-error must be %q or %q, got %q",
			common.ErrInvalidConfig, AbortOnImageError, SkipOnImageError, s)
	}
}

// Options tunes a Renamer.
type Options struct {
	Logger       *slog.Logger
	OnImageError ImageErrorPolicy
	// PhotosOnlyTotal uses the number of photo files, not all files, as the
	// progress denominator so a finished run always reports 100.
	PhotosOnlyTotal bool
	// DryRun computes names and reports events without touching the disk.
	DryRun bool
}

// Renamer runs rename passes. A Renamer holds no per-run state and may be
// reused, but passes sharing an output directory must not overlap.
type Renamer struct {
	logger *slog.Logger
	now    func() time.Time
	opts   Options
}

// New creates a Renamer.
func New(opts Options) *Renamer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.OnImageError == "" {
		opts.OnImageError = AbortOnImageError
	}
	return &Renamer{
		logger: logger,
		now:    time.Now,
		opts:   opts,
	}
}

// Run indexes rows, then copies every photo in photoDir whose design code
// resolves to a row into outputDir. Events go to rep in processing order.
// Spreadsheet, directory and (under AbortOnImageError) image failures end the
// run with an error; unmatched photos are only reported.
func (r *Renamer) Run(ctx context.Context, rows []model.RawRow, photoDir, outputDir string, rep report.Reporter) (*model.RunSummary, error) {
	if rep == nil {
		rep = report.Discard
	}
	summary := &model.RunSummary{StartedAt: r.now()}

	if !r.opts.DryRun {
		if err := os.MkdirAll(outputDir, 0750); err != nil {
			return summary, fmt.Errorf("%w %s: %w", common.ErrOutputDir, outputDir, err)
		}
	}

	idx, err := design.BuildIndex(rows)
	if err != nil {
		return summary, fmt.Errorf("failed to build design index: %w", err)
	}
	r.logger.Debug("Design index built", "rows", len(rows), "codes", idx.Len())

	scan, err := scanDir(photoDir)
	if err != nil {
		return summary, err
	}
	summary.TotalSeen = scan.totalFiles
	if r.opts.PhotosOnlyTotal {
		summary.TotalSeen = len(scan.photos)
	}

	seq := 1
	for _, photo := range scan.photos {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		res := design.Match(photo.Filename, idx)
		switch res.Reason {
		case model.MatchFound:
			target := TargetName(seq, *res.Record, photo.Extension)
			dst, err := targetPath(outputDir, target)
			if err == nil {
				err = r.save(photo, dst, rep)
			}
			if err != nil {
				if r.opts.OnImageError != SkipOnImageError {
					return summary, fmt.Errorf("failed to save %s: %w", photo.Filename, err)
				}
				rep.Log(slog.LevelError, fmt.Sprintf("Failed to save %s: %v", photo.Filename, err))
				summary.Failed++
				break
			}
			summary.Files = append(summary.Files, model.RenamedFile{
				Source:   photo.Filename,
				Target:   target,
				Sequence: seq,
			})
			summary.Renamed++
			seq++
		case model.NoIndexEntry:
			rep.Log(slog.LevelWarn, "No match found for: "+photo.Filename)
		case model.NoCodeExtracted:
			rep.Log(slog.LevelWarn, "Unable to extract design code from: "+photo.Filename)
		}

		summary.Processed++
		if summary.TotalSeen > 0 {
			rep.Progress(float64(summary.Processed) / float64(summary.TotalSeen) * 100)
		}
	}

	rep.Log(slog.LevelInfo, fmt.Sprintf("Total files processed: %d", summary.TotalSeen))
	rep.Log(slog.LevelInfo, fmt.Sprintf("Files renamed: %d", summary.Renamed))
	rep.Log(slog.LevelInfo, "Renaming process completed.")
	summary.FinishedAt = r.now()

	return summary, nil
}

// save copies one matched photo and reports the rename.
func (r *Renamer) save(photo model.PhotoFile, dst string, rep report.Reporter) error {
	target := filepath.Base(dst)
	if r.opts.DryRun {
		rep.Log(slog.LevelInfo, fmt.Sprintf("Would rename: %s -> %s", photo.Filename, target))
		return nil
	}

	info, err := saveImage(photo.Path, dst)
	if err != nil {
		return err
	}
	r.logger.Debug("Image saved",
		"source", photo.Path,
		"target", dst,
		"format", info.Format,
		"width", info.Width,
		"height", info.Height,
		"orientation", info.Orientation)

	rep.Log(slog.LevelInfo, fmt.Sprintf("Renamed and saved: %s -> %s", photo.Filename, target))
	return nil
}
