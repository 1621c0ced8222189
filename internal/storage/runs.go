package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/photomatch/internal/model"
	"github.com/google/uuid"
)

// ErrRunNotFound is returned when a run id is unknown.
var ErrRunNotFound = errors.New("run not found")

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// SaveRun stores a run and the files it renamed in one transaction.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.RunRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var finished any
	if !run.FinishedAt.IsZero() {
		finished = run.FinishedAt.UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, sheet, photo_dir, output_dir,
			total_seen, processed, renamed, failed, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), finished, run.Sheet, run.PhotoDir, run.OutputDir,
		run.TotalSeen, run.Processed, run.Renamed, run.Failed, run.Status, nullString(run.Error))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO renamed_files (run_id, seq, source, target) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare file insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, f := range run.Files {
		if _, err := stmt.ExecContext(ctx, run.ID, f.Sequence, f.Source, f.Target); err != nil {
			return fmt.Errorf("failed to insert renamed file %d: %w", f.Sequence, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first, without their files.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, sheet, photo_dir, output_dir,
			total_seen, processed, renamed, failed, status, error
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns one run including its renamed files in sequence order.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*model.RunRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, sheet, photo_dir, output_dir,
			total_seen, processed, renamed, failed, status, error
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	files, err := s.db.QueryContext(ctx, `
		SELECT seq, source, target FROM renamed_files WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query renamed files: %w", err)
	}
	defer func() { _ = files.Close() }()

	for files.Next() {
		var f model.RenamedFile
		if err := files.Scan(&f.Sequence, &f.Source, &f.Target); err != nil {
			return nil, fmt.Errorf("failed to scan renamed file: %w", err)
		}
		run.Files = append(run.Files, f)
	}
	if err := files.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate renamed files: %w", err)
	}

	return &run, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (model.RunRecord, error) {
	var (
		run      model.RunRecord
		finished sql.NullTime
		errText  sql.NullString
	)
	err := sc.Scan(&run.ID, &run.StartedAt, &finished, &run.Sheet, &run.PhotoDir, &run.OutputDir,
		&run.TotalSeen, &run.Processed, &run.Renamed, &run.Failed, &run.Status, &errText)
	if errors.Is(err, sql.ErrNoRows) {
		return run, err
	}
	if err != nil {
		return run, fmt.Errorf("failed to scan run: %w", err)
	}
	if finished.Valid {
		run.FinishedAt = finished.Time
	}
	run.Error = errText.String
	return run, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// RecordFromSummary builds a history record from a finished (or aborted) run.
func RecordFromSummary(id, sheet, photoDir, outputDir string, summary *model.RunSummary, runErr error, dryRun bool) *model.RunRecord {
	rec := &model.RunRecord{
		ID:        id,
		Sheet:     sheet,
		PhotoDir:  photoDir,
		OutputDir: outputDir,
		Status:    model.RunCompleted,
	}
	if summary != nil {
		rec.StartedAt = summary.StartedAt
		rec.FinishedAt = summary.FinishedAt
		rec.Files = summary.Files
		rec.TotalSeen = summary.TotalSeen
		rec.Processed = summary.Processed
		rec.Renamed = summary.Renamed
		rec.Failed = summary.Failed
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}
	switch {
	case runErr != nil:
		rec.Status = model.RunFailed
		rec.Error = runErr.Error()
		if rec.FinishedAt.IsZero() {
			rec.FinishedAt = time.Now()
		}
	case dryRun:
		rec.Status = model.RunDryRun
	}
	return rec
}
