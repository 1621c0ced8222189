package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/photomatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	return store, func() { _ = store.Close() }
}

func sampleRun(id string, started time.Time) *model.RunRecord {
	return &model.RunRecord{
		ID:         id,
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Sheet:      "/data/designs.xlsx",
		PhotoDir:   "/photos",
		OutputDir:  "/out",
		Status:     model.RunCompleted,
		TotalSeen:  3,
		Processed:  3,
		Renamed:    2,
		Files: []model.RenamedFile{
			{Sequence: 1, Source: "xyz100_front.jpg", Target: "1. XYZ-100_A1_Q1_5.jpg"},
			{Sequence: 2, Source: "abc-1.png", Target: "2. ABC-1_A_Q_1.png"},
		},
	}
}

func TestSaveAndGetRun(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	run := sampleRun(NewRunID(), started)
	require.NoError(t, store.SaveRun(ctx, run))

	got, err := store.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.True(t, got.StartedAt.Equal(started))
	assert.True(t, got.FinishedAt.Equal(run.FinishedAt))
	assert.Equal(t, run.Sheet, got.Sheet)
	assert.Equal(t, 2, got.Renamed)
	assert.Equal(t, model.RunCompleted, got.Status)
	assert.Empty(t, got.Error)
	assert.Equal(t, run.Files, got.Files)
}

func TestGetRun_NotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	_, err := store.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.SaveRun(ctx, sampleRun(NewRunID(), base.Add(time.Duration(i)*time.Hour))))
	}

	failed := sampleRun(NewRunID(), base.Add(5*time.Hour))
	failed.Status = model.RunFailed
	failed.Error = "invalid image: abc-1.jpg"
	failed.Files = nil
	failed.FinishedAt = time.Time{}
	require.NoError(t, store.SaveRun(ctx, failed))

	runs, err := store.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, failed.ID, runs[0].ID)
	assert.Equal(t, "invalid image: abc-1.jpg", runs[0].Error)
	assert.True(t, runs[0].FinishedAt.IsZero())
	assert.Empty(t, runs[0].Files, "list does not load files")
	assert.True(t, runs[1].StartedAt.Equal(base.Add(2*time.Hour)))

	all, err := store.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestSaveRun_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		mutate func(*model.RunRecord)
		want   error
		name   string
	}{
		{name: "missing id", mutate: func(r *model.RunRecord) { r.ID = "" }, want: ErrInvalidRun},
		{name: "missing start", mutate: func(r *model.RunRecord) { r.StartedAt = time.Time{} }, want: ErrInvalidRun},
		{name: "bad status", mutate: func(r *model.RunRecord) { r.Status = "running" }, want: ErrInvalidStatus},
		{name: "bad file", mutate: func(r *model.RunRecord) { r.Files[0].Sequence = 0 }, want: ErrInvalidRun},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := sampleRun(NewRunID(), time.Now())
			tt.mutate(run)
			assert.ErrorIs(t, store.SaveRun(ctx, run), tt.want)
		})
	}

	assert.ErrorIs(t, store.SaveRun(ctx, nil), ErrNilParameter)
}

func TestSaveRun_DuplicateRollsBack(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	run := sampleRun(NewRunID(), time.Now())
	run.Files = append(run.Files, run.Files[0])
	require.Error(t, store.SaveRun(ctx, run))

	_, err := store.GetRun(ctx, run.ID)
	assert.True(t, errors.Is(err, ErrRunNotFound), "failed save leaves no partial run")
}

func TestMigrate_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "history.db")
	ctx := context.Background()

	store, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.SaveRun(ctx, sampleRun("run-1", time.Now())))
	require.NoError(t, store.Close())

	store, err = NewSQLiteStorage(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Migrate(ctx))

	var version int
	require.NoError(t, store.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)

	got, err := store.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, got.Files, 2)
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	_, err := NewSQLiteStorage(" ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestRecordFromSummary(t *testing.T) {
	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	summary := &model.RunSummary{
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		TotalSeen:  2,
		Processed:  2,
		Renamed:    1,
		Files:      []model.RenamedFile{{Sequence: 1, Source: "a", Target: "b"}},
	}

	rec := RecordFromSummary("id", "s.xlsx", "/p", "/o", summary, nil, false)
	assert.Equal(t, model.RunCompleted, rec.Status)
	assert.Equal(t, started, rec.StartedAt)
	assert.Equal(t, 1, rec.Renamed)
	assert.NoError(t, validateRun(rec))

	rec = RecordFromSummary("id", "s.xlsx", "/p", "/o", summary, nil, true)
	assert.Equal(t, model.RunDryRun, rec.Status)

	rec = RecordFromSummary("id", "s.xlsx", "/p", "/o", &model.RunSummary{StartedAt: started}, errors.New("boom"), false)
	assert.Equal(t, model.RunFailed, rec.Status)
	assert.Equal(t, "boom", rec.Error)
	assert.False(t, rec.FinishedAt.IsZero())

	rec = RecordFromSummary("id", "s.xlsx", "/p", "/o", nil, errors.New("boom"), false)
	assert.False(t, rec.StartedAt.IsZero())
	assert.NoError(t, validateRun(rec))
}
