package model

import "time"

// Run statuses stored in history.
const (
	RunCompleted = "completed"
	RunFailed    = "failed"
	RunDryRun    = "dry-run"
)

// RunRecord is one rename run as kept in the history database.
type RunRecord struct {
	StartedAt  time.Time
	FinishedAt time.Time
	ID         string
	Sheet      string
	PhotoDir   string
	OutputDir  string
	Status     string
	Error      string
	Files      []RenamedFile
	TotalSeen  int
	Processed  int
	Renamed    int
	Failed     int
}
