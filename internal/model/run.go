package model

import "time"

// PhotoExtensions are the lowercase extensions treated as photo files.
var PhotoExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
}

// PhotoFile is a directory entry considered for renaming.
type PhotoFile struct {
	Path      string
	Filename  string
	Extension string // text after the last dot, original case
}

// RenamedFile records one successful copy.
type RenamedFile struct {
	Source   string
	Target   string
	Sequence int
}

// RunSummary holds the counters of a single rename run.
type RunSummary struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Files      []RenamedFile
	TotalSeen  int
	Processed  int
	Renamed    int
	Failed     int
}
