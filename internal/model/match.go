package model

// UnmatchedReason explains why a photo could not be matched to a record.
type UnmatchedReason int

// Unmatched reasons.
const (
	MatchFound UnmatchedReason = iota
	NoCodeExtracted
	NoIndexEntry
)

func (r UnmatchedReason) String() string {
	switch r {
	case MatchFound:
		return "matched"
	case NoCodeExtracted:
		return "no code extracted"
	case NoIndexEntry:
		return "no index entry"
	default:
		return "unknown"
	}
}

// MatchResult is the outcome of resolving one filename against an index.
type MatchResult struct {
	Record *Record
	Key    string // index key that matched
	Code   string // normalized candidate code
	Reason UnmatchedReason
}

// Matched reports whether a record was found.
func (m MatchResult) Matched() bool {
	return m.Reason == MatchFound && m.Record != nil
}
