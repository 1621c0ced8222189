package design

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/photomatch/internal/common"
	"github.com/Veraticus/photomatch/internal/model"
)

// Index maps normalized design codes to spreadsheet records.
// It is not modified after BuildIndex returns.
type Index struct {
	records map[string]model.Record
}

// BuildIndex creates an index from spreadsheet rows. Every row must carry all
// of model.RequiredFields; the first row that does not aborts the build.
// When two rows normalize to the same key the later row wins.
func BuildIndex(rows []model.RawRow) (*Index, error) {
	records := make(map[string]model.Record, len(rows))

	for i, row := range rows {
		for _, field := range model.RequiredFields {
			if _, ok := row[field]; !ok {
				// Records count from 1 and skip blank sheet rows.
				return nil, fmt.Errorf("%w: %s (record %d)", common.ErrMissingField, field, i+1)
			}
		}

		rec := model.Record{
			Design:   row[model.FieldDesign],
			Article:  row[model.FieldArticle],
			Quality:  row[model.FieldQuality],
			Quantity: row[model.FieldQuantity],
		}

		key := Normalize(rec.Design)
		if prev, exists := records[key]; exists {
			slog.Debug("Design code overwritten by later row",
				"key", key,
				"previous", prev.Design,
				"current", rec.Design,
				"record", i+1)
		}
		records[key] = rec
	}

	return &Index{records: records}, nil
}

// Len returns the number of distinct keys.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.records)
}

// Lookup returns the record stored under an exact normalized key.
func (idx *Index) Lookup(key string) (model.Record, bool) {
	if idx == nil {
		return model.Record{}, false
	}
	rec, ok := idx.records[key]
	return rec, ok
}

// Resolve normalizes candidate and returns the record of any key that starts
// with it. When several keys share the prefix the winner is whichever the map
// yields first; no ordering is promised.
func (idx *Index) Resolve(candidate string) model.MatchResult {
	code := Normalize(candidate)
	if code == "" {
		return model.MatchResult{Reason: model.NoCodeExtracted}
	}

	if idx != nil {
		for key, rec := range idx.records {
			if strings.HasPrefix(key, code) {
				found := rec
				return model.MatchResult{
					Record: &found,
					Key:    key,
					Code:   code,
					Reason: model.MatchFound,
				}
			}
		}
	}

	return model.MatchResult{Code: code, Reason: model.NoIndexEntry}
}
