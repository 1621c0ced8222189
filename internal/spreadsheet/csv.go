package spreadsheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/Veraticus/photomatch/internal/model"
)

// CSVSource reads a comma-separated file with a header row.
type CSVSource struct {
	Path string
}

// Rows implements Source.
func (s *CSVSource) Rows(_ context.Context) ([]model.RawRow, error) {
	f, err := os.Open(s.Path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to open csv %s: %w", s.Path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	grid, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv %s: %w", s.Path, err)
	}

	rows, err := toRawRows(grid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return rows, nil
}
