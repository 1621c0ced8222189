package spreadsheet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/photomatch/internal/model"
	"github.com/Veraticus/photomatch/internal/sheets"
)

// valuesReader is the part of sheets.Reader used here.
type valuesReader interface {
	Values(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
}

// GoogleSource reads a Google spreadsheet.
type GoogleSource struct {
	reader        valuesReader
	Logger        *slog.Logger
	SpreadsheetID string
	Range         string
	Config        sheets.Config
}

// Rows implements Source.
func (s *GoogleSource) Rows(ctx context.Context) ([]model.RawRow, error) {
	if s.reader == nil {
		r, err := sheets.NewReader(ctx, s.Config, s.Logger)
		if err != nil {
			return nil, err
		}
		s.reader = r
	}

	grid, err := s.reader.Values(ctx, s.SpreadsheetID, s.Range)
	if err != nil {
		return nil, err
	}

	rows, err := toRawRows(grid)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet %s: %w", s.SpreadsheetID, err)
	}
	return rows, nil
}
