package spreadsheet

import (
	"context"
	"fmt"

	"github.com/Veraticus/photomatch/internal/common"
	"github.com/Veraticus/photomatch/internal/model"
	"github.com/xuri/excelize/v2"
)

// XLSXSource reads an Excel workbook.
type XLSXSource struct {
	Path  string
	Sheet string
}

// Rows implements Source.
func (s *XLSXSource) Rows(_ context.Context) ([]model.RawRow, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", s.Path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := s.Sheet
	if sheet == "" {
		names := f.GetSheetList()
		if len(names) == 0 {
			return nil, fmt.Errorf("%w: %s", common.ErrEmptySheet, s.Path)
		}
		sheet = names[0]
	}

	grid, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	rows, err := toRawRows(grid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return rows, nil
}
