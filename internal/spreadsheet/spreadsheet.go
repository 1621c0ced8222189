// Package spreadsheet loads design rows from xlsx, csv or Google Sheets.
package spreadsheet

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Veraticus/photomatch/internal/common"
	"github.com/Veraticus/photomatch/internal/model"
	"github.com/Veraticus/photomatch/internal/sheets"
)

// GoogleSheetsScheme prefixes a Google spreadsheet reference:
// gsheets:<spreadsheet-id>[/<range>].
const GoogleSheetsScheme = "gsheets:"

// Source yields header-keyed rows.
type Source interface {
	Rows(ctx context.Context) ([]model.RawRow, error)
}

// Options configures Open.
type Options struct {
	Logger *slog.Logger
	// Sheet names the worksheet to read from an xlsx file; empty means the first.
	Sheet  string
	Google sheets.Config
}

// Open picks a Source for location by its scheme or file extension.
func Open(location string, opts Options) (Source, error) {
	if strings.HasPrefix(location, GoogleSheetsScheme) {
		id, rng := parseGoogleRef(strings.TrimPrefix(location, GoogleSheetsScheme))
		if id == "" {
			return nil, fmt.Errorf("%w: missing spreadsheet id in %q", common.ErrUnsupportedSource, location)
		}
		return &GoogleSource{SpreadsheetID: id, Range: rng, Config: opts.Google, Logger: opts.Logger}, nil
	}

	switch strings.ToLower(filepath.Ext(location)) {
	case ".xlsx", ".xlsm":
		return &XLSXSource{Path: location, Sheet: opts.Sheet}, nil
	case ".csv":
		return &CSVSource{Path: location}, nil
	case ".xls":
		return nil, fmt.Errorf("%w: %s is a legacy Excel 97-2003 workbook, save it as .xlsx or .csv",
			common.ErrUnsupportedSource, location)
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedSource, location)
	}
}

// Load opens location and reads all of its rows.
func Load(ctx context.Context, location string, opts Options) ([]model.RawRow, error) {
	src, err := Open(location, opts)
	if err != nil {
		return nil, err
	}
	return src.Rows(ctx)
}

func parseGoogleRef(ref string) (id, rng string) {
	id, rng, _ = strings.Cut(ref, "/")
	return strings.TrimSpace(id), strings.TrimSpace(rng)
}

// toRawRows turns a grid whose first row is the header into header-keyed
// rows. Blank rows are dropped and short rows are padded with empty cells, so
// a column exists in every row exactly when the header names it.
func toRawRows(grid [][]string) ([]model.RawRow, error) {
	if len(grid) == 0 {
		return nil, common.ErrEmptySheet
	}

	header := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	rows := make([]model.RawRow, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		if isBlank(cells) {
			continue
		}
		row := make(model.RawRow, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if _, dup := row[name]; dup {
				continue
			}
			if i < len(cells) {
				row[name] = strings.TrimSpace(cells[i])
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
