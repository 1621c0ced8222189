package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/photomatch/internal/model"
	"github.com/stretchr/testify/require"
)

// Row builds a complete design row.
func Row(design, article, quality, qty string) model.RawRow {
	return model.RawRow{
		model.FieldDesign:   design,
		model.FieldArticle:  article,
		model.FieldQuality:  quality,
		model.FieldQuantity: qty,
	}
}

// WriteCSV writes a design sheet with the required header followed by rows
// given as DESIGN, ARTICLE, QUALITY, QTY tuples.
func WriteCSV(t *testing.T, dir, name string, rows ...[4]string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(strings.Join([]string{model.FieldDesign, model.FieldArticle, model.FieldQuality, model.FieldQuantity}, ",") + "\n")
	for _, r := range rows {
		b.WriteString(strings.Join(r[:], ",") + "\n")
	}
	return WriteFile(t, dir, name, []byte(b.String()))
}

// PhotoDir creates dir/name and fills it with valid images named after files.
// Names with a .jpg/.jpeg extension get JPEG data, every other name PNG data.
func PhotoDir(t *testing.T, dir, name string, files ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(path, 0750))
	for _, f := range files {
		data := PNG(t)
		switch strings.ToLower(filepath.Ext(f)) {
		case ".jpg", ".jpeg":
			data = JPEG(t)
		}
		WriteFile(t, path, f, data)
	}
	return path
}
