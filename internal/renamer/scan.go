package renamer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/photomatch/internal/common"
	"github.com/Veraticus/photomatch/internal/model"
)

// scanResult is the single directory listing a run works from.
type scanResult struct {
	photos     []model.PhotoFile
	totalFiles int
}

// scanDir lists dir once. Every regular file counts toward totalFiles; only
// files with a photo extension are returned for processing.
func scanDir(dir string) (scanResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return scanResult{}, fmt.Errorf("%w: %w", common.ErrPhotoDir, err)
	}

	var res scanResult
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !isRegularFile(entry, path) {
			continue
		}
		res.totalFiles++

		if !IsPhoto(entry.Name()) {
			continue
		}
		res.photos = append(res.photos, model.PhotoFile{
			Path:      path,
			Filename:  entry.Name(),
			Extension: extension(entry.Name()),
		})
	}

	return res, nil
}

// IsPhoto reports whether filename has one of the recognized photo extensions.
func IsPhoto(filename string) bool {
	return model.PhotoExtensions[strings.ToLower(filepath.Ext(filename))]
}

func isRegularFile(entry os.DirEntry, path string) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// extension returns the text after the last dot, keeping its case.
func extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return filename
	}
	return filename[i+1:]
}
