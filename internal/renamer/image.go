package renamer

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"

	"github.com/Veraticus/photomatch/internal/common"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp" // register BMP decoder
)

// imageInfo describes a source image after validation.
type imageInfo struct {
	Format      string
	Width       int
	Height      int
	Orientation int // EXIF orientation, 0 when absent
}

// saveImage validates src as a decodable image and writes its bytes to dst.
// Copying the encoded bytes keeps pixel data and every embedded metadata
// block, EXIF orientation included, exactly as they were.
func saveImage(src, dst string) (imageInfo, error) {
	f, err := os.Open(src) // #nosec G304
	if err != nil {
		return imageInfo{}, fmt.Errorf("%w: %w", common.ErrImageSave, err)
	}
	defer func() { _ = f.Close() }()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return imageInfo{}, fmt.Errorf("%w: %s: %w", common.ErrInvalidImage, filepath.Base(src), err)
	}
	info := imageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return info, fmt.Errorf("%w: %w", common.ErrImageSave, err)
	}
	info.Orientation = readOrientation(f)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return info, fmt.Errorf("%w: %w", common.ErrImageSave, err)
	}
	if err := writeFileAtomic(dst, f); err != nil {
		return info, fmt.Errorf("%w: %w", common.ErrImageSave, err)
	}

	return info, nil
}

// readOrientation returns the EXIF orientation tag, or 0 if r has none.
func readOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 0
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 0
	}
	v, err := tag.Int(0)
	if err != nil {
		return 0
	}
	return v
}

// writeFileAtomic streams r into a temp file beside dst and renames it over dst.
func writeFileAtomic(dst string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".photomatch-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to copy image data: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		cleanup()
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		cleanup()
		return fmt.Errorf("failed to move image into place: %w", err)
	}
	return nil
}
