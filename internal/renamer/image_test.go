package renamer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/photomatch/internal/common"
	"github.com/Veraticus/photomatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveImage_PreservesBytesAndOrientation(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	data := testutil.JPEGWithOrientation(t, 6)
	in := testutil.WriteFile(t, src, "abc-1.jpg", data)

	info, err := saveImage(in, filepath.Join(dst, "1. ABC-1_A_Q_1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", info.Format)
	assert.Equal(t, 4, info.Width)
	assert.Equal(t, 3, info.Height)
	assert.Equal(t, 6, info.Orientation)

	out, err := os.ReadFile(filepath.Join(dst, "1. ABC-1_A_Q_1.jpg"))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, out), "image bytes must be copied unchanged")
	assert.Equal(t, []string{"1. ABC-1_A_Q_1.jpg"}, testutil.ListDir(t, dst), "no temp files left behind")
}

func TestSaveImage_NoExif(t *testing.T) {
	src := t.TempDir()
	in := testutil.WriteFile(t, src, "abc-1.png", testutil.PNG(t))

	info, err := saveImage(in, filepath.Join(t.TempDir(), "out.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, 0, info.Orientation)
}

func TestSaveImage_Overwrites(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	data := testutil.PNG(t)
	in := testutil.WriteFile(t, src, "abc-1.png", data)
	target := testutil.WriteFile(t, dst, "1. X.png", []byte("old"))

	_, err := saveImage(in, target)
	require.NoError(t, err)

	out, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestSaveImage_Errors(t *testing.T) {
	src := t.TempDir()

	t.Run("corrupt image", func(t *testing.T) {
		in := testutil.WriteFile(t, src, "abc-1.jpg", []byte("definitely not a jpeg"))
		_, err := saveImage(in, filepath.Join(t.TempDir(), "out.jpg"))
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidImage)
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := saveImage(filepath.Join(src, "missing.jpg"), filepath.Join(t.TempDir(), "out.jpg"))
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrImageSave)
	})

	t.Run("missing destination directory", func(t *testing.T) {
		in := testutil.WriteFile(t, src, "abc-2.png", testutil.PNG(t))
		_, err := saveImage(in, filepath.Join(t.TempDir(), "nope", "out.png"))
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrImageSave)
	})
}
