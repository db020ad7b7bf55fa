package utils

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngDataURL(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeImageDataURL(t *testing.T) {
	raw, err := DecodeImageDataURL(pngDataURL(t, 4, 4))
	assert.NoError(t, err)
	assert.NotEmpty(t, raw)

	_, err = DecodeImageDataURL("data:text/plain;base64,aGVsbG8=")
	assert.ErrorIs(t, err, ErrInvalidImageData)

	_, err = DecodeImageDataURL("data:image/png;base64,!!!not-base64!!!")
	assert.ErrorIs(t, err, ErrInvalidImageData)

	_, err = DecodeImageDataURL("plain string")
	assert.ErrorIs(t, err, ErrInvalidImageData)
}

func TestSaveImageDataURL(t *testing.T) {
	dir := t.TempDir()

	rel, err := SaveImageDataURL(pngDataURL(t, 8, 8), dir, "captures")
	require.NoError(t, err)
	assert.True(t, filepath.IsLocal(rel))

	info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	_, err = SaveImageDataURL("data:image/png;base64,aGVsbG8=", dir, "captures")
	assert.ErrorIs(t, err, ErrInvalidImageData)
}

func TestCropToFill(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	out := CropToFill(src, 40, 40)

	bounds := out.Bounds()
	assert.Equal(t, 40, bounds.Dx())
	assert.Equal(t, 40, bounds.Dy())
}
