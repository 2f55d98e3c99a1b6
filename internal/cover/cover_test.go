package cover

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes renders a solid test image of the given size.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	return cfg.Width, cfg.Height
}

func TestDerive_WideSourceIsBounded(t *testing.T) {
	coverImg, thumb, err := Derive(pngBytes(t, 1600, 1200))
	require.NoError(t, err)

	w, h := decodeSize(t, coverImg)
	assert.Equal(t, MaxCoverWidth, w)
	assert.Equal(t, 600, h) // proportional

	tw, th := decodeSize(t, thumb)
	assert.Equal(t, ThumbWidth, tw)
	assert.Equal(t, ThumbHeight, th)
}

func TestDerive_NarrowSourceIsNotUpscaled(t *testing.T) {
	coverImg, thumb, err := Derive(pngBytes(t, 400, 300))
	require.NoError(t, err)

	w, h := decodeSize(t, coverImg)
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)

	// the thumbnail is always exactly its fixed size
	tw, th := decodeSize(t, thumb)
	assert.Equal(t, ThumbWidth, tw)
	assert.Equal(t, ThumbHeight, th)
}

func TestDerive_TallSourceThumbnailCropsNotLetterboxes(t *testing.T) {
	_, thumb, err := Derive(pngBytes(t, 300, 900))
	require.NoError(t, err)

	tw, th := decodeSize(t, thumb)
	assert.Equal(t, ThumbWidth, tw)
	assert.Equal(t, ThumbHeight, th)
}

func TestDerive_CorruptInput(t *testing.T) {
	_, _, err := Derive([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestStorage_SaveAndOverwrite(t *testing.T) {
	s := NewStorage(t.TempDir())

	require.NoError(t, s.Save(42, []byte("cover-v1"), []byte("thumb-v1")))
	assert.True(t, s.HasCover(42))
	assert.False(t, s.HasCover(43))

	// a second save replaces the previous pair
	require.NoError(t, s.Save(42, []byte("cover-v2"), []byte("thumb-v2")))

	coverData, err := os.ReadFile(s.CoverPath(42))
	require.NoError(t, err)
	assert.Equal(t, "cover-v2", string(coverData))

	thumbData, err := os.ReadFile(s.ThumbnailPath(42))
	require.NoError(t, err)
	assert.Equal(t, "thumb-v2", string(thumbData))
}
