package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestImage builds a 4x4 image whose pixels encode their own coordinates.
func newTestImage(hasAlpha bool) *Image {
	img := New(4, 4, hasAlpha)
	for y := range 4 {
		for x := range 4 {
			img.SetPixel(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 60), B: 7, A: 100})
		}
	}
	return img
}

func TestGetColorWrapsU(t *testing.T) {
	img := newTestImage(true)
	assert.Equal(t, img.GetColor(0, 0), img.GetColor(float64(img.Width), 0))
}

func TestGetColorWrapsNegativeBeyondOneWidth(t *testing.T) {
	img := newTestImage(true)
	tests := []struct {
		u, v         float64
		wantX, wantY int
	}{
		{-1, 0, 3, 0},
		{-4, 0, 0, 0},
		{-9, -6, 3, 2},
		{13.7, 5.2, 1, 1},
	}
	for _, tc := range tests {
		got := img.GetColor(tc.u, tc.v)
		assert.Equal(t, img.PixelAt(tc.wantY, tc.wantX), got, "u=%v v=%v", tc.u, tc.v)
	}
}

func TestAlphaForcedWithoutAlphaChannel(t *testing.T) {
	img := newTestImage(false)
	assert.Equal(t, uint8(255), img.GetColor(1, 1).A)

	withAlpha := newTestImage(true)
	assert.Equal(t, uint8(100), withAlpha.GetColor(1, 1).A)
}

func TestSampleWrapModes(t *testing.T) {
	img := newTestImage(true)
	assert.Equal(t, img.PixelAt(0, 0), img.Sample(1.0, 0, WrapRepeat))
	assert.Equal(t, img.PixelAt(0, 3), img.Sample(1.0, 0, WrapClamp))
	assert.Equal(t, img.PixelAt(0, 0), img.Sample(-0.5, -3, WrapClamp))
	assert.Equal(t, img.PixelAt(2, 1), img.Sample(0.3, 0.6, WrapRepeat))
}

func TestPixelAtOutOfRange(t *testing.T) {
	img := newTestImage(true)
	assert.Equal(t, color.RGBA{}, img.PixelAt(4, 0))
	assert.Equal(t, color.RGBA{}, img.PixelAt(0, -1))
}

func TestLoadPNG(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	src.Set(1, 0, color.NRGBA{B: 255, A: 0})

	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width)
	assert.Equal(t, 1, img.Height)
	assert.True(t, img.HasAlpha)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.GetColor(0, 0))
	assert.Equal(t, uint8(0), img.GetColor(1, 0).A)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/texture.png")
	assert.Error(t, err)
}

func TestGray(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 9}, Gray(color.RGBA{R: 255, G: 255, B: 255, A: 9}))
	g := Gray(color.RGBA{R: 255, A: 255})
	assert.Equal(t, g.R, g.G)
	assert.Equal(t, uint8(76), g.R)
}
