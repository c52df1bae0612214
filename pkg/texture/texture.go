// Package texture holds decoded raw images and the wrapped pixel lookups the
// voxelizer samples colors from.
package texture

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"
)

// WrapMode determines how texture coordinates outside the image are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
)

// Image is a read-only raw image: row-major pixels, origin top-left.
type Image struct {
	Width    int
	Height   int
	HasAlpha bool
	Pixels   []color.RGBA
}

// New creates an empty image with the given dimensions.
func New(width, height int, hasAlpha bool) *Image {
	return &Image{
		Width:    width,
		Height:   height,
		HasAlpha: hasAlpha,
		Pixels:   make([]color.RGBA, width*height),
	}
}

// Load decodes a PNG or JPEG file.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return FromImage(img), nil
}

// FromImage copies an image.Image. Images that report themselves opaque are
// marked as having no alpha channel.
func FromImage(img image.Image) *Image {
	bounds := img.Bounds()
	hasAlpha := true
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		hasAlpha = false
	}

	tex := New(bounds.Dx(), bounds.Dy(), hasAlpha)
	for y := range tex.Height {
		for x := range tex.Width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			tex.Pixels[y*tex.Width+x] = color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
		}
	}
	return tex
}

// Valid reports whether the image has pixels to sample.
func (t *Image) Valid() bool {
	return t != nil && t.Width > 0 && t.Height > 0 && len(t.Pixels) >= t.Width*t.Height
}

// SetPixel sets a pixel, ignoring out-of-range coordinates.
func (t *Image) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// PixelAt returns the pixel at (row, col) without wrapping; out-of-range
// coordinates read as transparent.
func (t *Image) PixelAt(row, col int) color.RGBA {
	if col < 0 || col >= t.Width || row < 0 || row >= t.Height {
		return color.RGBA{}
	}
	return t.opaque(t.Pixels[row*t.Width+col])
}

// GetColor returns the pixel under pixel coordinates (u, v), wrapping both
// into the image. Fractional coordinates select the pixel they fall in.
func (t *Image) GetColor(u, v float64) color.RGBA {
	x := wrap(int(math.Floor(u)), t.Width)
	y := wrap(int(math.Floor(v)), t.Height)
	return t.opaque(t.Pixels[y*t.Width+x])
}

// Sample samples normalized coordinates (0-1 range, V=0 at the top row)
// with nearest-pixel filtering.
func (t *Image) Sample(u, v float64, mode WrapMode) color.RGBA {
	x := int(math.Floor(u * float64(t.Width)))
	y := int(math.Floor(v * float64(t.Height)))
	switch mode {
	case WrapClamp:
		x = clamp(x, t.Width)
		y = clamp(y, t.Height)
	default:
		x = wrap(x, t.Width)
		y = wrap(y, t.Height)
	}
	return t.opaque(t.Pixels[y*t.Width+x])
}

func (t *Image) opaque(c color.RGBA) color.RGBA {
	if !t.HasAlpha {
		c.A = 255
	}
	return c
}

// wrap maps x into [0, size) with a full modulo.
func wrap(x, size int) int {
	x %= size
	if x < 0 {
		x += size
	}
	return x
}

func clamp(x, size int) int {
	if x < 0 {
		return 0
	}
	if x >= size {
		return size - 1
	}
	return x
}

// Gray converts a color to its luminance, keeping alpha.
func Gray(c color.RGBA) color.RGBA {
	y := uint8((299*int(c.R) + 587*int(c.G) + 114*int(c.B) + 500) / 1000)
	return color.RGBA{R: y, G: y, B: y, A: c.A}
}
