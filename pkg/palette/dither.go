package palette

import (
	"image/color"

	"github.com/SBPrime/MCPainter-sub001/pkg/texture"
)

// Indexed is an image reduced to palette indices; -1 marks transparency.
type Indexed struct {
	Width  int
	Height int
	Index  []int
}

// At returns the palette index at (x, y).
func (ix *Indexed) At(x, y int) int {
	return ix.Index[y*ix.Width+x]
}

// Quantize maps every pixel to its nearest palette entry without error
// diffusion.
func Quantize(img *texture.Image, p Palette) *Indexed {
	out := newIndexed(img)
	for y := range img.Height {
		for x := range img.Width {
			_, idx := FindClosest(img.PixelAt(y, x), p)
			out.Index[y*img.Width+x] = idx
		}
	}
	return out
}

// Dither quantizes with Floyd–Steinberg error diffusion. Pixels are visited
// row-major, left to right; the error of each pixel is spread 7/16 right,
// 3/16 below-left, 5/16 below and 1/16 below-right, clamped to [0,255].
// Transparent pixels are left out and spread no error.
func Dither(img *texture.Image, p Palette) *Indexed {
	out := newIndexed(img)
	w, h := img.Width, img.Height

	buf := make([][3]int, w*h)
	for y := range h {
		for x := range w {
			c := img.PixelAt(y, x)
			buf[y*w+x] = [3]int{int(c.R), int(c.G), int(c.B)}
		}
	}

	spread := func(x, y int, e [3]int, num int) {
		if x < 0 || x >= w || y >= h {
			return
		}
		px := &buf[y*w+x]
		for ch := range 3 {
			px[ch] = clamp8(px[ch] + e[ch]*num/16)
		}
	}

	for y := range h {
		for x := range w {
			src := img.PixelAt(y, x)
			if IsTransparent(src) {
				out.Index[y*w+x] = -1
				continue
			}
			old := buf[y*w+x]
			c := color.RGBA{R: uint8(old[0]), G: uint8(old[1]), B: uint8(old[2]), A: src.A}
			quant, idx := FindClosest(c, p)
			out.Index[y*w+x] = idx
			if idx < 0 {
				continue
			}

			e := [3]int{
				old[0] - int(quant.R),
				old[1] - int(quant.G),
				old[2] - int(quant.B),
			}
			spread(x+1, y, e, 7)
			spread(x-1, y+1, e, 3)
			spread(x, y+1, e, 5)
			spread(x+1, y+1, e, 1)
		}
	}
	return out
}

func newIndexed(img *texture.Image) *Indexed {
	return &Indexed{
		Width:  img.Width,
		Height: img.Height,
		Index:  make([]int, img.Width*img.Height),
	}
}

func clamp8(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
