// Package palette matches colors to the blocks that can represent them:
// redmean color distance, nearest-color lookup and Floyd–Steinberg error
// diffusion.
package palette

import (
	"image/color"
)

// Transparent is returned for colors too translucent to place.
var Transparent = color.RGBA{}

// AlphaThreshold is the lowest alpha that still counts as a visible color.
const AlphaThreshold = 128

// Palette is an ordered set of colors. Order matters: the first entry wins
// ties during nearest-color lookup.
type Palette []color.RGBA

// IsTransparent reports whether c is below the translucency threshold.
func IsTransparent(c color.RGBA) bool {
	return c.A < AlphaThreshold
}

// Distance returns the redmean-weighted squared distance between two colors.
// Alpha is ignored.
func Distance(a, b color.RGBA) float64 {
	rmean := (float64(a.R) + float64(b.R)) / 2
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)

	weightR := 2 + rmean/256
	weightG := 4.0
	weightB := 2 + (255-rmean)/256

	return weightR*dr*dr + weightG*dg*dg + weightB*db*db
}

// FindClosest returns the palette entry nearest to c and its index. Colors
// below the translucency threshold, and empty palettes, give Transparent
// and -1.
func FindClosest(c color.RGBA, p Palette) (color.RGBA, int) {
	if IsTransparent(c) || len(p) == 0 {
		return Transparent, -1
	}

	best := -1
	bestDist := 0.0
	for i, entry := range p {
		d := Distance(c, entry)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return p[best], best
}
