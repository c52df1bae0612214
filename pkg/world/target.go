package world

import (
	"image/color"

	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
	"github.com/SBPrime/MCPainter-sub001/pkg/palette"
)

// Target bundles what a drawing needs to turn local colors into placed
// blocks.
type Target struct {
	Frame  Frame
	Placer Placer
	Colors *palette.ColorMap
	Kind   palette.Kind
}

// PlaceColor resolves c through the color map and places the block at a
// local position. Transparent colors place nothing. A visible color no block
// can serve places the fallback block.
func (t Target) PlaceColor(local math3d.IVec3, c color.RGBA) error {
	if palette.IsTransparent(c) {
		return nil
	}
	block, ok := t.Colors.BlockForColor(c, t.Kind)
	if !ok {
		block = t.Colors.Fallback()
	}
	return t.Placer.Place(t.Frame.World(local), block)
}

// PlaceFallback places the fallback block at a local position.
func (t Target) PlaceFallback(local math3d.IVec3) error {
	return t.Placer.Place(t.Frame.World(local), t.Colors.Fallback())
}
