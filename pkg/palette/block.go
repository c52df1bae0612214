package palette

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/SBPrime/MCPainter-sub001/pkg/texture"
)

// Kind is the drawing operation a block may be used for. Kinds combine as
// bit flags.
type Kind uint8

const (
	KindBlock Kind = 1 << iota
	KindImage
	KindStatue

	KindAll = KindBlock | KindImage | KindStatue
)

func (k Kind) String() string {
	var parts []string
	if k&KindBlock != 0 {
		parts = append(parts, "block")
	}
	if k&KindImage != 0 {
		parts = append(parts, "image")
	}
	if k&KindStatue != 0 {
		parts = append(parts, "statue")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseKind parses a single kind name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "block":
		return KindBlock, nil
	case "image":
		return KindImage, nil
	case "statue":
		return KindStatue, nil
	case "all":
		return KindAll, nil
	}
	return 0, fmt.Errorf("unknown drawing kind %q", s)
}

// DrawingBlock pairs a placeable block with the color it represents.
type DrawingBlock struct {
	ID    string
	Color color.RGBA
	Kinds Kind
}

// Valid reports whether the block may be used for operations of kind k.
func (b DrawingBlock) Valid(k Kind) bool {
	return b.Kinds&k != 0
}

// ColorMap resolves colors to blocks. It is immutable once built.
type ColorMap struct {
	blocks   []DrawingBlock
	fallback DrawingBlock
	byKind   map[Kind]kindTable
}

type kindTable struct {
	palette Palette
	blocks  []DrawingBlock
}

// NewColorMap builds a color map over blocks, in order. fallback is placed
// where a color cannot be resolved. Blocks whose own color is transparent
// are kept in Blocks but never matched.
func NewColorMap(blocks []DrawingBlock, fallback DrawingBlock) *ColorMap {
	cm := &ColorMap{
		blocks:   append([]DrawingBlock(nil), blocks...),
		fallback: fallback,
		byKind:   make(map[Kind]kindTable, 3),
	}
	for _, k := range []Kind{KindBlock, KindImage, KindStatue} {
		var tbl kindTable
		for _, b := range cm.blocks {
			if b.Valid(k) && !IsTransparent(b.Color) {
				tbl.palette = append(tbl.palette, b.Color)
				tbl.blocks = append(tbl.blocks, b)
			}
		}
		cm.byKind[k] = tbl
	}
	return cm
}

// Blocks returns the blocks in palette order.
func (cm *ColorMap) Blocks() []DrawingBlock {
	return cm.blocks
}

// Fallback returns the solid block used when no color resolves.
func (cm *ColorMap) Fallback() DrawingBlock {
	return cm.fallback
}

// Palette returns the colors usable for kind k with the matching blocks,
// index for index.
func (cm *ColorMap) Palette(k Kind) (Palette, []DrawingBlock) {
	tbl := cm.byKind[k]
	return tbl.palette, tbl.blocks
}

// BlockForColor returns the block nearest to c among the blocks valid for
// kind k. It reports false for transparent colors and when no block serves
// the kind.
func (cm *ColorMap) BlockForColor(c color.RGBA, k Kind) (DrawingBlock, bool) {
	tbl := cm.byKind[k]
	_, idx := FindClosest(c, tbl.palette)
	if idx < 0 {
		return DrawingBlock{}, false
	}
	return tbl.blocks[idx], true
}

// AverageColor returns the mean color of the visible pixels of a texture,
// used as the representative color of a block.
func AverageColor(img *texture.Image) color.RGBA {
	var r, g, b, n int
	for y := range img.Height {
		for x := range img.Width {
			c := img.PixelAt(y, x)
			if IsTransparent(c) {
				continue
			}
			r += int(c.R)
			g += int(c.G)
			b += int(c.B)
			n++
		}
	}
	if n == 0 {
		return Transparent
	}
	return color.RGBA{
		R: uint8((r + n/2) / n),
		G: uint8((g + n/2) / n),
		B: uint8((b + n/2) / n),
		A: 255,
	}
}
