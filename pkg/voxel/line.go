package voxel

import (
	"image/color"
	"math"

	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
	"github.com/SBPrime/MCPainter-sub001/pkg/texture"
	"github.com/SBPrime/MCPainter-sub001/pkg/world"
)

// DrawLine places the voxels from p1 to p2 in unit steps along the dominant
// axis: round(max |Δ|) steps, so a line N blocks long places N+1 voxels.
// Vertices use the rendered layout (ChanX..ChanB).
func DrawLine(t world.Target, tex *texture.Image, p1, p2 Vertex) error {
	d := p2.Sub(p1)
	cnt := int(math.Round(max(math.Abs(d.X()), math.Abs(d.Y()), math.Abs(d.Z()))))
	if cnt == 0 {
		return drawVoxel(t, tex, p1)
	}
	step := d.Div(float64(cnt))
	for i := 0; i <= cnt; i++ {
		if err := drawVoxel(t, tex, p1.Add(step.Scale(float64(i)))); err != nil {
			return err
		}
	}
	return nil
}

func drawVoxel(t world.Target, tex *texture.Image, v Vertex) error {
	pos := math3d.V3(v.X(), v.Y(), v.Z()).Round()
	c, ok := colorOf(tex, v)
	if !ok {
		return t.PlaceFallback(pos)
	}
	return t.PlaceColor(pos, c)
}

// colorOf resolves the color of a voxel: the texture under its UV, else its
// RGB channels when all lie in [0,255]. ok is false when neither applies.
func colorOf(tex *texture.Image, v Vertex) (color.RGBA, bool) {
	u, tv := v.Get(ChanU), v.Get(ChanV)
	if tex.Valid() && u.Defined && tv.Defined {
		return tex.Sample(u.Value, tv.Value, texture.WrapRepeat), true
	}

	r, g, b := v.Get(ChanR), v.Get(ChanG), v.Get(ChanB)
	if !r.Defined || !g.Defined || !b.Defined {
		return color.RGBA{}, false
	}
	for _, ch := range []float64{r.Value, g.Value, b.Value} {
		if ch < 0 || ch > 255 {
			return color.RGBA{}, false
		}
	}
	return color.RGBA{
		R: uint8(math.Round(r.Value)),
		G: uint8(math.Round(g.Value)),
		B: uint8(math.Round(b.Value)),
		A: 255,
	}, true
}
