package voxel

import (
	"fmt"
	"math"

	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
	"github.com/SBPrime/MCPainter-sub001/pkg/models"
	"github.com/SBPrime/MCPainter-sub001/pkg/world"
)

// DefaultSpacing is the largest gap between surface samples, in blocks.
const DefaultSpacing = 0.5

// SampleTriangle emits points covering the triangle abc, no two neighbours
// farther apart than spacing. Attributes are interpolated barycentrically.
func SampleTriangle(a, b, c Vertex, spacing float64, emit func(Vertex)) {
	if spacing <= 0 {
		spacing = DefaultSpacing
	}
	longest := max(edge(a, b), edge(b, c), edge(c, a))
	n := max(1, int(math.Ceil(longest/spacing)))

	for i := 0; i <= n; i++ {
		for j := 0; j <= n-i; j++ {
			wb := float64(i) / float64(n)
			wc := float64(j) / float64(n)
			wa := 1 - wb - wc
			emit(a.Scale(wa).Add(b.Scale(wb)).Add(c.Scale(wc)))
		}
	}
}

func edge(a, b Vertex) float64 {
	return math.Sqrt(sq(a.X()-b.X()) + sq(a.Y()-b.Y()) + sq(a.Z()-b.Z()))
}

func sq(x float64) float64 { return x * x }

// Fit returns the scale that makes the longest side of the mesh span size
// blocks, and the resulting block extent.
func Fit(mesh *models.Mesh, size int) (float64, math3d.IVec3) {
	dims := mesh.Size()
	longest := dims.MaxComponent()
	scale := 1.0
	if longest > 0 && size > 1 {
		scale = float64(size-1) / longest
	}
	ext := math3d.I3(
		int(math.Round(dims.X*scale))+1,
		int(math.Round(dims.Y*scale))+1,
		int(math.Round(dims.Z*scale))+1,
	)
	return scale, ext
}

// DrawMesh voxelizes a mesh scaled to size blocks along its longest side.
// Mesh +X runs along the drawing width, +Y up, and +Z towards the viewer.
// Faces are grouped by material and every group fills its own canvas, so
// textures never bleed between materials.
func DrawMesh(t world.Target, mesh *models.Mesh, size int) error {
	if mesh == nil || len(mesh.Faces) == 0 {
		return nil
	}
	scale, _ := Fit(mesh, size)
	local := make([]Vertex, len(mesh.Vertices))

	for _, group := range mesh.GroupByMaterial() {
		mat := mesh.GetMaterial(group.Material)
		for i, v := range mesh.Vertices {
			local[i] = meshVertex(mesh, v, mat, scale)
		}

		var points []Vertex
		for _, fi := range group.Faces {
			f := mesh.Faces[fi]
			SampleTriangle(local[f.V[0]], local[f.V[1]], local[f.V[2]], DefaultSpacing, func(v Vertex) {
				points = append(points, v)
			})
		}

		canvas := NewCanvas(points)
		for _, p := range points {
			canvas.PutPixel(p)
		}
		if err := canvas.Render(t, mat.Texture(), Identity(OutputChannels)); err != nil {
			return fmt.Errorf("material %d: %w", group.Material, err)
		}
	}
	return nil
}

func meshVertex(mesh *models.Mesh, v models.MeshVertex, mat *models.Material, scale float64) Vertex {
	p := v.Position
	out := Undefined(OutputChannels)
	// columns truncate X and Y; the half-block shift makes that a rounding
	out[ChanX] = Def((p.X-mesh.BoundsMin.X)*scale + 0.5)
	out[ChanY] = Def((p.Y-mesh.BoundsMin.Y)*scale + 0.5)
	out[ChanZ] = Def((mesh.BoundsMax.Z - p.Z) * scale)

	if v.HasUV && mat.HasTexture() {
		out[ChanU] = Def(v.UV.X)
		out[ChanV] = Def(v.UV.Y)
	}
	switch {
	case v.HasColor:
		out[ChanR] = Def(float64(v.Color.R))
		out[ChanG] = Def(float64(v.Color.G))
		out[ChanB] = Def(float64(v.Color.B))
	case mat != nil:
		c := mat.Color()
		out[ChanR] = Def(float64(c.R))
		out[ChanG] = Def(float64(c.G))
		out[ChanB] = Def(float64(c.B))
	}
	return out
}
