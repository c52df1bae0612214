package voxel

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
	"github.com/SBPrime/MCPainter-sub001/pkg/models"
	"github.com/SBPrime/MCPainter-sub001/pkg/orientation"
	"github.com/SBPrime/MCPainter-sub001/pkg/palette"
	"github.com/SBPrime/MCPainter-sub001/pkg/texture"
	"github.com/SBPrime/MCPainter-sub001/pkg/world"
)

func testTarget(p world.Placer) world.Target {
	return world.Target{
		// north, level: local (w, h, d) -> world (w, h, -d)
		Frame:  world.Frame{Orientation: orientation.New(180, 0)},
		Placer: p,
		Colors: palette.NewColorMap([]palette.DrawingBlock{
			{ID: "red", Color: color.RGBA{255, 0, 0, 255}, Kinds: palette.KindAll},
			{ID: "blue", Color: color.RGBA{0, 0, 255, 255}, Kinds: palette.KindAll},
		}, palette.DrawingBlock{ID: "stone"}),
		Kind: palette.KindStatue,
	}
}

func rgb(x, y, z, r, g, b float64) Vertex {
	v := Undefined(OutputChannels)
	v[ChanX], v[ChanY], v[ChanZ] = Def(x), Def(y), Def(z)
	v[ChanR], v[ChanG], v[ChanB] = Def(r), Def(g), Def(b)
	return v
}

func TestVertexArithmeticDefinedness(t *testing.T) {
	a := Vertex{Def(1), {}, {}, Def(4)}
	b := Vertex{Def(2), Def(3), {}}

	sum := a.Add(b)
	require.Len(t, sum, 4)
	assert.Equal(t, Def(3), sum[0])
	assert.Equal(t, Def(3), sum[1], "one defined operand defines the result")
	assert.False(t, sum[2].Defined)
	assert.Equal(t, Def(4), sum[3])

	diff := a.Sub(b)
	assert.Equal(t, Def(-1), diff[0])
	assert.Equal(t, Def(-3), diff[1])

	half := a.Div(2)
	assert.Equal(t, Def(0.5), half[0])
	assert.False(t, half[1].Defined)
}

func TestMappingAccumulatesDefinedTerms(t *testing.T) {
	m := Mapping{
		{Def(1), Def(1)},
		{{}, Def(2)},
		{Def(1), {}},
	}
	out := m.Apply(Vertex{Def(5), {}})
	assert.Equal(t, Def(5), out[0], "defined as soon as one term is")
	assert.False(t, out[1].Defined)
	assert.Equal(t, Def(5), out[2])

	id := Identity(3).Apply(NewVertex(1, 2, 3))
	assert.Equal(t, NewVertex(1, 2, 3), id)
}

func TestNewCanvasPadsBounds(t *testing.T) {
	c := NewCanvas([]Vertex{NewVertex(2.9, 1, 0), NewVertex(4.2, 3.7, 1)})
	minX, minY, maxX, maxY := c.Bounds()
	assert.Equal(t, []int{1, 0, 5, 4}, []int{minX, minY, maxX, maxY})
}

func TestPutPixelExtrema(t *testing.T) {
	c := NewCanvas([]Vertex{NewVertex(0, 0, 0), NewVertex(3, 3, 0)})
	c.PutPixel(NewVertex(1.2, 1.9, 5, 0))

	c.PutPixel(NewVertex(1.7, 1.1, 7, 1))
	front, _ := c.Front(1, 1)
	back, _ := c.Back(1, 1)
	assert.Equal(t, 5.0, front.Z())
	assert.Equal(t, 7.0, back.Z())

	c.PutPixel(NewVertex(1, 1, 3, 2))
	front, _ = c.Front(1, 1)
	back, _ = c.Back(1, 1)
	assert.Equal(t, 3.0, front.Z())
	assert.Equal(t, 7.0, back.Z())

	// equal depth changes neither extremum
	c.PutPixel(NewVertex(1, 1, 3, 9))
	c.PutPixel(NewVertex(1, 1, 7, 9))
	front, _ = c.Front(1, 1)
	back, _ = c.Back(1, 1)
	assert.Equal(t, 2.0, front.Value(3))
	assert.Equal(t, 1.0, back.Value(3))
}

func TestPutPixelTruncatesAndDrops(t *testing.T) {
	c := NewCanvas([]Vertex{NewVertex(0, 0, 0), NewVertex(2, 2, 0)})
	c.PutPixel(NewVertex(0.99, 0.99, 1))
	_, ok := c.Front(0, 0)
	assert.True(t, ok)

	c.PutPixel(NewVertex(50, 50, 1))
	c.PutPixel(NewVertex(-5, 0, 1))
	assert.Equal(t, 1, c.Columns())
}

func TestExpandClosesGaps(t *testing.T) {
	c := NewCanvas([]Vertex{NewVertex(0, 0, 0), NewVertex(1, 0, 0)})
	c.PutPixel(NewVertex(0, 0, 0))
	c.PutPixel(NewVertex(1, 0, 5))
	c.Expand()

	front, ok := c.Front(1, 0)
	require.True(t, ok)
	assert.Equal(t, 0.0, front.Z())
	assert.Equal(t, 1.0, front.X(), "copied sample moves to its new column")
	back, _ := c.Back(1, 0)
	assert.Equal(t, 5.0, back.Z())

	// the first column keeps its own extrema
	back, _ = c.Back(0, 0)
	assert.Equal(t, 0.0, back.Z())

	// empty neighbours stay empty
	_, ok = c.Front(0, 1)
	assert.False(t, ok)

	// a second call is a no-op
	c.PutPixel(NewVertex(1, 0, -3))
	c.Expand()
	front, _ = c.Front(1, 0)
	assert.Equal(t, -3.0, front.Z())
}

func TestDrawLineStepsAlongAxis(t *testing.T) {
	r := world.NewRecorder(0)
	err := DrawLine(testTarget(r), nil, rgb(2, 1, 0, 255, 0, 0), rgb(2, 1, 5, 255, 0, 0))
	require.NoError(t, err)

	log := r.Placements()
	require.Len(t, log, 6)
	for i, p := range log {
		assert.Equal(t, math3d.I3(2, 1, -i), p.Pos)
		assert.Equal(t, "red", p.Block.ID)
	}
}

func TestDrawLineSinglePoint(t *testing.T) {
	r := world.NewRecorder(0)
	require.NoError(t, DrawLine(testTarget(r), nil, rgb(0, 0, 0, 0, 0, 255), rgb(0.2, 0, 0.3, 0, 0, 255)))
	assert.Equal(t, 1, r.Changes())
}

func TestDrawLineColorResolution(t *testing.T) {
	tex := texture.New(2, 1, true)
	tex.SetPixel(0, 0, color.RGBA{0, 0, 250, 255})
	tex.SetPixel(1, 0, color.RGBA{0, 0, 0, 0})

	textured := func(x, u float64) Vertex {
		v := rgb(x, 0, 0, 255, 0, 0)
		v[ChanU], v[ChanV] = Def(u), Def(0)
		return v
	}

	tests := []struct {
		name  string
		tex   *texture.Image
		v     Vertex
		want  string
		empty bool
	}{
		{"texture wins over rgb", tex, textured(0, 0.25), "blue", false},
		{"texture wraps", tex, textured(0, 1.25), "blue", false},
		{"transparent texel skips", tex, textured(0, 0.75), "", true},
		{"rgb without texture", nil, textured(0, 0.25), "red", false},
		{"rgb out of range falls back", nil, rgb(0, 0, 0, 300, 0, 0), "stone", false},
		{"no color falls back", nil, NewVertex(0, 0, 0), "stone", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := world.NewRecorder(0)
			require.NoError(t, DrawLine(testTarget(r), tt.tex, tt.v, tt.v))
			if tt.empty {
				assert.Zero(t, r.Changes())
				return
			}
			b, ok := r.Block(math3d.I3(0, 0, 0))
			require.True(t, ok)
			assert.Equal(t, tt.want, b.ID)
		})
	}
}

func TestDrawLineStopsOnError(t *testing.T) {
	r := world.NewRecorder(3)
	err := DrawLine(testTarget(r), nil, rgb(0, 0, 0, 255, 0, 0), rgb(10, 0, 0, 255, 0, 0))
	require.ErrorIs(t, err, world.ErrMaxChanges)
	assert.Equal(t, 3, r.Changes())
}

func TestSampleTriangle(t *testing.T) {
	a, b, c := NewVertex(0, 0, 0), NewVertex(4, 0, 0), NewVertex(0, 4, 0)
	var pts []Vertex
	SampleTriangle(a, b, c, 0.5, func(v Vertex) { pts = append(pts, v) })

	// longest edge 4*sqrt(2) needs 12 steps
	assert.Len(t, pts, 13*14/2)
	assert.Contains(t, pts, a)
	assert.Contains(t, pts, c)
	for _, p := range pts {
		assert.GreaterOrEqual(t, p.X()+1e-9, 0.0)
		assert.LessOrEqual(t, p.X()+p.Y(), 4+1e-9)
	}
}

func TestRenderFillsColumns(t *testing.T) {
	pts := []Vertex{rgb(0, 0, 0, 255, 0, 0), rgb(0, 0, 3, 255, 0, 0), rgb(1, 0, 5, 255, 0, 0)}
	c := NewCanvas(pts)
	for _, p := range pts {
		c.PutPixel(p)
	}

	r := world.NewRecorder(0)
	require.NoError(t, c.Render(testTarget(r), nil, Identity(OutputChannels)))
	// column 0 spans z 0..3; expansion widens column 1 from z 5 to z 3..5
	assert.Equal(t, 7, r.Len())
	for z := 3; z <= 5; z++ {
		_, ok := r.Block(math3d.I3(1, 0, -z))
		assert.True(t, ok, "z=%d", z)
	}
	_, ok := r.Block(math3d.I3(1, 0, -2))
	assert.False(t, ok)
}

func TestDrawMeshQuad(t *testing.T) {
	mesh := models.NewMesh("quad")
	for _, p := range []math3d.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}} {
		mesh.Vertices = append(mesh.Vertices, models.MeshVertex{Position: p})
	}
	mesh.Materials = []models.Material{{Name: "red", BaseColor: [4]float64{1, 0, 0, 1}}}
	mesh.Faces = []models.Face{
		{V: [3]int{0, 1, 2}, Material: 0},
		{V: [3]int{0, 2, 3}, Material: 0},
	}
	mesh.CalculateBounds()

	scale, ext := Fit(mesh, 4)
	assert.Equal(t, 3.0, scale)
	assert.Equal(t, math3d.I3(4, 4, 1), ext)

	r := world.NewRecorder(0)
	require.NoError(t, DrawMesh(testTarget(r), mesh, 4))
	assert.Equal(t, 16, r.Len())
	for x := range 4 {
		for y := range 4 {
			b, ok := r.Block(math3d.I3(x, y, 0))
			require.True(t, ok, "%d,%d", x, y)
			assert.Equal(t, "red", b.ID)
		}
	}
}

func TestDrawMeshEmpty(t *testing.T) {
	r := world.NewRecorder(0)
	require.NoError(t, DrawMesh(testTarget(r), models.NewMesh("empty"), 8))
	require.NoError(t, DrawMesh(testTarget(r), nil, 8))
	assert.Zero(t, r.Changes())
}
