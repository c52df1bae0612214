package render

import (
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
	"github.com/SBPrime/MCPainter-sub001/pkg/palette"
)

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

// createTestRasterizer looks at the origin from (0, 0, 10).
func createTestRasterizer(width, height int) (*Rasterizer, *Framebuffer) {
	fb := NewFramebuffer(width, height)
	camera := NewCamera()
	camera.SetPosition(math3d.V3(0, 0, 10))
	camera.LookAt(math3d.Zero3())
	camera.SetAspectRatio(float64(width) / float64(height))
	return NewRasterizer(camera, fb), fb
}

func near(a, b math3d.Vec3) bool {
	return a.Sub(b).Len() < 1e-9
}

func TestBarycentric(t *testing.T) {
	tests := []struct {
		name     string
		px, py   float64
		expected math3d.Vec3
	}{
		{"vertex 0", 0, 0, math3d.V3(1, 0, 0)},
		{"vertex 1", 1, 0, math3d.V3(0, 1, 0)},
		{"vertex 2", 0, 1, math3d.V3(0, 0, 1)},
		{"centroid", 1.0 / 3, 1.0 / 3, math3d.V3(1.0/3, 1.0/3, 1.0/3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bc := barycentric(0, 0, 1, 0, 0, 1, tc.px, tc.py)
			if !near(bc, tc.expected) {
				t.Errorf("barycentric(%v, %v) = %v, want %v", tc.px, tc.py, bc, tc.expected)
			}
		})
	}

	t.Run("outside triangle", func(t *testing.T) {
		bc := barycentric(0, 0, 1, 0, 0, 1, -1, -1)
		if bc.X >= 0 && bc.Y >= 0 && bc.Z >= 0 {
			t.Error("point outside triangle should have negative barycentric coordinate")
		}
	})
}

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 2)
	fb.Clear(blue)
	fb.SetPixel(3, 1, red)
	fb.SetPixel(4, 0, red)
	fb.SetPixel(-1, 0, red)

	if got := fb.GetPixel(3, 1); got != red {
		t.Errorf("GetPixel(3, 1) = %v, want red", got)
	}
	if got := fb.GetPixel(0, 0); got != blue {
		t.Errorf("GetPixel(0, 0) = %v, want blue", got)
	}
	if got := fb.GetPixel(4, 0); got != (color.RGBA{}) {
		t.Errorf("out of bounds pixel = %v, want transparent", got)
	}
}

func TestWorldToScreen(t *testing.T) {
	_, fb := createTestRasterizer(100, 100)
	camera := NewCamera()
	camera.SetPosition(math3d.V3(0, 0, 10))
	camera.LookAt(math3d.Zero3())

	x, y, _, ok := camera.WorldToScreen(math3d.Zero3(), fb.Width, fb.Height)
	if !ok || math.Abs(x-50) > 1e-9 || math.Abs(y-50) > 1e-9 {
		t.Errorf("origin projects to (%v, %v, %v), want centre", x, y, ok)
	}

	x, y, _, ok = camera.WorldToScreen(math3d.V3(1, 1, 0), fb.Width, fb.Height)
	if !ok || x <= 50 || y >= 50 {
		t.Errorf("up-right point projects to (%v, %v), want right of and above centre", x, y)
	}

	if _, _, _, ok := camera.WorldToScreen(math3d.V3(0, 0, 20), fb.Width, fb.Height); ok {
		t.Error("point behind the camera should not be visible")
	}
}

func TestOrbit(t *testing.T) {
	camera := NewCamera()
	center := math3d.V3(1, 2, 3)

	camera.Orbit(center, 5, 0, 0)
	if !near(camera.Position, math3d.V3(1, 2, 8)) {
		t.Errorf("position = %v", camera.Position)
	}
	if !near(camera.Forward(), math3d.V3(0, 0, -1)) {
		t.Errorf("forward = %v", camera.Forward())
	}

	camera.Orbit(center, 5, math.Pi/2, 0)
	if !near(camera.Position, math3d.V3(6, 2, 3)) {
		t.Errorf("position = %v", camera.Position)
	}
	if !near(camera.Forward(), math3d.V3(-1, 0, 0)) {
		t.Errorf("forward = %v", camera.Forward())
	}
}

func TestDepthTest(t *testing.T) {
	front := [3]math3d.Vec3{{X: -5, Y: -5}, {X: 5, Y: -5}, {Y: 5}}
	back := [3]math3d.Vec3{{X: -8, Y: -8, Z: -2}, {X: 8, Y: -8, Z: -2}, {Y: 8, Z: -2}}

	for _, order := range []string{"front first", "back first"} {
		t.Run(order, func(t *testing.T) {
			r, fb := createTestRasterizer(100, 100)
			if order == "front first" {
				r.DrawTriangle(front[0], front[1], front[2], red)
				r.DrawTriangle(back[0], back[1], back[2], blue)
			} else {
				r.DrawTriangle(back[0], back[1], back[2], blue)
				r.DrawTriangle(front[0], front[1], front[2], red)
			}
			if got := fb.GetPixel(50, 50); got != red {
				t.Errorf("centre = %v, want the nearer red triangle", got)
			}
			if got := fb.GetPixel(50, 95); got != blue {
				t.Errorf("bottom = %v, want the wider blue triangle", got)
			}
		})
	}
}

func TestDegenerateTriangle(t *testing.T) {
	r, fb := createTestRasterizer(20, 20)
	r.DrawTriangle(math3d.Zero3(), math3d.V3(1, 1, 0), math3d.V3(2, 2, 0), red)
	for i, c := range fb.Pixels {
		if c != (color.RGBA{}) {
			t.Fatalf("pixel %d drawn for a zero-area triangle", i)
		}
	}
}

func TestSceneExposedFaces(t *testing.T) {
	block := palette.DrawingBlock{ID: "red", Color: red}
	tests := []struct {
		name   string
		blocks []math3d.IVec3
		faces  int
	}{
		{"empty", nil, 0},
		{"single", []math3d.IVec3{{}}, 6},
		{"pair", []math3d.IVec3{{}, {X: 1}}, 10},
		{"gap", []math3d.IVec3{{}, {X: 2}}, 12},
	}
	var cube []math3d.IVec3
	for x := range 3 {
		for y := range 3 {
			for z := range 3 {
				cube = append(cube, math3d.I3(x, y, z))
			}
		}
	}
	tests = append(tests, struct {
		name   string
		blocks []math3d.IVec3
		faces  int
	}{"solid 3x3x3", cube, 54})

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := map[math3d.IVec3]palette.DrawingBlock{}
			for _, p := range tc.blocks {
				m[p] = block
			}
			s := NewScene(m)
			if s.Faces() != tc.faces {
				t.Errorf("Faces() = %d, want %d", s.Faces(), tc.faces)
			}
			if s.Blocks() != len(tc.blocks) {
				t.Errorf("Blocks() = %d, want %d", s.Blocks(), len(tc.blocks))
			}
		})
	}
}

func TestSceneBounds(t *testing.T) {
	s := NewScene(map[math3d.IVec3]palette.DrawingBlock{
		math3d.I3(0, 0, 0): {Color: red},
		math3d.I3(1, 3, 0): {Color: red},
	})
	if !near(s.Center(), math3d.V3(1, 2, 0.5)) {
		t.Errorf("Center() = %v", s.Center())
	}
	if want := math3d.V3(2, 4, 1).Len() / 2; math.Abs(s.Radius()-want) > 1e-9 {
		t.Errorf("Radius() = %v, want %v", s.Radius(), want)
	}
}

func TestPreviewSingleBlock(t *testing.T) {
	p := NewPreview(40, 40)
	p.SetScene(NewScene(map[math3d.IVec3]palette.DrawingBlock{{}: {ID: "red", Color: red}}))
	fb := p.Render(0, 0)

	c := fb.GetPixel(20, 20)
	if c.R == 0 || c.G != 0 || c.B != 0 {
		t.Errorf("centre = %v, want shaded red", c)
	}
	if got := fb.GetPixel(0, 0); got != p.Background {
		t.Errorf("corner = %v, want background", got)
	}
}

func TestPreviewFromAbove(t *testing.T) {
	p := NewPreview(40, 40)
	p.SetScene(NewScene(map[math3d.IVec3]palette.DrawingBlock{
		{}:     {ID: "blue", Color: blue},
		{Y: 1}: {ID: "red", Color: red},
	}))
	c := p.Render(0, 1.2).GetPixel(20, 20)
	if c.R == 0 || c.B != 0 {
		t.Errorf("centre = %v, want the red top", c)
	}
}

func TestPreviewUnknownColor(t *testing.T) {
	p := NewPreview(20, 20)
	p.SetScene(NewScene(map[math3d.IVec3]palette.DrawingBlock{{}: {ID: "stone"}}))
	c := p.Render(0, 0).GetPixel(10, 10)
	if c.R == 0 || c.R != c.G || c.G != c.B {
		t.Errorf("centre = %v, want gray", c)
	}
}

func TestPreviewEmpty(t *testing.T) {
	p := NewPreview(8, 8)
	fb := p.Render(0, 0)
	for i, c := range fb.Pixels {
		if c != p.Background {
			t.Fatalf("pixel %d = %v, want background", i, c)
		}
	}
	p.SetScene(NewScene(nil))
	p.Render(1, 1)
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Clear(blue)
	fb.SetPixel(1, 1, red)

	path := filepath.Join(t.TempDir(), "preview.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v", b)
	}
	if r, g, b, _ := img.At(1, 1).RGBA(); r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("pixel (1, 1) = %v, want red", img.At(1, 1))
	}

	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "x.png")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func BenchmarkPreviewRender(b *testing.B) {
	m := map[math3d.IVec3]palette.DrawingBlock{}
	for x := range 16 {
		for y := range 16 {
			m[math3d.I3(x, y, 0)] = palette.DrawingBlock{Color: red}
		}
	}
	p := NewPreview(120, 80)
	p.SetScene(NewScene(m))
	for b.Loop() {
		p.Render(0.5, 0.3)
	}
}
