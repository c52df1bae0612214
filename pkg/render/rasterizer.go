package render

import (
	"image/color"
	"math"

	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
)

// Rasterizer fills flat-colored triangles into a framebuffer with a depth
// test.
type Rasterizer struct {
	camera  *Camera
	fb      *Framebuffer
	zbuffer []float64 // row-major, NDC depth
}

// NewRasterizer creates a rasterizer drawing through camera into fb.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{camera: camera, fb: fb}
	r.Resize()
	return r
}

// Resize matches the depth buffer to the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
	r.ClearDepth()
}

// ClearDepth resets the depth buffer; call it before each frame.
func (r *Rasterizer) ClearDepth() {
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

func (r *Rasterizer) depthAt(x, y int) float64 {
	return r.zbuffer[y*r.fb.Width+x]
}

func (r *Rasterizer) setDepth(x, y int, z float64) {
	r.zbuffer[y*r.fb.Width+x] = z
}

type screenVertex struct {
	X, Y, Z, W float64
}

func (r *Rasterizer) project(viewProj math3d.Mat4, p math3d.Vec3) screenVertex {
	ndc, w := viewProj.Project(p)
	return screenVertex{
		X: (ndc.X + 1) * 0.5 * float64(r.fb.Width),
		Y: (1 - ndc.Y) * 0.5 * float64(r.fb.Height),
		Z: ndc.Z,
		W: w,
	}
}

// DrawTriangle fills a triangle with c. Both windings are drawn; triangles
// reaching behind the camera are skipped.
func (r *Rasterizer) DrawTriangle(v0, v1, v2 math3d.Vec3, c color.RGBA) {
	if r.fb == nil || len(r.zbuffer) == 0 {
		return
	}
	viewProj := r.camera.ViewProjectionMatrix()
	sv := [3]screenVertex{
		r.project(viewProj, v0),
		r.project(viewProj, v1),
		r.project(viewProj, v2),
	}
	for _, v := range sv {
		if v.W <= 0 {
			return
		}
	}

	area := (sv[1].X-sv[0].X)*(sv[2].Y-sv[0].Y) - (sv[1].Y-sv[0].Y)*(sv[2].X-sv[0].X)
	if math.Abs(area) < 1e-9 {
		return
	}

	minX := int(math.Max(0, math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(r.fb.Width-1), math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(r.fb.Height-1), math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			bc := barycentric(
				sv[0].X, sv[0].Y,
				sv[1].X, sv[1].Y,
				sv[2].X, sv[2].Y,
				float64(x)+0.5, float64(y)+0.5,
			)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}
			z := bc.X*sv[0].Z + bc.Y*sv[1].Z + bc.Z*sv[2].Z
			if z >= r.depthAt(x, y) {
				continue
			}
			r.setDepth(x, y, z)
			r.fb.SetPixel(x, y, c)
		}
	}
}

// DrawQuad fills the quad v0 v1 v2 v3 as two triangles.
func (r *Rasterizer) DrawQuad(v [4]math3d.Vec3, c color.RGBA) {
	r.DrawTriangle(v[0], v[1], v[2], c)
	r.DrawTriangle(v[0], v[2], v[3], c)
}

// barycentric calculates barycentric coordinates for point (px, py) in triangle.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	v0x, v0y := x2-x0, y2-y0
	v1x, v1y := x1-x0, y1-y0
	v2x, v2y := px-x0, py-y0

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	invDenom := 1.0 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return math3d.V3(1-u-v, v, u)
}

// shade scales c by a lambert term with 30% ambient light.
func shade(c color.RGBA, normal, lightDir math3d.Vec3) color.RGBA {
	intensity := 0.3 + 0.7*math.Max(0, normal.Dot(lightDir))
	return color.RGBA{
		R: uint8(float64(c.R) * intensity),
		G: uint8(float64(c.G) * intensity),
		B: uint8(float64(c.B) * intensity),
		A: 255,
	}
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
