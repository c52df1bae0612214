package render

import (
	"cmp"
	"image/color"
	"math"
	"slices"

	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
	"github.com/SBPrime/MCPainter-sub001/pkg/palette"
)

// unknownColor stands in for blocks without a known color.
var unknownColor = color.RGBA{128, 128, 128, 255}

// blockSides are the six unit-cube sides: outward normal and corners in
// cycle order.
var blockSides = [6]struct {
	normal  math3d.IVec3
	corners [4]math3d.Vec3
}{
	{math3d.I3(1, 0, 0), [4]math3d.Vec3{{X: 1}, {X: 1, Y: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Z: 1}}},
	{math3d.I3(-1, 0, 0), [4]math3d.Vec3{{}, {Z: 1}, {Y: 1, Z: 1}, {Y: 1}}},
	{math3d.I3(0, 1, 0), [4]math3d.Vec3{{Y: 1}, {Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1}}},
	{math3d.I3(0, -1, 0), [4]math3d.Vec3{{}, {X: 1}, {X: 1, Z: 1}, {Z: 1}}},
	{math3d.I3(0, 0, 1), [4]math3d.Vec3{{Z: 1}, {X: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {Y: 1, Z: 1}}},
	{math3d.I3(0, 0, -1), [4]math3d.Vec3{{}, {Y: 1}, {X: 1, Y: 1}, {X: 1}}},
}

type quad struct {
	corners [4]math3d.Vec3
	center  math3d.Vec3
	normal  math3d.Vec3
	color   color.RGBA
}

// Scene holds the exposed sides of a set of blocks. A block at p fills the
// unit cube [p, p+1].
type Scene struct {
	quads  []quad
	blocks int
	lo, hi math3d.Vec3
}

// NewScene collects every block side whose neighbour is empty.
func NewScene(blocks map[math3d.IVec3]palette.DrawingBlock) *Scene {
	s := &Scene{blocks: len(blocks)}

	keys := make([]math3d.IVec3, 0, len(blocks))
	for p := range blocks {
		keys = append(keys, p)
	}
	slices.SortFunc(keys, func(a, b math3d.IVec3) int {
		return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X), cmp.Compare(a.Z, b.Z))
	})

	for i, p := range keys {
		base := p.Vec3()
		if i == 0 {
			s.lo, s.hi = base, base.Add(math3d.V3(1, 1, 1))
		}
		s.lo = s.lo.Min(base)
		s.hi = s.hi.Max(base.Add(math3d.V3(1, 1, 1)))

		c := blocks[p].Color
		if c.A == 0 {
			c = unknownColor
		}
		for _, side := range blockSides {
			if _, hidden := blocks[p.Add(side.normal)]; hidden {
				continue
			}
			q := quad{normal: side.normal.Vec3(), color: c}
			for k, corner := range side.corners {
				q.corners[k] = base.Add(corner)
			}
			q.center = base.Add(math3d.V3(0.5, 0.5, 0.5)).Add(q.normal.Scale(0.5))
			s.quads = append(s.quads, q)
		}
	}
	return s
}

// Blocks returns the number of blocks in the scene.
func (s *Scene) Blocks() int { return s.blocks }

// Faces returns the number of exposed block sides.
func (s *Scene) Faces() int { return len(s.quads) }

// Center returns the middle of the scene's bounding box.
func (s *Scene) Center() math3d.Vec3 {
	return s.lo.Add(s.hi).Scale(0.5)
}

// Radius returns the radius of the sphere around Center enclosing the scene.
func (s *Scene) Radius() float64 {
	return s.hi.Sub(s.lo).Len() / 2
}

// Draw renders the sides that face the camera.
func (s *Scene) Draw(r *Rasterizer, lightDir math3d.Vec3) {
	light := lightDir.Normalize()
	eye := r.camera.Position
	for _, q := range s.quads {
		if q.normal.Dot(eye.Sub(q.center)) <= 0 {
			continue
		}
		r.DrawQuad(q.corners, shade(q.color, q.normal, light))
	}
}

// Preview renders a scene from a camera orbiting its centre.
type Preview struct {
	Camera     *Camera
	FB         *Framebuffer
	Background color.RGBA
	Light      math3d.Vec3

	raster *Rasterizer
	scene  *Scene
}

// NewPreview creates a width×height preview with a sky background.
func NewPreview(width, height int) *Preview {
	p := &Preview{
		Camera:     NewCamera(),
		Background: color.RGBA{135, 206, 235, 255},
		Light:      math3d.V3(0.4, 1, 0.7),
	}
	p.Resize(width, height)
	return p
}

// Resize changes the framebuffer size.
func (p *Preview) Resize(width, height int) {
	p.FB = NewFramebuffer(width, height)
	p.raster = NewRasterizer(p.Camera, p.FB)
	if height > 0 {
		p.Camera.SetAspectRatio(float64(width) / float64(height))
	}
}

// SetScene replaces what is shown.
func (p *Preview) SetScene(s *Scene) {
	p.scene = s
}

// Render draws the scene seen from heading yaw and elevation pitch, both in
// radians, at a distance that fits the whole scene.
func (p *Preview) Render(yaw, pitch float64) *Framebuffer {
	p.FB.Clear(p.Background)
	p.raster.ClearDepth()
	if p.scene == nil || p.scene.Faces() == 0 {
		return p.FB
	}

	radius := max(p.scene.Radius(), 0.5)
	fov := p.Camera.FOV
	if p.Camera.AspectRatio < 1 {
		fov = 2 * math.Atan(math.Tan(fov/2)*p.Camera.AspectRatio)
	}
	distance := radius / math.Sin(fov/2) * 1.1
	p.Camera.SetClipPlanes(0.1, distance+2*radius+1)
	p.Camera.Orbit(p.scene.Center(), distance, yaw, pitch)

	p.scene.Draw(p.raster, p.Light)
	return p.FB
}
