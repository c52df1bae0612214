// Package geometry builds textured boxes out of six rectangular faces and
// scan-fills them into blocks.
package geometry

import (
	"fmt"

	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
	"github.com/SBPrime/MCPainter-sub001/pkg/texture"
)

// FaceKind names one side of a box, as seen by a viewer standing in front
// of it.
type FaceKind int

const (
	Front FaceKind = iota
	Back
	Left
	Right
	Top
	Bottom
)

// FaceKinds lists every kind in slot order.
var FaceKinds = [6]FaceKind{Front, Back, Left, Right, Top, Bottom}

func (k FaceKind) String() string {
	switch k {
	case Front:
		return "front"
	case Back:
		return "back"
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	}
	return fmt.Sprintf("FaceKind(%d)", int(k))
}

// ParseFaceKind parses a face name.
func ParseFaceKind(s string) (FaceKind, error) {
	for _, k := range FaceKinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown face %q", s)
}

// Crop limits drawing to the inclusive index range [From, To] of face
// columns or rows.
type Crop struct {
	From, To int
}

func (c *Crop) allows(i int) bool {
	return c == nil || (i >= c.From && i <= c.To)
}

// Face is a rectangle of texture mapped onto one side of a box. Corners are
// in texture pixel coordinates.
type Face struct {
	TL, TR, BR, BL math3d.Vec2

	Texture   *texture.Image
	TextureID int

	// HCrop and VCrop restrict the drawn columns and rows.
	HCrop, VCrop *Crop

	// Depth is the number of layers painted inward; zero means one.
	Depth int
	// Delta shifts every sample in texture space.
	Delta     math3d.Vec2
	Grayscale bool
}

// NewFace builds a face over the pixel rectangle (u1, v1)-(u2, v2), both
// corners inclusive. Swapping u1 and u2 mirrors the face.
func NewFace(u1, v1, u2, v2 float64, tex *texture.Image) *Face {
	return &Face{
		TL:      math3d.V2(u1, v1),
		TR:      math3d.V2(u2, v1),
		BR:      math3d.V2(u2, v2),
		BL:      math3d.V2(u1, v2),
		Texture: tex,
	}
}

// FlatFace centres a width×height window in a texture of resolution res.
func FlatFace(res, width, height int, tex *texture.Image) *Face {
	u1 := (res - width) / 2
	v1 := (res - height) / 2
	return NewFace(float64(u1), float64(v1), float64(u1+width-1), float64(v1+height-1), tex)
}

// Clone returns a copy that can be changed without touching f.
func (f *Face) Clone() *Face {
	c := *f
	if f.HCrop != nil {
		h := *f.HCrop
		c.HCrop = &h
	}
	if f.VCrop != nil {
		v := *f.VCrop
		c.VCrop = &v
	}
	return &c
}

// Rotate turns the texture a quarter turn clockwise on the face.
func (f *Face) Rotate() {
	f.TL, f.TR, f.BR, f.BL = f.BL, f.TL, f.TR, f.BR
}

// Valid reports whether the face has something to sample.
func (f *Face) Valid() bool {
	return f != nil && f.Texture.Valid()
}

// UV returns the texture coordinate at fractions (s, t) across and down the
// face.
func (f *Face) UV(s, t float64) math3d.Vec2 {
	top := f.TL.Lerp(f.TR, s)
	bottom := f.BL.Lerp(f.BR, s)
	return top.Lerp(bottom, t).Add(f.Delta)
}

// InitializeFaces stores face in the slot of kind.
func InitializeFaces(faces *[6]*Face, kind FaceKind, face *Face) {
	faces[kind] = face
}

// Layout returns how a face of kind spans a box of the given size: the
// number of columns and rows it covers and how many layers deep the box is
// behind it.
func Layout(kind FaceKind, size math3d.IVec3) (cols, rows, depth int) {
	switch kind {
	case Left, Right:
		return size.Z, size.Y, size.X
	case Top, Bottom:
		return size.X, size.Z, size.Y
	default:
		return size.X, size.Y, size.Z
	}
}

// plane places face columns, rows and layers inside a box. Column i, row j,
// layer k sits at origin + i*u + j*v + k*in.
type plane struct {
	origin, u, v, in math3d.IVec3
}

func planeFor(kind FaceKind, size math3d.IVec3) plane {
	sx, sy, sz := size.X-1, size.Y-1, size.Z-1
	switch kind {
	case Back:
		return plane{math3d.I3(sx, sy, sz), math3d.I3(-1, 0, 0), math3d.I3(0, -1, 0), math3d.I3(0, 0, -1)}
	case Left:
		return plane{math3d.I3(0, sy, sz), math3d.I3(0, 0, -1), math3d.I3(0, -1, 0), math3d.I3(1, 0, 0)}
	case Right:
		return plane{math3d.I3(sx, sy, 0), math3d.I3(0, 0, 1), math3d.I3(0, -1, 0), math3d.I3(-1, 0, 0)}
	case Top:
		return plane{math3d.I3(0, sy, sz), math3d.I3(1, 0, 0), math3d.I3(0, 0, -1), math3d.I3(0, -1, 0)}
	case Bottom:
		return plane{math3d.I3(0, 0, 0), math3d.I3(1, 0, 0), math3d.I3(0, 0, 1), math3d.I3(0, 1, 0)}
	default:
		return plane{math3d.I3(0, sy, 0), math3d.I3(1, 0, 0), math3d.I3(0, -1, 0), math3d.I3(0, 0, 1)}
	}
}

func (p plane) at(i, j, k int) math3d.IVec3 {
	return math3d.I3(
		p.origin.X+i*p.u.X+j*p.v.X+k*p.in.X,
		p.origin.Y+i*p.u.Y+j*p.v.Y+k*p.in.Y,
		p.origin.Z+i*p.u.Z+j*p.v.Z+k*p.in.Z,
	)
}

// fraction is the position of index i across n samples; a single sample
// sits in the middle.
func fraction(i, n int) float64 {
	if n <= 1 {
		return 0.5
	}
	return float64(i) / float64(n-1)
}
