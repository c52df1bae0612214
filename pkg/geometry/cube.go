package geometry

import (
	"fmt"
	"image/color"
	"math"

	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
	"github.com/SBPrime/MCPainter-sub001/pkg/orientation"
	"github.com/SBPrime/MCPainter-sub001/pkg/texture"
	"github.com/SBPrime/MCPainter-sub001/pkg/world"
)

// Cube is a box of Size blocks in local space with up to six textured faces.
// A diagonal cube is drawn as two crossed planes instead of a shell.
type Cube struct {
	Size     math3d.IVec3
	Faces    [6]*Face
	Diagonal bool
	// Remap, when set, is applied to every local block position before it
	// is placed. It must be a signed permutation.
	Remap *orientation.Matrix
}

// NewCube creates an empty cube.
func NewCube(size math3d.IVec3) *Cube {
	return &Cube{Size: size}
}

// SetFace assigns a face.
func (c *Cube) SetFace(kind FaceKind, f *Face) {
	InitializeFaces(&c.Faces, kind, f)
}

// Face returns the face of kind, or nil.
func (c *Cube) Face(kind FaceKind) *Face {
	return c.Faces[kind]
}

// FaceCount returns the number of assigned faces.
func (c *Cube) FaceCount() int {
	n := 0
	for _, f := range c.Faces {
		if f != nil {
			n++
		}
	}
	return n
}

// Draw scan-fills every valid face into the target. Faces without a texture
// or without area are skipped. The first placement error stops the drawing.
func (c *Cube) Draw(t world.Target) error {
	if c.Size.X <= 0 || c.Size.Y <= 0 || c.Size.Z <= 0 {
		return nil
	}
	if c.Diagonal {
		return c.drawDiagonal(t)
	}
	for _, kind := range FaceKinds {
		f := c.Faces[kind]
		if !f.Valid() {
			continue
		}
		if err := c.drawFace(t, kind, f); err != nil {
			return fmt.Errorf("draw %s face: %w", kind, err)
		}
	}
	return nil
}

func (c *Cube) drawFace(t world.Target, kind FaceKind, f *Face) error {
	cols, rows, depth := Layout(kind, c.Size)
	layers := f.Depth
	if layers <= 0 {
		layers = 1
	}
	layers = min(layers, depth)
	p := planeFor(kind, c.Size)

	for k := range layers {
		for j := range rows {
			if !f.VCrop.allows(j) {
				continue
			}
			tv := fraction(j, rows)
			for i := range cols {
				if !f.HCrop.allows(i) {
					continue
				}
				col := sample(f, fraction(i, cols), tv)
				if err := t.PlaceColor(c.remap(p.at(i, j, k)), col); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// drawDiagonal draws the front face from the front-left to the back-right
// corner and the right face (or the front face again) across the other
// diagonal.
func (c *Cube) drawDiagonal(t world.Target) error {
	front := c.Faces[Front]
	if !front.Valid() {
		return nil
	}
	cross := c.Faces[Right]
	if !cross.Valid() {
		cross = front.Clone()
	}

	n := max(c.Size.X, c.Size.Z)
	diag := func(f *Face, anti bool) error {
		for j := range c.Size.Y {
			if !f.VCrop.allows(j) {
				continue
			}
			tv := fraction(j, c.Size.Y)
			for i := range n {
				if !f.HCrop.allows(i) {
					continue
				}
				s := fraction(i, n)
				x := spread(i, n, c.Size.X)
				z := spread(i, n, c.Size.Z)
				if anti {
					z = c.Size.Z - 1 - z
				}
				local := math3d.I3(x, c.Size.Y-1-j, z)
				if err := t.PlaceColor(c.remap(local), sample(f, s, tv)); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := diag(front, false); err != nil {
		return fmt.Errorf("draw diagonal: %w", err)
	}
	if err := diag(cross, true); err != nil {
		return fmt.Errorf("draw anti-diagonal: %w", err)
	}
	return nil
}

// spread maps index i of n onto [0, size).
func spread(i, n, size int) int {
	if n <= 1 || size <= 1 {
		return 0
	}
	return int(math.Round(float64(i) * float64(size-1) / float64(n-1)))
}

// remap applies Remap and moves the result back into the remapped box, so
// the cube starts at the local origin whatever the signs of the matrix.
func (c *Cube) remap(p math3d.IVec3) math3d.IVec3 {
	if c.Remap == nil {
		return p
	}
	return c.Remap.Apply(p).Add(c.Remap.Shift(c.Size))
}

// sample reads the texel under face fractions (s, t). Coordinates address
// texel centres so that exact pixel corners do not fall between texels.
func sample(f *Face, s, t float64) color.RGBA {
	uv := f.UV(s, t)
	c := f.Texture.GetColor(uv.X+0.5, uv.Y+0.5)
	if f.Grayscale {
		c = texture.Gray(c)
	}
	return c
}
