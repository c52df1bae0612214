// Package statue assembles composite structures out of textured boxes: each
// part is a box with its own texture regions, placed relative to the statue
// origin in the viewer's orientation.
package statue

import (
	"fmt"

	"github.com/SBPrime/MCPainter-sub001/pkg/geometry"
	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
	"github.com/SBPrime/MCPainter-sub001/pkg/orientation"
	"github.com/SBPrime/MCPainter-sub001/pkg/texture"
	"github.com/SBPrime/MCPainter-sub001/pkg/world"
)

// Block is one box of a statue in unrotated local space.
type Block struct {
	Offset   math3d.IVec3
	Size     math3d.IVec3
	Diagonal bool
	Remap    *orientation.Matrix
}

// FaceSpec maps a texture region onto one face of a block. U, V, Width,
// Height and Delta are in pixels at the statue's declared resolution.
type FaceSpec struct {
	Face    geometry.FaceKind
	Texture int
	U, V    int
	Width   int
	Height  int
	Rotate  bool

	Depth        int
	HCrop, VCrop *geometry.Crop
	Delta        math3d.Vec2
	Grayscale    bool
}

// Part is a block with its faces.
type Part struct {
	Name  string
	Block Block
	Faces []FaceSpec
}

// Description is a complete statue.
type Description struct {
	Name string
	// Resolution is the texture width the face regions are written for.
	Resolution int
	Parts      []Part
}

// Extent returns the size the block covers once its remap is applied.
func (b Block) Extent() math3d.IVec3 {
	if b.Remap == nil {
		return b.Size
	}
	return b.Remap.Extent(b.Size)
}

// Size returns the local extent covering every part.
func (d *Description) Size() math3d.IVec3 {
	var size math3d.IVec3
	for _, p := range d.Parts {
		end := p.Block.Offset.Add(p.Block.Extent())
		size = math3d.I3(max(size.X, end.X), max(size.Y, end.Y), max(size.Z, end.Z))
	}
	return size
}

// Piece is an assembled part: a textured cube and where it starts, relative
// to the statue origin in world axes.
type Piece struct {
	Name   string
	Offset math3d.IVec3
	Cube   *geometry.Cube
}

// Assemble builds the pieces of a statue for one orientation. Faces whose
// texture index is out of range, or whose region is empty, are left out.
func Assemble(desc *Description, textures []*texture.Image, o orientation.Orientation) []Piece {
	pieces := make([]Piece, 0, len(desc.Parts))
	for _, part := range desc.Parts {
		cube := geometry.NewCube(part.Block.Size)
		cube.Diagonal = part.Block.Diagonal
		cube.Remap = part.Block.Remap

		for _, fs := range part.Faces {
			if f := buildFace(desc, textures, fs); f != nil {
				cube.SetFace(fs.Face, f)
			}
		}
		pieces = append(pieces, Piece{
			Name:   part.Name,
			Offset: o.Calc(part.Block.Offset),
			Cube:   cube,
		})
	}
	return pieces
}

func buildFace(desc *Description, textures []*texture.Image, fs FaceSpec) *geometry.Face {
	if fs.Texture < 0 || fs.Texture >= len(textures) || fs.Width <= 0 || fs.Height <= 0 {
		return nil
	}
	tex := textures[fs.Texture]
	if !tex.Valid() {
		return nil
	}

	scale := 1.0
	if desc.Resolution > 0 {
		scale = float64(tex.Width) / float64(desc.Resolution)
	}
	u1 := float64(fs.U) * scale
	v1 := float64(fs.V) * scale
	u2 := float64(fs.U+fs.Width)*scale - 1
	v2 := float64(fs.V+fs.Height)*scale - 1

	f := geometry.NewFace(u1, v1, u2, v2, tex)
	f.TextureID = fs.Texture
	f.Depth = fs.Depth
	f.Delta = fs.Delta.Scale(scale)
	f.Grayscale = fs.Grayscale
	if fs.HCrop != nil {
		c := *fs.HCrop
		f.HCrop = &c
	}
	if fs.VCrop != nil {
		c := *fs.VCrop
		f.VCrop = &c
	}
	if fs.Rotate {
		f.Rotate()
	}
	return f
}

// Draw assembles a statue and draws every piece into t, starting at
// t.Frame.Origin. Drawing stops at the first placement error.
func Draw(desc *Description, textures []*texture.Image, t world.Target) error {
	for _, p := range Assemble(desc, textures, t.Frame.Orientation) {
		pt := t
		pt.Frame = world.Frame{
			Origin:      t.Frame.Origin.Add(p.Offset),
			Orientation: t.Frame.Orientation,
		}
		if err := p.Cube.Draw(pt); err != nil {
			return fmt.Errorf("statue %s part %s: %w", desc.Name, p.Name, err)
		}
	}
	return nil
}
