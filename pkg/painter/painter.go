// Package painter is the entry point of every drawing operation: it places
// the drawing in front of the actor, resolves colors through the color map
// and streams the blocks into a world.Placer.
package painter

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"math"
	"slices"

	"golang.org/x/image/draw"

	"github.com/SBPrime/MCPainter-sub001/pkg/geometry"
	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
	"github.com/SBPrime/MCPainter-sub001/pkg/models"
	"github.com/SBPrime/MCPainter-sub001/pkg/palette"
	"github.com/SBPrime/MCPainter-sub001/pkg/statue"
	"github.com/SBPrime/MCPainter-sub001/pkg/texture"
	"github.com/SBPrime/MCPainter-sub001/pkg/voxel"
	"github.com/SBPrime/MCPainter-sub001/pkg/world"
)

// ErrNoTexture is returned when an operation gets no usable texture.
var ErrNoTexture = errors.New("no usable texture")

// Request describes who draws and where the result goes.
type Request struct {
	// Position is the actor's location; the drawing is placed in front of it.
	Position math3d.Vec3
	Yaw      float64
	Pitch    float64
	Placer   world.Placer
}

// Painter runs drawing operations. It holds no per-request state and may be
// shared; each Placer must only be used by one operation at a time.
type Painter struct {
	colors *palette.ColorMap
	logger *log.Logger

	// Dither enables error diffusion for images.
	Dither bool
}

// New creates a painter. A nil logger discards output.
func New(colors *palette.ColorMap, logger *log.Logger) *Painter {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Painter{colors: colors, logger: logger}
}

// Colors returns the color map in use.
func (p *Painter) Colors() *palette.ColorMap {
	return p.colors
}

func (p *Painter) target(ctx context.Context, req Request, size math3d.IVec3, kind palette.Kind) world.Target {
	frame := world.NewFrame(req.Position, req.Yaw, req.Pitch, size)
	lo, hi := frame.Bounds(size)
	p.logger.Printf("%s drawing %v covers %v..%v", kind, size, lo, hi)
	return world.Target{
		Frame:  frame,
		Placer: world.WithContext(ctx, req.Placer),
		Colors: p.colors,
		Kind:   kind,
	}
}

// DrawImage resamples img to width×height blocks and places it as a flat
// panel facing the actor. A zero height keeps the aspect ratio.
func (p *Painter) DrawImage(ctx context.Context, req Request, img *texture.Image, width, height int) (world.Frame, error) {
	if !img.Valid() {
		return world.Frame{}, ErrNoTexture
	}
	if width <= 0 {
		width = img.Width
	}
	if height <= 0 {
		height = max(1, int(math.Round(float64(width)*float64(img.Height)/float64(img.Width))))
	}

	scaled := p.reduce(Resample(img, width, height))

	size := math3d.I3(width, height, 1)
	t := p.target(ctx, req, size, palette.KindImage)
	p.logger.Printf("drawing image %dx%d at %v facing %s/%s", width, height, t.Frame.Origin, t.Frame.Orientation.Heading, t.Frame.Orientation.Band)

	cube := geometry.NewCube(size)
	cube.SetFace(geometry.Front, geometry.NewFace(0, 0, float64(width-1), float64(height-1), scaled))
	if err := cube.Draw(t); err != nil {
		return t.Frame, fmt.Errorf("draw image: %w", err)
	}
	return t.Frame, nil
}

// reduce replaces every pixel with the palette color it resolves to, so
// each pixel maps to its block exactly. Dither switches from nearest-color
// matching to error diffusion.
func (p *Painter) reduce(img *texture.Image) *texture.Image {
	pal, _ := p.colors.Palette(palette.KindImage)
	if len(pal) == 0 {
		return img
	}
	quantize := palette.Quantize
	if p.Dither {
		quantize = palette.Dither
	}
	ix := quantize(img, pal)
	out := texture.New(img.Width, img.Height, true)
	for y := range img.Height {
		for x := range img.Width {
			if idx := ix.At(x, y); idx >= 0 {
				out.SetPixel(x, y, pal[idx])
			}
		}
	}
	return out
}

// Resample scales an image with bilinear filtering.
func Resample(img *texture.Image, width, height int) *texture.Image {
	if img.Width == width && img.Height == height {
		return img
	}
	src := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := range img.Height {
		for x := range img.Width {
			c := img.PixelAt(y, x)
			src.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := texture.FromImage(dst)
	out.HasAlpha = img.HasAlpha
	return out
}

// DrawBlock draws a textured box. textures holds one texture for every face
// or six in Front, Back, Left, Right, Top, Bottom order. Each face shows the
// centre of its texture, one pixel per block.
func (p *Painter) DrawBlock(ctx context.Context, req Request, size math3d.IVec3, textures []*texture.Image) (world.Frame, error) {
	if len(textures) != 1 && len(textures) != 6 {
		return world.Frame{}, fmt.Errorf("draw block: need 1 or 6 textures, got %d", len(textures))
	}
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return world.Frame{}, fmt.Errorf("draw block: invalid size %v", size)
	}

	cube := geometry.NewCube(size)
	for i, kind := range geometry.FaceKinds {
		tex := textures[0]
		if len(textures) == 6 {
			tex = textures[i]
		}
		if !tex.Valid() {
			continue
		}
		cols, rows, _ := geometry.Layout(kind, size)
		f := geometry.FlatFace(tex.Width, cols, rows, tex)
		f.TextureID = i
		cube.SetFace(kind, f)
	}
	if cube.FaceCount() == 0 {
		return world.Frame{}, ErrNoTexture
	}

	t := p.target(ctx, req, size, palette.KindBlock)
	p.logger.Printf("drawing block %v at %v", size, t.Frame.Origin)
	if err := cube.Draw(t); err != nil {
		return t.Frame, fmt.Errorf("draw block: %w", err)
	}
	return t.Frame, nil
}

// DrawStatue draws a statue description. At least one texture must be
// usable.
func (p *Painter) DrawStatue(ctx context.Context, req Request, desc *statue.Description, textures []*texture.Image) (world.Frame, error) {
	if !slices.ContainsFunc(textures, (*texture.Image).Valid) {
		return world.Frame{}, ErrNoTexture
	}
	size := desc.Size()
	t := p.target(ctx, req, size, palette.KindStatue)
	p.logger.Printf("drawing statue %s %v at %v", desc.Name, size, t.Frame.Origin)
	if err := statue.Draw(desc, textures, t); err != nil {
		return t.Frame, err
	}
	return t.Frame, nil
}

// DrawMesh voxelizes a mesh so that its longest side spans size blocks.
func (p *Painter) DrawMesh(ctx context.Context, req Request, mesh *models.Mesh, size int) (world.Frame, error) {
	if mesh == nil {
		return world.Frame{}, errors.New("draw mesh: no mesh")
	}
	if size <= 0 {
		return world.Frame{}, fmt.Errorf("draw mesh: invalid size %d", size)
	}
	_, extent := voxel.Fit(mesh, size)
	t := p.target(ctx, req, extent, palette.KindStatue)
	p.logger.Printf("drawing mesh %s (%d triangles) %v at %v", mesh.Name, mesh.TriangleCount(), extent, t.Frame.Origin)
	if err := voxel.DrawMesh(t, mesh, size); err != nil {
		return t.Frame, fmt.Errorf("draw mesh %s: %w", mesh.Name, err)
	}
	return t.Frame, nil
}
