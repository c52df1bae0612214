// mcpainter - draw images, textured blocks, statues and models as voxels.
//
// The drawing goes into an in-memory world; the result can be written as a
// PNG preview or inspected in an interactive terminal view.
//
// Usage:
//
//	mcpainter [options] image  <picture.png>
//	mcpainter [options] block  <texture.png> [5 more textures]
//	mcpainter [options] statue <player|statue.yml> <texture.png>...
//	mcpainter [options] mesh   <model.glb>
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/SBPrime/MCPainter-sub001/internal/config"
	"github.com/SBPrime/MCPainter-sub001/internal/session"
	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
	"github.com/SBPrime/MCPainter-sub001/pkg/models"
	"github.com/SBPrime/MCPainter-sub001/pkg/painter"
	"github.com/SBPrime/MCPainter-sub001/pkg/palette"
	"github.com/SBPrime/MCPainter-sub001/pkg/render"
	"github.com/SBPrime/MCPainter-sub001/pkg/statue"
	"github.com/SBPrime/MCPainter-sub001/pkg/texture"
	"github.com/SBPrime/MCPainter-sub001/pkg/world"
)

var (
	configPath  = flag.String("config", "", "Path to a YAML configuration file")
	palettePath = flag.String("palette", "", "Palette file (overrides the configuration)")
	dither      = flag.Bool("dither", false, "Dither images against the palette")
	position    = flag.String("pos", "0.5,64,0.5", "Actor position (X,Y,Z)")
	yaw         = flag.Float64("yaw", 180, "Actor yaw in degrees (0 south, 90 west, 180 north)")
	pitch       = flag.Float64("pitch", 0, "Actor pitch in degrees (positive looks down)")
	width       = flag.Int("width", 0, "Image width in blocks (default from configuration)")
	height      = flag.Int("height", 0, "Image height in blocks (0 keeps the aspect ratio)")
	size        = flag.String("size", "", "Block size WxHxD, or the mesh size in blocks")
	pngPath     = flag.String("png", "", "Write a preview image to this path")
	interactive = flag.Bool("preview", false, "Show an interactive terminal preview")
	verbose     = flag.Bool("v", false, "Log progress to stderr")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mcpainter - voxel painter\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  mcpainter [options] image  <picture.png>\n")
		fmt.Fprintf(os.Stderr, "  mcpainter [options] block  <texture.png> [5 more textures]\n")
		fmt.Fprintf(os.Stderr, "  mcpainter [options] statue <player|statue.yml> <texture.png>...\n")
		fmt.Fprintf(os.Stderr, "  mcpainter [options] mesh   <model.glb>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nPreview controls:\n")
		fmt.Fprintf(os.Stderr, "  A/D, Left/Right - Turn\n")
		fmt.Fprintf(os.Stderr, "  W/S, Up/Down    - Tilt\n")
		fmt.Fprintf(os.Stderr, "  Space           - Toggle auto-turn\n")
		fmt.Fprintf(os.Stderr, "  R               - Reset view\n")
		fmt.Fprintf(os.Stderr, "  Esc/Q           - Quit\n")
	}
	flag.Parse()

	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(mode string, args []string) error {
	logger := log.New(os.Stderr, "mcpainter: ", log.LstdFlags)
	quiet := logger
	if !*verbose {
		quiet = log.New(io.Discard, "", 0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *palettePath != "" {
		cfg.Palette.Path = *palettePath
	}

	name, colors, err := loadPalette(cfg.Palette)
	if err != nil {
		return err
	}
	quiet.Printf("palette %s: %d blocks, fallback %s", name, len(colors.Blocks()), colors.Fallback().ID)

	store := session.NewStore(session.Settings{
		PaletteName: name,
		Colors:      colors,
		Dither:      cfg.Palette.Dither || *dither,
	})
	actor := store.NewActor()
	release, err := store.Begin(actor)
	if err != nil {
		return err
	}
	defer release()
	settings := store.Settings(actor)

	pos, err := parseVec3(*position)
	if err != nil {
		return fmt.Errorf("parse -pos: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	recorder := world.NewRecorder(cfg.Drawing.MaxChanges)
	p := painter.New(settings.Colors, quiet)
	p.Dither = settings.Dither
	req := painter.Request{Position: pos, Yaw: *yaw, Pitch: *pitch, Placer: recorder}

	frame, err := draw(ctx, p, req, cfg, mode, args)
	switch {
	case errors.Is(err, world.ErrMaxChanges):
		logger.Printf("stopped after %d changes: %v", recorder.Changes(), err)
	case err != nil:
		return err
	}

	lo, hi, ok := recorder.Bounds()
	if !ok {
		logger.Printf("nothing was drawn")
		return nil
	}
	logger.Printf("%s: %d blocks (%d changes) from %v to %v, origin %v", mode, recorder.Len(), recorder.Changes(), lo, hi, frame.Origin)

	scene := render.NewScene(recorder.Snapshot())
	if *pngPath != "" {
		preview := render.NewPreview(cfg.Preview.Width, cfg.Preview.Height)
		preview.SetScene(scene)
		fb := preview.Render(math.Pi/4, cfg.Preview.Pitch*math.Pi/180)
		if err := fb.SavePNG(*pngPath); err != nil {
			return err
		}
		logger.Printf("preview written to %s", *pngPath)
	}
	if *interactive {
		return runPreview(ctx, cfg.Preview, scene)
	}
	return nil
}

func draw(ctx context.Context, p *painter.Painter, req painter.Request, cfg *config.Config, mode string, args []string) (world.Frame, error) {
	switch mode {
	case "image":
		img, err := texture.Load(args[0])
		if err != nil {
			return world.Frame{}, err
		}
		w := *width
		if w <= 0 {
			w = cfg.Drawing.ImageWidth
		}
		return p.DrawImage(ctx, req, img, w, *height)

	case "block":
		textures, err := loadTextures(args)
		if err != nil {
			return world.Frame{}, err
		}
		res := cfg.Drawing.TextureResolution
		for i, tex := range textures {
			if tex.Width != res || tex.Height != res {
				textures[i] = painter.Resample(tex, res, res)
			}
		}
		dims := math3d.I3(res, res, res)
		if *size != "" {
			if dims, err = parseSize(*size); err != nil {
				return world.Frame{}, fmt.Errorf("parse -size: %w", err)
			}
		}
		return p.DrawBlock(ctx, req, dims, textures)

	case "statue":
		if len(args) < 2 {
			return world.Frame{}, fmt.Errorf("statue needs at least one texture: %w", painter.ErrNoTexture)
		}
		desc := statue.Player()
		if args[0] != "player" {
			var err error
			if desc, err = statue.LoadDescription(args[0]); err != nil {
				return world.Frame{}, err
			}
		}
		textures, err := loadTextures(args[1:])
		if err != nil {
			return world.Frame{}, err
		}
		return p.DrawStatue(ctx, req, desc, textures)

	case "mesh":
		mesh, err := models.NewGLTFLoader().Load(args[0])
		if err != nil {
			return world.Frame{}, err
		}
		n := cfg.Drawing.MeshSize
		if *size != "" {
			if n, err = strconv.Atoi(*size); err != nil {
				return world.Frame{}, fmt.Errorf("parse -size: %w", err)
			}
		}
		return p.DrawMesh(ctx, req, mesh, n)
	}
	return world.Frame{}, fmt.Errorf("unknown mode %q (use image, block, statue or mesh)", mode)
}

func loadPalette(pc config.PaletteConfig) (string, *palette.ColorMap, error) {
	name, colors := "wool", palette.Default()
	if pc.Path != "" {
		var err error
		if name, colors, err = palette.Load(pc.Path); err != nil {
			return "", nil, err
		}
	}
	if pc.Fallback != "" {
		colors = palette.NewColorMap(colors.Blocks(), palette.DrawingBlock{ID: pc.Fallback, Kinds: palette.KindAll})
	}
	return name, colors, nil
}

func loadTextures(paths []string) ([]*texture.Image, error) {
	textures := make([]*texture.Image, 0, len(paths))
	for _, path := range paths {
		tex, err := texture.Load(path)
		if err != nil {
			return nil, err
		}
		textures = append(textures, tex)
	}
	return textures, nil
}

func parseVec3(s string) (math3d.Vec3, error) {
	var v math3d.Vec3
	if _, err := fmt.Sscanf(s, "%g,%g,%g", &v.X, &v.Y, &v.Z); err != nil {
		return v, err
	}
	return v, nil
}

func parseSize(s string) (math3d.IVec3, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 3 {
		return math3d.IVec3{}, fmt.Errorf("want WxHxD, got %q", s)
	}
	var dims [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return math3d.IVec3{}, err
		}
		dims[i] = n
	}
	return math3d.I3(dims[0], dims[1], dims[2]), nil
}
