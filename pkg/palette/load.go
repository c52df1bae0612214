package palette

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/SBPrime/MCPainter-sub001/pkg/texture"
)

// File is the on-disk form of a palette.
type File struct {
	Name     string      `yaml:"name"`
	Fallback string      `yaml:"fallback"`
	Blocks   []BlockFile `yaml:"blocks"`
}

// BlockFile describes one block. Either Color or Texture must be set; a
// texture is averaged into the block color.
type BlockFile struct {
	ID      string   `yaml:"id"`
	Color   string   `yaml:"color"`
	Texture string   `yaml:"texture"`
	Kinds   []string `yaml:"kinds"`
}

// DefaultFallback is the block placed where no color resolves.
const DefaultFallback = "minecraft:stone"

// Load reads a YAML palette file. Texture paths are relative to the file.
func Load(path string) (string, *ColorMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read palette: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return "", nil, fmt.Errorf("parse palette %s: %w", path, err)
	}
	cm, err := f.Build(filepath.Dir(path))
	if err != nil {
		return "", nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return f.Name, cm, nil
}

// Build resolves the file into a color map.
func (f *File) Build(dir string) (*ColorMap, error) {
	blocks := make([]DrawingBlock, 0, len(f.Blocks))
	for i, bf := range f.Blocks {
		b, err := bf.resolve(dir)
		if err != nil {
			return nil, fmt.Errorf("block %d (%s): %w", i, bf.ID, err)
		}
		blocks = append(blocks, b)
	}

	fallback := DrawingBlock{ID: DefaultFallback, Color: color.RGBA{R: 125, G: 125, B: 125, A: 255}, Kinds: KindAll}
	if f.Fallback != "" {
		fallback.ID = f.Fallback
		for _, b := range blocks {
			if b.ID == f.Fallback {
				fallback = b
				break
			}
		}
	}
	return NewColorMap(blocks, fallback), nil
}

func (bf BlockFile) resolve(dir string) (DrawingBlock, error) {
	if bf.ID == "" {
		return DrawingBlock{}, fmt.Errorf("missing id")
	}
	b := DrawingBlock{ID: bf.ID}

	switch {
	case bf.Color != "":
		c, err := ParseHex(bf.Color)
		if err != nil {
			return DrawingBlock{}, err
		}
		b.Color = c
	case bf.Texture != "":
		path := bf.Texture
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		img, err := texture.Load(path)
		if err != nil {
			return DrawingBlock{}, err
		}
		b.Color = AverageColor(img)
	default:
		return DrawingBlock{}, fmt.Errorf("needs a color or a texture")
	}

	if len(bf.Kinds) == 0 {
		b.Kinds = KindAll
	}
	for _, name := range bf.Kinds {
		k, err := ParseKind(name)
		if err != nil {
			return DrawingBlock{}, err
		}
		b.Kinds |= k
	}
	return b, nil
}

// ParseHex parses "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
