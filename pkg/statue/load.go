package statue

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SBPrime/MCPainter-sub001/pkg/geometry"
	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
	"github.com/SBPrime/MCPainter-sub001/pkg/orientation"
)

type fileDescription struct {
	Name       string     `yaml:"name"`
	Resolution int        `yaml:"resolution"`
	Parts      []filePart `yaml:"parts"`
}

type filePart struct {
	Name     string     `yaml:"name"`
	Offset   []int      `yaml:"offset"`
	Size     []int      `yaml:"size"`
	Diagonal bool       `yaml:"diagonal"`
	Remap    [][]int    `yaml:"remap"`
	Faces    []fileFace `yaml:"faces"`
}

type fileFace struct {
	Face      string    `yaml:"face"`
	Texture   int       `yaml:"texture"`
	UV        []int     `yaml:"uv"`
	Span      []int     `yaml:"span"`
	Rotate    bool      `yaml:"rotate"`
	Depth     int       `yaml:"depth"`
	HCrop     []int     `yaml:"hcrop"`
	VCrop     []int     `yaml:"vcrop"`
	Delta     []float64 `yaml:"delta"`
	Grayscale bool      `yaml:"grayscale"`
}

// LoadDescription reads a statue from a YAML file.
func LoadDescription(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read statue: %w", err)
	}
	desc, err := ParseDescription(data)
	if err != nil {
		return nil, fmt.Errorf("statue %s: %w", path, err)
	}
	return desc, nil
}

// ParseDescription decodes a YAML statue description.
func ParseDescription(data []byte) (*Description, error) {
	var f fileDescription
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	desc := &Description{Name: f.Name, Resolution: f.Resolution}
	for i, fp := range f.Parts {
		part, err := fp.build()
		if err != nil {
			return nil, fmt.Errorf("part %d (%s): %w", i, fp.Name, err)
		}
		desc.Parts = append(desc.Parts, part)
	}
	return desc, nil
}

func (fp filePart) build() (Part, error) {
	offset, err := triple(fp.Offset, "offset", true)
	if err != nil {
		return Part{}, err
	}
	size, err := triple(fp.Size, "size", false)
	if err != nil {
		return Part{}, err
	}
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return Part{}, fmt.Errorf("size must be positive, got %v", fp.Size)
	}

	part := Part{
		Name:  fp.Name,
		Block: Block{Offset: offset, Size: size, Diagonal: fp.Diagonal},
	}

	if len(fp.Remap) > 0 {
		if len(fp.Remap) != 3 {
			return Part{}, fmt.Errorf("remap needs 3 rows")
		}
		var m orientation.Matrix
		for r, row := range fp.Remap {
			if len(row) != 3 {
				return Part{}, fmt.Errorf("remap row %d needs 3 values", r)
			}
			copy(m[r][:], row)
		}
		if !m.Permutation() {
			return Part{}, fmt.Errorf("remap %v is not a signed permutation", fp.Remap)
		}
		part.Block.Remap = &m
	}

	for _, ff := range fp.Faces {
		kind, err := geometry.ParseFaceKind(ff.Face)
		if err != nil {
			return Part{}, err
		}
		if len(ff.UV) != 2 || len(ff.Span) != 2 {
			return Part{}, fmt.Errorf("%s face needs uv and span pairs", ff.Face)
		}
		if ff.Depth < 0 {
			return Part{}, fmt.Errorf("%s face depth cannot be negative", ff.Face)
		}
		fs := FaceSpec{
			Face:      kind,
			Texture:   ff.Texture,
			U:         ff.UV[0],
			V:         ff.UV[1],
			Width:     ff.Span[0],
			Height:    ff.Span[1],
			Rotate:    ff.Rotate,
			Depth:     ff.Depth,
			Grayscale: ff.Grayscale,
		}
		if fs.HCrop, err = crop(ff.HCrop, "hcrop"); err != nil {
			return Part{}, fmt.Errorf("%s face: %w", ff.Face, err)
		}
		if fs.VCrop, err = crop(ff.VCrop, "vcrop"); err != nil {
			return Part{}, fmt.Errorf("%s face: %w", ff.Face, err)
		}
		switch len(ff.Delta) {
		case 0:
		case 2:
			fs.Delta = math3d.V2(ff.Delta[0], ff.Delta[1])
		default:
			return Part{}, fmt.Errorf("%s face delta needs 2 values", ff.Face)
		}
		part.Faces = append(part.Faces, fs)
	}
	return part, nil
}

func crop(v []int, name string) (*geometry.Crop, error) {
	switch {
	case len(v) == 0:
		return nil, nil
	case len(v) != 2:
		return nil, fmt.Errorf("%s needs 2 values, got %d", name, len(v))
	case v[0] > v[1]:
		return nil, fmt.Errorf("%s %v is reversed", name, v)
	}
	return &geometry.Crop{From: v[0], To: v[1]}, nil
}

func triple(v []int, name string, optional bool) (math3d.IVec3, error) {
	if len(v) == 0 && optional {
		return math3d.IVec3{}, nil
	}
	if len(v) != 3 {
		return math3d.IVec3{}, fmt.Errorf("%s needs 3 values, got %d", name, len(v))
	}
	return math3d.I3(v[0], v[1], v[2]), nil
}
