package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
	"github.com/SBPrime/MCPainter-sub001/pkg/texture"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// LoadTextures decodes base color textures into the materials.
	LoadTextures bool
	// FlipWinding reverses triangle winding.
	FlipWinding bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		LoadTextures: true,
	}
}

// LoadGLB loads a binary GLTF (.glb) or a .gltf file with its textures.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	mesh.Materials = l.readMaterials(doc, filepath.Dir(path))

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// readMaterials converts every material. Textures that fail to decode leave
// the material untextured.
func (l *GLTFLoader) readMaterials(doc *gltf.Document, dir string) []Material {
	out := make([]Material, len(doc.Materials))
	for i, m := range doc.Materials {
		mat := Material{Name: m.Name, BaseColor: [4]float64{1, 1, 1, 1}}
		if pbr := m.PBRMetallicRoughness; pbr != nil {
			if pbr.BaseColorFactor != nil {
				mat.BaseColor = *pbr.BaseColorFactor
			}
			if l.LoadTextures && pbr.BaseColorTexture != nil {
				mat.BaseMap = textureFor(doc, pbr.BaseColorTexture.Index, dir)
			}
		}
		out[i] = mat
	}
	return out
}

func textureFor(doc *gltf.Document, texIdx int, dir string) *texture.Image {
	if texIdx < 0 || texIdx >= len(doc.Textures) {
		return nil
	}
	src := doc.Textures[texIdx].Source
	if src == nil || *src < 0 || *src >= len(doc.Images) {
		return nil
	}
	img := doc.Images[*src]

	if img.BufferView != nil {
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer]
		if buf.Data == nil || bv.ByteOffset+bv.ByteLength > len(buf.Data) {
			return nil
		}
		decoded, _, err := image.Decode(bytes.NewReader(buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]))
		if err != nil {
			return nil
		}
		return texture.FromImage(decoded)
	}

	if img.URI == "" || strings.HasPrefix(img.URI, "data:") {
		return nil
	}
	tex, err := texture.Load(filepath.Join(dir, img.URI))
	if err != nil {
		return nil
	}
	return tex
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVectors(doc, posIdx, 3)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var uvs [][4]float64
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if uvs, err = readVectors(doc, uvIdx, 2); err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		var colors [][4]float64
		if colIdx, ok := prim.Attributes[gltf.COLOR_0]; ok {
			if colors, err = readVectors(doc, colIdx, 4); err != nil {
				return fmt.Errorf("read colors: %w", err)
			}
		}

		material := -1
		if prim.Material != nil {
			material = *prim.Material
		}

		baseVertex := len(mesh.Vertices)
		for i, p := range positions {
			v := MeshVertex{Position: math3d.V3(p[0], p[1], p[2])}
			if i < len(uvs) {
				// glTF UVs already have V=0 at the top row
				v.UV = math3d.V2(uvs[i][0], uvs[i][1])
				v.HasUV = true
			}
			if i < len(colors) {
				v.Color = unitColor(colors[i])
				v.HasColor = true
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []int
		if prim.Indices != nil {
			if indices, err = readIndices(doc, *prim.Indices); err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := indices[i], indices[i+1], indices[i+2]
			if a >= len(positions) || b >= len(positions) || c >= len(positions) {
				return fmt.Errorf("index out of range in triangle %d", i/3)
			}
			if l.FlipWinding {
				b, c = c, b
			}
			mesh.Faces = append(mesh.Faces, Face{
				V:        [3]int{baseVertex + a, baseVertex + b, baseVertex + c},
				Material: material,
			})
		}
	}
	return nil
}

func unitColor(c [4]float64) color.RGBA {
	to8 := func(f float64) uint8 {
		return uint8(math.Round(math.Max(0, math.Min(1, f)) * 255))
	}
	return color.RGBA{to8(c[0]), to8(c[1]), to8(c[2]), to8(c[3])}
}

// componentCount returns the number of components of an accessor type.
func componentCount(t gltf.AccessorType) int {
	switch t {
	case gltf.AccessorScalar:
		return 1
	case gltf.AccessorVec2:
		return 2
	case gltf.AccessorVec3:
		return 3
	case gltf.AccessorVec4:
		return 4
	}
	return 0
}

// readVectors reads up to want components per element as float64. Missing
// components are filled with 1 (the glTF default for color alpha). Integer
// components are normalized to [0,1], as glTF requires for the attributes
// read here.
func readVectors(doc *gltf.Document, accessorIdx, want int) ([][4]float64, error) {
	accessor := doc.Accessors[accessorIdx]
	comps := componentCount(accessor.Type)
	if comps < 2 || comps < min(want, 3) {
		return nil, fmt.Errorf("unexpected accessor type %v", accessor.Type)
	}

	raw, err := readAccessorData(doc, accessor, comps)
	if err != nil {
		return nil, err
	}

	result := make([][4]float64, accessor.Count)
	for i := range result {
		result[i] = [4]float64{1, 1, 1, 1}
		for j := range min(comps, want) {
			result[i][j] = normalize(raw[i*comps+j], accessor.ComponentType)
		}
	}
	return result, nil
}

func normalize(v float64, ct gltf.ComponentType) float64 {
	switch ct {
	case gltf.ComponentUbyte:
		return v / 255
	case gltf.ComponentUshort:
		return v / 65535
	}
	return v
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}
	raw, err := readAccessorData(doc, accessor, 1)
	if err != nil {
		return nil, err
	}
	result := make([]int, len(raw))
	for i, x := range raw {
		result[i] = int(x)
	}
	return result, nil
}

// readAccessorData reads comps components per element as raw numbers.
func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor, comps int) ([]float64, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	bufData := doc.Buffers[bufferView.Buffer].Data
	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	size := componentSize(accessor.ComponentType)
	if size == 0 {
		return nil, fmt.Errorf("unsupported component type: %v", accessor.ComponentType)
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	if stride == 0 {
		stride = size * comps
	}
	count := accessor.Count
	if count > 0 && start+(count-1)*stride+size*comps > len(bufData) {
		return nil, fmt.Errorf("accessor exceeds buffer")
	}

	result := make([]float64, count*comps)
	for i := range count {
		offset := start + i*stride
		for j := range comps {
			b := bufData[offset+j*size:]
			var v float64
			switch accessor.ComponentType {
			case gltf.ComponentFloat:
				v = float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
			case gltf.ComponentUbyte:
				v = float64(b[0])
			case gltf.ComponentUshort:
				v = float64(binary.LittleEndian.Uint16(b))
			case gltf.ComponentUint:
				v = float64(binary.LittleEndian.Uint32(b))
			}
			result[i*comps+j] = v
		}
	}
	return result, nil
}

func componentSize(ct gltf.ComponentType) int {
	switch ct {
	case gltf.ComponentUbyte:
		return 1
	case gltf.ComponentUshort:
		return 2
	case gltf.ComponentFloat, gltf.ComponentUint:
		return 4
	}
	return 0
}
