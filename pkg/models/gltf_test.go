package models

import (
	"encoding/binary"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	assert.Error(t, err)
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	require.NotNil(t, loader)
	assert.True(t, loader.LoadTextures)
	assert.False(t, loader.FlipWinding)
}

// writeTriangle saves a one-triangle GLB with a red material.
func writeTriangle(t *testing.T) string {
	t.Helper()

	positions := [][3]float32{{0, 0, 0}, {2, 0, 0}, {0, 4, -1}}
	indices := []uint16{0, 1, 2}

	data := make([]byte, 0, 44)
	for _, p := range positions {
		for _, f := range p {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(f))
		}
	}
	for _, i := range indices {
		data = binary.LittleEndian.AppendUint16(data, i)
	}
	data = append(data, 0, 0)

	red := [4]float64{1, 0, 0, 1}
	doc := gltf.NewDocument()
	doc.Buffers = []*gltf.Buffer{{ByteLength: len(data), Data: data}}
	doc.BufferViews = []*gltf.BufferView{
		{Buffer: 0, ByteOffset: 0, ByteLength: 36},
		{Buffer: 0, ByteOffset: 36, ByteLength: 6},
	}
	doc.Accessors = []*gltf.Accessor{
		{BufferView: gltf.Index(0), ComponentType: gltf.ComponentFloat, Type: gltf.AccessorVec3, Count: 3},
		{BufferView: gltf.Index(1), ComponentType: gltf.ComponentUshort, Type: gltf.AccessorScalar, Count: 3},
	}
	doc.Materials = []*gltf.Material{{
		Name:                 "red",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &red},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Attributes: gltf.PrimitiveAttributes{gltf.POSITION: 0},
			Indices:    gltf.Index(1),
			Material:   gltf.Index(0),
		}},
	}}

	path := filepath.Join(t.TempDir(), "tri.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func TestLoadTriangle(t *testing.T) {
	mesh, err := LoadGLB(writeTriangle(t))
	require.NoError(t, err)

	assert.Equal(t, 3, mesh.VertexCount())
	require.Equal(t, 1, mesh.TriangleCount())
	assert.Equal(t, [3]int{0, 1, 2}, mesh.Faces[0].V)
	assert.Equal(t, 0, mesh.GetFaceMaterial(0))

	assert.Equal(t, math3d.V3(0, 0, -1), mesh.BoundsMin)
	assert.Equal(t, math3d.V3(2, 4, 0), mesh.BoundsMax)
	assert.Equal(t, math3d.V3(2, 4, 1), mesh.Size())

	mat := mesh.GetMaterial(0)
	require.NotNil(t, mat)
	assert.Equal(t, "red", mat.Name)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, mat.Color())
	assert.False(t, mat.HasTexture())
}

func TestFlipWinding(t *testing.T) {
	l := NewGLTFLoader()
	l.FlipWinding = true
	mesh, err := l.Load(writeTriangle(t))
	require.NoError(t, err)
	assert.Equal(t, [3]int{0, 2, 1}, mesh.Faces[0].V)
}

func TestGroupByMaterial(t *testing.T) {
	mesh := NewMesh("test")
	mesh.Materials = []Material{{Name: "a"}, {Name: "b"}}
	mesh.Faces = []Face{
		{V: [3]int{0, 1, 2}, Material: 1},
		{V: [3]int{0, 1, 2}, Material: -1},
		{V: [3]int{0, 1, 2}, Material: 0},
		{V: [3]int{0, 1, 2}, Material: 1},
		{V: [3]int{0, 1, 2}, Material: 7},
	}

	groups := mesh.GroupByMaterial()
	require.Len(t, groups, 3)
	assert.Equal(t, FaceGroup{Material: -1, Faces: []int{1, 4}}, groups[0])
	assert.Equal(t, FaceGroup{Material: 0, Faces: []int{2}}, groups[1])
	assert.Equal(t, FaceGroup{Material: 1, Faces: []int{0, 3}}, groups[2])
}

func TestMeshClonePreservesMaterials(t *testing.T) {
	mesh := NewMesh("original")
	mesh.Materials = []Material{{Name: "mat1"}, {Name: "mat2"}}
	mesh.Faces = []Face{{V: [3]int{0, 1, 2}, Material: 1}}

	clone := mesh.Clone()
	assert.Equal(t, mesh.MaterialCount(), clone.MaterialCount())

	clone.Materials[0].Name = "modified"
	assert.Equal(t, "mat1", mesh.Materials[0].Name)
	assert.Equal(t, 1, clone.GetFaceMaterial(0))
	assert.Nil(t, mesh.GetMaterial(-1))
	assert.Nil(t, mesh.GetMaterial(99))
}

func TestMaterialColorClamps(t *testing.T) {
	m := Material{BaseColor: [4]float64{1.5, -0.2, 0.5, 1}}
	assert.Equal(t, color.RGBA{255, 0, 128, 255}, m.Color())
}
