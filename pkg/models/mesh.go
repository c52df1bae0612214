// Package models loads triangle meshes and hands them to the voxelizer as
// plain data.
package models

import (
	"image/color"
	"sort"

	"github.com/SBPrime/MCPainter-sub001/pkg/math3d"
	"github.com/SBPrime/MCPainter-sub001/pkg/texture"
)

// Mesh represents a 3D mesh with vertices, faces, and materials.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	UV       math3d.Vec2
	HasUV    bool
	Color    color.RGBA
	HasColor bool
}

// Face is a triangle with vertex indices and a material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is the part of a glTF material the voxelizer can use.
type Material struct {
	Name      string
	BaseColor [4]float64     // RGBA in 0-1 range
	BaseMap   *texture.Image // Optional base color texture
}

// HasTexture reports whether the material samples a texture.
func (m *Material) HasTexture() bool {
	return m != nil && m.BaseMap.Valid()
}

// Texture returns the base color texture, or nil.
func (m *Material) Texture() *texture.Image {
	if !m.HasTexture() {
		return nil
	}
	return m.BaseMap
}

// Color returns the base color factor as 8-bit RGBA.
func (m *Material) Color() color.RGBA {
	to8 := func(f float64) uint8 {
		if f <= 0 {
			return 0
		}
		if f >= 1 {
			return 255
		}
		return uint8(f*255 + 0.5)
	}
	return color.RGBA{to8(m.BaseColor[0]), to8(m.BaseColor[1]), to8(m.BaseColor[2]), to8(m.BaseColor[3])}
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Faces:    make([]Face, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]Material, len(m.Materials)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Materials, m.Materials)
	return clone
}

// GetFaceMaterial returns the material index for face i.
// Returns -1 if no material assigned.
func (m *Mesh) GetFaceMaterial(i int) int {
	return m.Faces[i].Material
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// FaceGroup is the set of faces sharing one material.
type FaceGroup struct {
	Material int
	Faces    []int
}

// GroupByMaterial splits the faces by material, in ascending material order
// with unassigned faces (-1) first.
func (m *Mesh) GroupByMaterial() []FaceGroup {
	byMat := make(map[int][]int)
	for i, f := range m.Faces {
		mat := f.Material
		if mat < 0 || mat >= len(m.Materials) {
			mat = -1
		}
		byMat[mat] = append(byMat[mat], i)
	}
	groups := make([]FaceGroup, 0, len(byMat))
	for mat, faces := range byMat {
		groups = append(groups, FaceGroup{Material: mat, Faces: faces})
	}
	sort.Slice(groups, func(a, b int) bool { return groups[a].Material < groups[b].Material })
	return groups
}
