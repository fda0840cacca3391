// Package models loads meshes from OBJ/MTL and glTF files, builds procedural
// primitives and reads YAML scene descriptions.
package models

import (
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// DefaultColor is used for faces without a material.
var DefaultColor = scene.Red

// Mesh is an indexed triangle mesh as read from a model file, before it is
// resolved into a scene object.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material
	Texture   *scene.Texture // Shared by every face; UVs index into it

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds the attributes of one vertex.
type MeshVertex struct {
	Position math3d.Vec3
	UV       math3d.Vec2 // Top-left origin, V grows downwards
}

// Face is a triangle with vertex indices and a material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is a diffuse colour with an optional texture.
type Material struct {
	Name        string
	Color       scene.Color
	TexturePath string
	Texture     *scene.Texture
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
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

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
	}
	m.CalculateBounds()
}

// Normalize centres the mesh on the origin and scales it so its largest
// dimension equals size.
func (m *Mesh) Normalize(size float64) {
	m.CalculateBounds()
	extent := m.Size()
	maxDim := max(extent.X, extent.Y, extent.Z)
	if maxDim <= 0 {
		return
	}
	s := size / maxDim
	m.Transform(math3d.Scale(math3d.V3(s, s, s)).Mul(math3d.Translate(m.Center().Negate())))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]Material, len(m.Materials)),
		Texture:   m.Texture,
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Materials, m.Materials)
	return clone
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

// useMaterialTexture adopts the first material texture as the mesh texture.
func (m *Mesh) useMaterialTexture() {
	if m.Texture != nil {
		return
	}
	for i := range m.Materials {
		if m.Materials[i].Texture != nil {
			m.Texture = m.Materials[i].Texture
			return
		}
	}
}

// ToObject resolves the mesh into a scene object. Each face takes its
// material's colour, or DefaultColor without one. When the mesh has a
// texture the object uses it, and every triangle gets texel coordinates in
// that texture.
func (m *Mesh) ToObject(name string, mat scene.Material, shadows bool) *scene.Object {
	if name == "" {
		name = m.Name
	}
	tex := m.Texture

	tris := make([]scene.Triangle, 0, len(m.Faces))
	for _, f := range m.Faces {
		c := DefaultColor
		if fm := m.GetMaterial(f.Material); fm != nil {
			c = fm.Color
		}
		a, b, d := m.Vertices[f.V[0]], m.Vertices[f.V[1]], m.Vertices[f.V[2]]
		t := scene.NewTriangle(a.Position, b.Position, d.Position, c)
		if tex != nil {
			t.UV = [3]math3d.Vec2{tex.TexelCoord(a.UV), tex.TexelCoord(b.UV), tex.TexelCoord(d.UV)}
		}
		tris = append(tris, t)
	}

	obj := scene.NewObject(name, tris, mat, shadows)
	obj.Texture = tex
	return obj
}
