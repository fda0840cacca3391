package scene

import "github.com/taigrr/prism/pkg/math3d"

// ObjectID is the stable handle of an object: its index in Scene.Objects.
type ObjectID int

// NoObject excludes nothing when passed to an intersection query.
const NoObject ObjectID = -1

// Triangle is a fully resolved scene triangle. Material, shadow flag and
// owner are copied from the owning object so the intersection loop never
// has to look the object up.
type Triangle struct {
	Vertices [3]math3d.Vec3
	Normals  [3]math3d.Vec3 // Per-vertex normals
	Normal   math3d.Vec3    // Face normal
	UV       [3]math3d.Vec2 // Texel coordinates, used by the textured fill
	Color    Color
	Material Material
	Shadows  bool
	Object   ObjectID
}

// NewTriangle creates a triangle with its face normal computed and every
// vertex normal set to the face normal.
func NewTriangle(v0, v1, v2 math3d.Vec3, c Color) Triangle {
	t := Triangle{
		Vertices: [3]math3d.Vec3{v0, v1, v2},
		Color:    c,
		Material: Flat{},
		Shadows:  true,
		Object:   NoObject,
	}
	t.Normal = t.FaceNormal()
	t.Normals = [3]math3d.Vec3{t.Normal, t.Normal, t.Normal}
	return t
}

// FaceNormal computes normalize((v1-v0) × (v2-v0)).
func (t *Triangle) FaceNormal() math3d.Vec3 {
	e0 := t.Vertices[1].Sub(t.Vertices[0])
	e1 := t.Vertices[2].Sub(t.Vertices[0])
	return e0.Cross(e1).Normalize()
}

// PointAt returns v0 + u(v1-v0) + v(v2-v0).
func (t *Triangle) PointAt(u, v float64) math3d.Vec3 {
	return math3d.Barycentric(t.Vertices[0], t.Vertices[1], t.Vertices[2], u, v)
}

// InterpolatedNormal blends the vertex normals at (u, v) and renormalizes.
func (t *Triangle) InterpolatedNormal(u, v float64) math3d.Vec3 {
	return math3d.Barycentric(t.Normals[0], t.Normals[1], t.Normals[2], u, v).Normalize()
}

// Degenerate reports whether the triangle has no area.
func (t *Triangle) Degenerate() bool {
	return t.Normal == (math3d.Vec3{})
}
