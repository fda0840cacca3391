package models

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// solidMesh creates an empty mesh whose faces all use one coloured material.
func solidMesh(name string, c scene.Color) *Mesh {
	m := NewMesh(name)
	m.Materials = []Material{{Name: name, Color: c}}
	return m
}

func (m *Mesh) addVertex(p math3d.Vec3, uv math3d.Vec2) int {
	m.Vertices = append(m.Vertices, MeshVertex{Position: p, UV: uv})
	return len(m.Vertices) - 1
}

// addQuad adds the parallelogram corner, corner+u, corner+u+v, corner+v as
// two faces facing along u × v. The texture is mapped with corner at the
// bottom left and v pointing up the image.
func (m *Mesh) addQuad(corner, u, v math3d.Vec3) {
	a := m.addVertex(corner, math3d.V2(0, 1))
	b := m.addVertex(corner.Add(u), math3d.V2(1, 1))
	c := m.addVertex(corner.Add(u).Add(v), math3d.V2(1, 0))
	d := m.addVertex(corner.Add(v), math3d.V2(0, 0))
	m.Faces = append(m.Faces,
		Face{V: [3]int{a, b, c}, Material: 0},
		Face{V: [3]int{a, c, d}, Material: 0},
	)
}

// Quad returns a single parallelogram facing along u × v.
func Quad(corner, u, v math3d.Vec3, c scene.Color) *Mesh {
	m := solidMesh("quad", c)
	m.addQuad(corner, u, v)
	m.CalculateBounds()
	return m
}

// Box returns an axis-aligned box with every face pointing outwards. Each
// face carries the whole texture.
func Box(lo, hi math3d.Vec3, c scene.Color) *Mesh {
	d := hi.Sub(lo)
	dx, dy, dz := math3d.V3(d.X, 0, 0), math3d.V3(0, d.Y, 0), math3d.V3(0, 0, d.Z)

	m := solidMesh("box", c)
	m.addQuad(lo, dz, dy)                          // -X
	m.addQuad(math3d.V3(hi.X, lo.Y, lo.Z), dy, dz) // +X
	m.addQuad(lo, dx, dz)                          // -Y
	m.addQuad(math3d.V3(lo.X, hi.Y, lo.Z), dz, dx) // +Y
	m.addQuad(lo, dy, dx)                          // -Z
	m.addQuad(math3d.V3(lo.X, lo.Y, hi.Z), dx, dy) // +Z
	m.CalculateBounds()
	return m
}

// Sphere returns a UV sphere with the given number of longitude segments and
// latitude rings, facing outwards. The texture wraps once around the
// equator. Triangles at the poles that collapse to a line are left out.
func Sphere(center math3d.Vec3, radius float64, segments, rings int, c scene.Color) *Mesh {
	segments, rings = max(segments, 3), max(rings, 2)
	m := solidMesh("sphere", c)

	// One extra column duplicates the seam with u=1.
	idx := func(ring, seg int) int { return ring*(segments+1) + seg }
	for i := range rings + 1 {
		theta := math.Pi * float64(i) / float64(rings)
		for j := range segments + 1 {
			phi := 2 * math.Pi * float64(j%segments) / float64(segments)
			p := math3d.V3(
				math.Sin(theta)*math.Cos(phi),
				math.Cos(theta),
				math.Sin(theta)*math.Sin(phi),
			)
			uv := math3d.V2(float64(j)/float64(segments), float64(i)/float64(rings))
			m.addVertex(center.Add(p.Scale(radius)), uv)
		}
	}

	for i := range rings {
		for j := range segments {
			a, b := idx(i, j), idx(i+1, j)
			cc, d := idx(i+1, j+1), idx(i, j+1)
			if i > 0 {
				m.Faces = append(m.Faces, Face{V: [3]int{a, d, cc}, Material: 0})
			}
			if i < rings-1 {
				m.Faces = append(m.Faces, Face{V: [3]int{a, cc, b}, Material: 0})
			}
		}
	}
	m.CalculateBounds()
	return m
}
