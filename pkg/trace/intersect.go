package trace

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// singular is the determinant below which a ray is treated as parallel to
// the triangle's plane.
const singular = 1e-12

// IntersectTriangle solves origin + t·dir = v0 + u·e0 + v·e1 for (t, u, v)
// with Cramer's rule, where e0 and e1 are the edges from v0. ok is true only
// for t ≥ 0 and a point strictly inside the triangle; points exactly on an
// edge miss. Degenerate triangles and parallel rays never hit.
func IntersectTriangle(tri *scene.Triangle, origin, dir math3d.Vec3) (t, u, v float64, ok bool) {
	v0 := tri.Vertices[0]
	e0 := tri.Vertices[1].Sub(v0)
	e1 := tri.Vertices[2].Sub(v0)
	nd := dir.Negate()

	// det[-d e0 e1] = -d · (e0 × e1)
	n := e0.Cross(e1)
	det := nd.Dot(n)
	if math.Abs(det) < singular || math.IsNaN(det) {
		return 0, 0, 0, false
	}
	inv := 1 / det
	s := origin.Sub(v0)

	t = s.Dot(n) * inv
	u = nd.Dot(s.Cross(e1)) * inv
	v = nd.Dot(e0.Cross(s)) * inv
	ok = t >= 0 && u > 0 && v > 0 && u+v < 1
	return t, u, v, ok
}

// Intersect returns the closest hit along a ray over every triangle in the
// scene, skipping the triangles of exclude. Pass scene.NoObject to test
// everything.
func Intersect(scn *scene.Scene, origin, dir math3d.Vec3, exclude scene.ObjectID) (Hit, bool) {
	var best Hit
	found := false
	best.T = math.Inf(1)

	for _, obj := range scn.Objects {
		if exclude != scene.NoObject && obj.ID() == exclude {
			continue
		}
		for i := range obj.Triangles {
			tri := &obj.Triangles[i]
			t, u, v, ok := IntersectTriangle(tri, origin, dir)
			if !ok || t >= best.T {
				continue
			}
			best = Hit{Triangle: tri, Object: obj.ID(), U: u, V: v, T: t}
			found = true
		}
	}
	if found {
		best.Point = best.Triangle.PointAt(best.U, best.V)
	}
	return best, found
}
