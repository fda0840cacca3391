// Package trace implements the recursive ray tracer: closest-hit search over
// every scene triangle, shadow rays towards point and area lights, and
// shading with mirror reflection and dielectric refraction.
package trace

import (
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// Hit is the closest intersection along a ray. It points into the scene's
// triangle storage and is only valid until the scene is next mutated.
type Hit struct {
	Triangle *scene.Triangle
	Object   scene.ObjectID
	Point    math3d.Vec3
	U, V     float64 // Barycentric weights of vertices 1 and 2
	T        float64 // Distance along the ray for a unit direction
}

// Normal returns the face normal, or the interpolated vertex normal when
// smooth is set.
func (h *Hit) Normal(smooth bool) math3d.Vec3 {
	if smooth {
		return h.Triangle.InterpolatedNormal(h.U, h.V)
	}
	return h.Triangle.Normal
}
