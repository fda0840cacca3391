package trace

import (
	"pgregory.net/rand"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// Shadowed reports whether a shadow-casting triangle outside exclude lies
// between point and target. Hits closer to point than bias are ignored so a
// surface never shadows itself.
func Shadowed(scn *scene.Scene, point, target math3d.Vec3, exclude scene.ObjectID, bias float64) bool {
	d := target.Sub(point)
	dist := d.Len()
	if dist == 0 {
		return false
	}
	dir := d.Scale(1 / dist)

	for _, obj := range scn.Objects {
		if exclude != scene.NoObject && obj.ID() == exclude {
			continue
		}
		for i := range obj.Triangles {
			tri := &obj.Triangles[i]
			if !tri.Shadows {
				continue
			}
			if t, _, _, ok := IntersectTriangle(tri, point, dir); ok && t > bias && t < dist {
				return true
			}
		}
	}
	return false
}

// Visibility returns the fraction of light reaching point, in [0, 1]. A point
// light gives 0 or 1. An area light is sampled once per cell of its
// SamplesU x SamplesV grid at a uniformly jittered offset within the cell,
// and the unshadowed samples are averaged. An empty grid samples once.
func Visibility(scn *scene.Scene, light *scene.Light, point math3d.Vec3, exclude scene.ObjectID, bias float64, rng *rand.Rand) float64 {
	if light.Kind != scene.AreaLight {
		if Shadowed(scn, point, light.Position, exclude, bias) {
			return 0
		}
		return 1
	}

	su, sv := max(1, light.SamplesU), max(1, light.SamplesV)
	lit := 0
	for i := range su {
		for j := range sv {
			u := (float64(i) + rng.Float64()) / float64(su)
			v := (float64(j) + rng.Float64()) / float64(sv)
			if !Shadowed(scn, point, light.SamplePoint(u, v), exclude, bias) {
				lit++
			}
		}
	}
	return float64(lit) / float64(su*sv)
}
