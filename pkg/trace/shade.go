package trace

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

// Shade computes the colour of a hit seen along dir, dispatching on the hit
// triangle's material. Mirror and glass materials recurse through CastRay
// while depth is below the configured maximum.
//
// Light that is blocked only dims the direct terms: a fully shadowed diffuse
// surface shows ambient light only, and mirror or glass highlights fade with
// the visible fraction of the light.
func (t *Tracer) Shade(dir math3d.Vec3, hit Hit, depth int) scene.Color {
	tri := hit.Triangle
	base := tri.Color

	if _, ok := tri.Material.(scene.Emitter); ok {
		return scene.White
	}
	vis := t.visibility(hit.Point, hit.Object)

	switch m := tri.Material.(type) {
	case scene.Flat:
		lit := litColor(base, t.diffuseAmbient(hit.Point, tri.Normal), 0)
		return t.shadowed(base, lit, vis)

	case scene.FlatSpecular:
		exp := orDefault(m.Exponent, scene.FlatExponent)
		lit := litColor(base,
			t.diffuseAmbient(hit.Point, tri.Normal),
			t.specular(hit.Point, tri.Normal, dir, exp))
		return t.shadowed(base, lit, vis)

	case scene.SmoothGouraud:
		exp := orDefault(m.Exponent, scene.SmoothExponent)
		var da, spec [3]float64
		for i := range 3 {
			da[i] = t.diffuseAmbient(tri.Vertices[i], tri.Normals[i])
			spec[i] = t.specular(tri.Vertices[i], tri.Normals[i], dir, exp)
		}
		w := 1 - hit.U - hit.V
		lit := litColor(base,
			w*da[0]+hit.U*da[1]+hit.V*da[2],
			w*spec[0]+hit.U*spec[1]+hit.V*spec[2])
		return t.shadowed(base, lit, vis)

	case scene.SmoothPhong:
		exp := orDefault(m.Exponent, scene.SmoothExponent)
		n := hit.Normal(true)
		lit := litColor(base,
			t.diffuseAmbient(hit.Point, n),
			t.specular(hit.Point, n, dir, exp))
		return t.shadowed(base, lit, vis)

	case scene.Mirror:
		return t.mirror(dir, hit.Normal(false), hit, depth, vis,
			orDefault(m.Reflectivity, scene.DefaultReflectivity),
			orDefault(m.Exponent, scene.MirrorExponent))

	case scene.MirrorPhong:
		return t.mirror(dir, hit.Normal(true), hit, depth, vis,
			orDefault(m.Reflectivity, scene.DefaultReflectivity),
			orDefault(m.Exponent, scene.MirrorPhongExponent))

	case scene.Glass:
		return t.glass(dir, hit.Normal(false), hit, depth, vis, glassParams{
			ior:          orDefault(m.IOR, t.cfg.RefractiveIndex),
			transmission: orDefault(m.Transmission, scene.GlassTransmission),
			bias:         orDefault(m.Bias, scene.GlassFaceBias),
			exponent:     orDefault(m.Exponent, scene.GlassExponent),
		})

	case scene.GlassPhong:
		return t.glass(dir, hit.Normal(true), hit, depth, vis, glassParams{
			ior:          orDefault(m.IOR, t.cfg.RefractiveIndex),
			transmission: orDefault(m.Transmission, scene.GlassPhongTransmission),
			bias:         orDefault(m.Bias, scene.GlassInterpolateBias),
			exponent:     orDefault(m.Exponent, scene.GlassExponent),
		})
	}
	return base
}

// mirror reflects dir about n and follows the reflected ray, ignoring the
// mirror's own triangles. At the depth cap only the highlight remains.
func (t *Tracer) mirror(dir, n math3d.Vec3, hit Hit, depth int, vis, reflectivity, exp float64) scene.Color {
	c := scene.Black
	if depth < t.cfg.MaxDepth {
		r := dir.Reflect(n).Normalize()
		c = t.CastRay(hit.Point, r, depth+1, hit.Object)
	}
	c = c.AddScalar(255 * t.specular(hit.Point, n, dir, exp) * vis)
	return c.Scale(reflectivity)
}

type glassParams struct {
	ior          float64
	transmission float64
	bias         float64
	exponent     float64
}

// glass blends a reflected and a refracted ray by Fresnel reflectance. Both
// ray origins are pushed off the surface along n: the refracted ray to the far
// side, the reflected ray to the near side. Glass returns black at the depth
// cap.
func (t *Tracer) glass(dir, n math3d.Vec3, hit Hit, depth int, vis float64, p glassParams) scene.Color {
	if depth >= t.cfg.MaxDepth {
		return scene.Black
	}
	kr := Fresnel(dir, n, p.ior)
	outside := n.Dot(dir) < 0
	offset := n.Scale(p.bias)
	near, far := hit.Point.Add(offset), hit.Point.Sub(offset)
	if !outside {
		near, far = far, near
	}

	refraction := scene.Black
	if kr < 1 {
		if rd, ok := Refract(dir, n, p.ior); ok {
			refraction = t.CastRay(far, rd.Normalize(), depth+1, scene.NoObject)
		}
	}
	reflection := t.CastRay(near, dir.Reflect(n).Normalize(), depth+1, scene.NoObject)

	c := reflection.Scale(kr).Add(refraction.Scale(1 - kr))
	c = c.AddScalar(255 * t.specular(hit.Point, n, dir, p.exponent) * vis)
	return c.Scale(p.transmission)
}

// shadowed blends from ambient-only towards the lit colour by visibility.
func (t *Tracer) shadowed(base, lit scene.Color, vis float64) scene.Color {
	switch {
	case vis >= 1:
		return lit
	case vis <= 0:
		return base.Scale(t.light.Ambient)
	}
	return base.Scale(t.light.Ambient).Lerp(lit, vis)
}

// diffuseAmbient is the light multiplier at p for surface normal n:
// strength·max(0, L·n) / (4π·distance) plus ambient.
func (t *Tracer) diffuseAmbient(p, n math3d.Vec3) float64 {
	toLight := t.light.Center().Sub(p)
	dist := toLight.Len()
	if dist == 0 {
		return t.light.Ambient
	}
	dot := math.Max(0, toLight.Scale(1/dist).Dot(n))
	return t.light.Strength*dot/(4*math.Pi*dist) + t.light.Ambient
}

// specular is the Phong term max(0, reflect(L, n)·dir)^exp for a white
// light, where L points from p to the light.
func (t *Tracer) specular(p, n, dir math3d.Vec3, exp float64) float64 {
	l := t.light.Center().Sub(p).Normalize()
	return math.Pow(math.Max(0, l.Reflect(n).Dot(dir)), exp)
}

// litColor applies a light multiplier and a white highlight to base. A
// non-finite term leaves the base colour unchanged.
func litColor(base scene.Color, diffuse, spec float64) scene.Color {
	if !finite(diffuse) || !finite(spec) {
		return base
	}
	return base.Scale(diffuse).AddScalar(255 * spec)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
