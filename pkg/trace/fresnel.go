package trace

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Fresnel returns the unpolarized reflectance at a boundary between air and
// a medium of index ior. The ray enters the medium when dir opposes n.
// Total internal reflection returns 1.
func Fresnel(dir, n math3d.Vec3, ior float64) float64 {
	cosi := clamp(n.Dot(dir), -1, 1)
	etai, etat := 1.0, ior
	if cosi < 0 {
		cosi = -cosi
	} else {
		etai, etat = ior, 1
	}

	sint2 := (etai / etat) * (etai / etat) * (1 - cosi*cosi)
	if sint2 >= 1 {
		return 1
	}
	cost := math.Sqrt(1 - sint2)

	rs := (etat*cosi - etai*cost) / (etat*cosi + etai*cost)
	rp := (etai*cosi - etat*cost) / (etai*cosi + etat*cost)
	return (rs*rs + rp*rp) / 2
}

// Refract bends dir through the boundary with normal n. Rays leaving the
// medium (dir along n) use the flipped normal and inverted ratio. ok is false
// on total internal reflection.
func Refract(dir, n math3d.Vec3, ior float64) (math3d.Vec3, bool) {
	cosi := clamp(n.Dot(dir), -1, 1)
	etai, etat := 1.0, ior
	if cosi < 0 {
		cosi = -cosi
	} else {
		n = n.Negate()
		etai, etat = ior, 1
	}

	eta := etai / etat
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return math3d.Vec3{}, false
	}
	return dir.Scale(eta).Add(n.Scale(eta*cosi - math.Sqrt(k))), true
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
