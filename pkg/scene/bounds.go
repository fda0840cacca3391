package scene

import (
	"math"

	"github.com/taigrr/prism/pkg/math3d"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// EmptyBounds returns an inverted box that any point will extend.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: math3d.V3(inf, inf, inf),
		Max: math3d.V3(-inf, -inf, -inf),
	}
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool {
	return b.Min.X > b.Max.X
}

// Extend grows the box to contain p.
func (b Bounds) Extend(p math3d.Vec3) Bounds {
	return Bounds{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the box containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if o.Empty() {
		return b
	}
	return Bounds{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Center returns the centre of the box.
func (b Bounds) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the box.
func (b Bounds) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// ContainsPoint returns true if the point is inside the box.
func (b Bounds) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Transform returns the box bounding all 8 transformed corners.
func (b Bounds) Transform(m math3d.Mat4) Bounds {
	if b.Empty() {
		return b
	}
	out := EmptyBounds()
	for i := range 8 {
		corner := math3d.V3(
			pick(i&1 != 0, b.Max.X, b.Min.X),
			pick(i&2 != 0, b.Max.Y, b.Min.Y),
			pick(i&4 != 0, b.Max.Z, b.Min.Z),
		)
		out = out.Extend(m.MulVec3(corner))
	}
	return out
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
