package render

import "github.com/taigrr/prism/pkg/math3d"

// CanvasPoint is a projected vertex: canvas position, inverse depth and an
// optional texel coordinate.
type CanvasPoint struct {
	X, Y  float64
	Depth float64
	Tex   math3d.Vec2
}

// CanvasTriangle is three projected vertices.
type CanvasTriangle [3]CanvasPoint

// Inside reports whether every vertex lies on a width x height canvas.
func (t CanvasTriangle) Inside(width, height int) bool {
	for _, p := range t {
		if p.X < 0 || p.X >= float64(width) || p.Y < 0 || p.Y >= float64(height) {
			return false
		}
	}
	return true
}

// ProjectTriangle projects three world vertices. ok is false if any of them
// is behind the camera.
func (c *Camera) ProjectTriangle(v [3]math3d.Vec3, width, height int) (CanvasTriangle, bool) {
	var ct CanvasTriangle
	for i, p := range v {
		pt, ok := c.Project(p, width, height)
		if !ok {
			return ct, false
		}
		ct[i] = pt
	}
	return ct, true
}
