package render

import "github.com/taigrr/prism/pkg/math3d"

// Camera is a pinhole camera. The orientation columns are the camera's
// right, up and forward axes; the camera looks down -forward.
type Camera struct {
	Position    math3d.Vec3
	Orientation math3d.Mat3
	FocalLength float64
	PixelScale  float64 // Canvas pixels per camera-space unit
}

// NewCamera creates a camera at pos with an identity orientation.
func NewCamera(pos math3d.Vec3, focalLength float64) *Camera {
	return &Camera{
		Position:    pos,
		Orientation: math3d.Identity3(),
		FocalLength: focalLength,
		PixelScale:  100,
	}
}

// Right returns the camera's right axis.
func (c *Camera) Right() math3d.Vec3 { return c.Orientation.Column(0) }

// Up returns the camera's up axis.
func (c *Camera) Up() math3d.Vec3 { return c.Orientation.Column(1) }

// Forward returns the camera's forward axis, which points out of the back of
// the camera.
func (c *Camera) Forward() math3d.Vec3 { return c.Orientation.Column(2) }

// Translate moves the camera by d in world space.
func (c *Camera) Translate(d math3d.Vec3) {
	c.Position = c.Position.Add(d)
}

// Rotate turns the orientation by Euler angles in degrees.
func (c *Camera) Rotate(xDeg, yDeg, zDeg float64) {
	c.Orientation = math3d.Rotate3(xDeg, yDeg, zDeg).Mul(c.Orientation)
}

// RotatePosition orbits the camera position about the world origin. The
// orientation is left alone; follow with LookAt to keep a target in view.
func (c *Camera) RotatePosition(xDeg, yDeg, zDeg float64) {
	c.Position = math3d.Rotate3(xDeg, yDeg, zDeg).MulVec3(c.Position)
}

// lookAtEpsilon is the smallest |up x forward| LookAt accepts before it
// falls back to the current right axis.
const lookAtEpsilon = 1e-9

// LookAt rebuilds the orientation so the camera faces target with world up
// as the reference. Looking straight up or down keeps the current right axis
// (or world X when that is parallel too), so the basis never degenerates.
func (c *Camera) LookAt(target math3d.Vec3) {
	forward := c.Position.Sub(target).Normalize()
	right := math3d.Up().Cross(forward)
	if right.Len() < lookAtEpsilon {
		ref := c.Right()
		right = ref.Sub(forward.Scale(ref.Dot(forward)))
		if right.Len() < lookAtEpsilon {
			right = math3d.V3(1, 0, 0).Sub(forward.Scale(forward.X))
		}
	}
	right = right.Normalize()
	up := forward.Cross(right).Normalize()
	c.Orientation = math3d.Mat3FromColumns(right, up, forward)
}

// ToCamera expresses a world point in camera axes relative to the camera.
func (c *Camera) ToCamera(p math3d.Vec3) math3d.Vec3 {
	return c.Orientation.LeftMul(p.Sub(c.Position))
}

// Project maps a world point onto a width x height canvas. Depth is the
// inverse distance along the view axis, so nearer points have larger depth.
// ok is false for points on or behind the camera plane.
func (c *Camera) Project(p math3d.Vec3, width, height int) (pt CanvasPoint, ok bool) {
	v := c.ToCamera(p)
	x := v.X * c.PixelScale
	y := -v.Y * c.PixelScale
	z := -v.Z
	if z <= 0 {
		return CanvasPoint{}, false
	}
	return CanvasPoint{
		X:     x*c.FocalLength/z + float64(width)/2,
		Y:     y*c.FocalLength/z + float64(height)/2,
		Depth: 1 / z,
	}, true
}

// PrimaryRay returns the normalized world-space direction through canvas
// position (x, y). It inverts Project: a point along the ray projects back
// onto (x, y). The orientation is orthonormal, so mapping camera axes back to
// world space is a plain matrix product.
func (c *Camera) PrimaryRay(x, y float64, width, height int) math3d.Vec3 {
	v := math3d.V3(
		(x-float64(width)/2)/c.PixelScale,
		-(y-float64(height)/2)/c.PixelScale,
		-c.FocalLength,
	)
	return c.Orientation.MulVec3(v).Normalize()
}
