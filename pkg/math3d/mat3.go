package math3d

import "math"

// Mat3 is a 3x3 matrix stored in column-major order.
//
// Memory layout (indices):
// | 0  3  6 |
// | 1  4  7 |
// | 2  5  8 |
//
// A camera orientation keeps its right, up and forward axes in columns 0, 1
// and 2.
type Mat3 [9]float64

// Identity3 returns the 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromColumns builds a matrix whose columns are a, b and c.
func Mat3FromColumns(a, b, c Vec3) Mat3 {
	return Mat3{
		a.X, a.Y, a.Z,
		b.X, b.Y, b.Z,
		c.X, c.Y, c.Z,
	}
}

// Rotate3 builds the rotation for Euler angles in degrees, composed as X·Y·Z.
// Each factor is laid out column by column, so rotating a point by +y
// degrees about Y turns +X towards +Z.
func Rotate3(xDeg, yDeg, zDeg float64) Mat3 {
	x, y, z := Identity3(), Identity3(), Identity3()
	if xDeg != 0 {
		c, s := cosSinDeg(xDeg)
		x = Mat3{
			1, 0, 0,
			0, c, -s,
			0, s, c,
		}
	}
	if yDeg != 0 {
		c, s := cosSinDeg(yDeg)
		y = Mat3{
			c, 0, s,
			0, 1, 0,
			-s, 0, c,
		}
	}
	if zDeg != 0 {
		c, s := cosSinDeg(zDeg)
		z = Mat3{
			c, s, 0,
			-s, c, 0,
			0, 0, 1,
		}
	}
	return x.Mul(y).Mul(z)
}

// Scale3 builds a diagonal scaling matrix.
func Scale3(x, y, z float64) Mat3 {
	return Mat3{
		x, 0, 0,
		0, y, 0,
		0, 0, z,
	}
}

func cosSinDeg(deg float64) (c, s float64) {
	rad := deg * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}

// Column returns column i (0, 1 or 2).
func (m Mat3) Column(i int) Vec3 {
	return Vec3{m[i*3], m[i*3+1], m[i*3+2]}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat3) Mul(b Mat3) Mat3 {
	var m Mat3
	for col := range 3 {
		for row := range 3 {
			m[row+col*3] = a[row]*b[col*3] + a[row+3]*b[col*3+1] + a[row+6]*b[col*3+2]
		}
	}
	return m
}

// MulVec3 returns the column vector product m·v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// LeftMul returns the row vector product v·m, i.e. the dot product of v with
// each column. For an orientation basis this expresses v in camera axes.
func (m Mat3) LeftMul(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z,
		m[3]*v.X + m[4]*v.Y + m[5]*v.Z,
		m[6]*v.X + m[7]*v.Y + m[8]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Determinant returns the determinant of the matrix.
func (m Mat3) Determinant() float64 {
	return m[0]*(m[4]*m[8]-m[7]*m[5]) -
		m[3]*(m[1]*m[8]-m[7]*m[2]) +
		m[6]*(m[1]*m[5]-m[4]*m[2])
}

// Inverse returns the inverse of the matrix.
// Returns identity if the matrix is singular (det=0).
func (m Mat3) Inverse() Mat3 {
	det := m.Determinant()
	if det == 0 {
		return Identity3()
	}
	inv := 1 / det
	return Mat3{
		(m[4]*m[8] - m[7]*m[5]) * inv,
		(m[7]*m[2] - m[1]*m[8]) * inv,
		(m[1]*m[5] - m[4]*m[2]) * inv,
		(m[6]*m[5] - m[3]*m[8]) * inv,
		(m[0]*m[8] - m[6]*m[2]) * inv,
		(m[3]*m[2] - m[0]*m[5]) * inv,
		(m[3]*m[7] - m[6]*m[4]) * inv,
		(m[6]*m[1] - m[0]*m[7]) * inv,
		(m[0]*m[4] - m[3]*m[1]) * inv,
	}
}
