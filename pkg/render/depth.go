package render

import "math"

// DepthBuffer stores one inverse depth per pixel. Larger values are nearer.
type DepthBuffer struct {
	Width  int
	Height int
	values []float64
}

// NewDepthBuffer creates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{}
	d.Resize(width, height)
	return d
}

// Resize reallocates the buffer if the size changed and clears it.
func (d *DepthBuffer) Resize(width, height int) {
	if width != d.Width || height != d.Height || d.values == nil {
		d.Width, d.Height = width, height
		d.values = make([]float64, width*height)
	}
	d.Clear()
}

// Clear resets every entry to the lowest representable depth so any surface
// wins the first comparison.
func (d *DepthBuffer) Clear() {
	// Use copy-doubling for faster clearing
	n := len(d.values)
	if n == 0 {
		return
	}
	d.values[0] = -math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(d.values[i:], d.values[:i])
	}
}

// At returns the stored depth at (x, y). Positions outside the buffer read
// as cleared.
func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return -math.MaxFloat64
	}
	return d.values[y*d.Width+x]
}

// Test stores depth at (x, y) and reports true if it is greater than or
// equal to the stored value. Equal depths pass so that triangles sharing an
// edge leave no seam.
func (d *DepthBuffer) Test(x, y int, depth float64) bool {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return false
	}
	i := y*d.Width + x
	if depth >= d.values[i] {
		d.values[i] = depth
		return true
	}
	return false
}
