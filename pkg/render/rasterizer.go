package render

import (
	"math"

	"github.com/taigrr/prism/pkg/scene"
)

// Stats counts what the last frame did with each triangle.
type Stats struct {
	Triangles int // Triangles considered
	Culled    int // Rejected for leaving the canvas or crossing the camera plane
	Drawn     int // Triangles passed to the fill
}

// Rasterizer fills projected triangles scanline by scanline, testing each
// pixel against a shared depth buffer.
type Rasterizer struct {
	cfg   Config
	depth *DepthBuffer
	Stats Stats
}

// NewRasterizer creates a rasterizer for cfg's canvas size.
func NewRasterizer(cfg Config) *Rasterizer {
	return &Rasterizer{
		cfg:   cfg,
		depth: NewDepthBuffer(cfg.Width, cfg.Height),
	}
}

// Width returns the canvas width.
func (r *Rasterizer) Width() int { return r.cfg.Width }

// Height returns the canvas height.
func (r *Rasterizer) Height() int { return r.cfg.Height }

// Resize changes the canvas size and clears the depth buffer.
func (r *Rasterizer) Resize(width, height int) {
	r.cfg.Width, r.cfg.Height = width, height
	r.depth.Resize(width, height)
}

// ClearDepth resets the depth buffer. Render calls it at the start of every
// frame; callers driving the fills directly call it themselves.
func (r *Rasterizer) ClearDepth() {
	r.depth.Clear()
}

// Render draws every triangle in the scene as seen by cam. Triangles with a
// vertex off the canvas or behind the camera are dropped whole. Objects with
// a texture use the textured fill; the rest are drawn in their base colour.
func (r *Rasterizer) Render(scn *scene.Scene, cam *Camera, sink PixelSink) {
	r.depth.Clear()
	r.Stats = Stats{}
	w, h := r.cfg.Width, r.cfg.Height

	for _, obj := range scn.Objects {
		for i := range obj.Triangles {
			tri := &obj.Triangles[i]
			r.Stats.Triangles++

			ct, ok := cam.ProjectTriangle(tri.Vertices, w, h)
			if !ok || !ct.Inside(w, h) {
				r.Stats.Culled++
				continue
			}

			if obj.Texture != nil {
				for j := range ct {
					ct[j].Tex = tri.UV[j]
				}
				r.FillTexturedTriangle(sink, ct, obj.Texture)
			} else {
				r.FillTriangle(sink, ct, tri.Color.Packed())
			}
			r.Stats.Drawn++
		}
	}
}

// FillTriangle fills t with a solid colour. A pixel is written when its
// interpolated depth is greater than or equal to the stored depth.
func (r *Rasterizer) FillTriangle(sink PixelSink, t CanvasTriangle, argb uint32) {
	r.scan(t, func(y int, left, right CanvasPoint) {
		x0, x1 := r.span(left.X, right.X)
		xRange := right.X - left.X
		for x := x0; x <= x1; x++ {
			p := proportion(float64(x), left.X, xRange)
			depth := left.Depth + (right.Depth-left.Depth)*p
			if r.depth.Test(x, y, depth) {
				sink.SetPixel(x, y, argb)
			}
		}
	})
}

// FillTexturedTriangle fills t from tex. Texel coordinates are interpolated
// linearly in canvas space, without perspective correction, and sampled by
// nearest texel.
func (r *Rasterizer) FillTexturedTriangle(sink PixelSink, t CanvasTriangle, tex *scene.Texture) {
	r.scan(t, func(y int, left, right CanvasPoint) {
		x0, x1 := r.span(left.X, right.X)
		xRange := right.X - left.X
		for x := x0; x <= x1; x++ {
			p := proportion(float64(x), left.X, xRange)
			depth := left.Depth + (right.Depth-left.Depth)*p
			if !r.depth.Test(x, y, depth) {
				continue
			}
			uv := left.Tex.Lerp(right.Tex, p)
			sink.SetPixel(x, y, tex.At(uv.X, uv.Y))
		}
	})
}

// scan sorts t by y and walks its rows, calling fn with the left and right
// ends of each row. The triangle is split at the point on the v0-v2 edge
// level with v1: rows above v1 are bounded by v0-v1, rows below by v1-v2.
// Which side the short edges lie on is decided once from that split point.
func (r *Rasterizer) scan(t CanvasTriangle, fn func(y int, left, right CanvasPoint)) {
	sortByY(&t)
	v0, v1, v2 := t[0], t[1], t[2]
	if v2.Y == v0.Y {
		return
	}

	long := edge{v0, v2}
	level := long.at(v1.Y)
	shortLeft := v1.X < level.X

	yStart := max(0, int(math.Ceil(v0.Y)))
	yEnd := min(r.cfg.Height-1, int(math.Floor(v2.Y)))
	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)
		short := edge{v0, v1}
		if fy >= v1.Y && v2.Y != v1.Y {
			short = edge{v1, v2}
		}
		a, b := short.at(fy), long.at(fy)
		if shortLeft {
			fn(y, a, b)
		} else {
			fn(y, b, a)
		}
	}
}

// span returns the integer columns covered by [left, right], clamped to the
// canvas.
func (r *Rasterizer) span(left, right float64) (x0, x1 int) {
	x0 = max(0, int(math.Ceil(left)))
	x1 = min(r.cfg.Width-1, int(math.Floor(right)))
	return x0, x1
}

// proportion is how far x lies across a row starting at left. Zero-width rows
// use the right end.
func proportion(x, left, xRange float64) float64 {
	if xRange == 0 {
		return 1
	}
	return (x - left) / xRange
}

// edge is one side of a canvas triangle.
type edge struct {
	from, to CanvasPoint
}

// at interpolates the edge at row y. A horizontal edge returns its end.
func (e edge) at(y float64) CanvasPoint {
	dy := e.to.Y - e.from.Y
	if dy == 0 {
		return e.to
	}
	t := (y - e.from.Y) / dy
	return CanvasPoint{
		X:     e.from.X + (e.to.X-e.from.X)*t,
		Y:     y,
		Depth: e.from.Depth + (e.to.Depth-e.from.Depth)*t,
		Tex:   e.from.Tex.Lerp(e.to.Tex, t),
	}
}

func sortByY(t *CanvasTriangle) {
	if t[1].Y < t[0].Y {
		t[0], t[1] = t[1], t[0]
	}
	if t[2].Y < t[1].Y {
		t[1], t[2] = t[2], t[1]
	}
	if t[1].Y < t[0].Y {
		t[0], t[1] = t[1], t[0]
	}
}
