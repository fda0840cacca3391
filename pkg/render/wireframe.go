package render

import (
	"math"

	"github.com/taigrr/prism/pkg/scene"
)

// Wireframe draws the edges of every triangle with no depth test.
type Wireframe struct {
	cfg   Config
	Stats Stats
}

// NewWireframe creates a wireframe renderer for cfg's canvas size.
func NewWireframe(cfg Config) *Wireframe {
	return &Wireframe{cfg: cfg}
}

// Resize changes the canvas size.
func (w *Wireframe) Resize(width, height int) {
	w.cfg.Width, w.cfg.Height = width, height
}

// Render strokes every triangle in the scene in its base colour, with the
// same whole-triangle culling as the rasterizer.
func (w *Wireframe) Render(scn *scene.Scene, cam *Camera, sink PixelSink) {
	w.Stats = Stats{}
	for _, obj := range scn.Objects {
		for i := range obj.Triangles {
			tri := &obj.Triangles[i]
			w.Stats.Triangles++
			ct, ok := cam.ProjectTriangle(tri.Vertices, w.cfg.Width, w.cfg.Height)
			if !ok || !ct.Inside(w.cfg.Width, w.cfg.Height) {
				w.Stats.Culled++
				continue
			}
			w.StrokeTriangle(sink, ct, tri.Color.Packed())
			w.Stats.Drawn++
		}
	}
}

// StrokeTriangle draws the three edges of t.
func (w *Wireframe) StrokeTriangle(sink PixelSink, t CanvasTriangle, argb uint32) {
	for i := range 3 {
		a, b := t[i], t[(i+1)%3]
		drawLine(sink, w.cfg.Width, w.cfg.Height,
			int(math.Round(a.X)), int(math.Round(a.Y)),
			int(math.Round(b.X)), int(math.Round(b.Y)), argb)
	}
}
