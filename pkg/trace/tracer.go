package trace

import (
	"context"

	"pgregory.net/rand"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/scene"
)

// Stats counts the rays cast during the last frame.
type Stats struct {
	PrimaryRays int
	Rays        int // Every ray passed to CastRay, primary included
	ShadowRays  int
}

// Tracer renders a scene by casting one primary ray per pixel. The scene
// and light are read, never written, while a frame is in progress.
type Tracer struct {
	cfg   render.Config
	scene *scene.Scene
	light *scene.Light
	rng   *rand.Rand
	Stats Stats
}

// New creates a tracer. The light's sample grid falls back to the config's
// when it has none of its own.
func New(cfg render.Config, scn *scene.Scene, light *scene.Light) *Tracer {
	return &Tracer{
		cfg:   cfg,
		scene: scn,
		light: light,
		rng:   rand.New(cfg.Seed),
	}
}

// Resize changes the canvas size.
func (t *Tracer) Resize(width, height int) {
	t.cfg.Width, t.cfg.Height = width, height
}

// Render traces every pixel of the canvas into sink. The jitter sequence is
// reseeded per frame, so a static scene renders identically every time.
// Cancellation is checked between rows.
func (t *Tracer) Render(ctx context.Context, cam *render.Camera, sink render.PixelSink) error {
	t.rng = rand.New(t.cfg.Seed)
	t.Stats = Stats{}
	w, h := t.cfg.Width, t.cfg.Height

	for y := range h {
		if err := ctx.Err(); err != nil {
			return err
		}
		for x := range w {
			dir := cam.PrimaryRay(float64(x), float64(y), w, h)
			t.Stats.PrimaryRays++
			c := t.CastRay(cam.Position, dir, 0, scene.NoObject)
			sink.SetPixel(x, y, c.Packed())
		}
	}
	return nil
}

// CastRay returns the colour seen along a ray, skipping the triangles of
// exclude. depth is the number of reflections or refractions already
// followed. Rays that hit nothing are black.
func (t *Tracer) CastRay(origin, dir math3d.Vec3, depth int, exclude scene.ObjectID) scene.Color {
	t.Stats.Rays++
	hit, ok := Intersect(t.scene, origin, dir, exclude)
	if !ok {
		return scene.Black
	}
	return t.Shade(dir, hit, depth)
}

// visibility samples the light from p, using the config's grid for area
// lights without one.
func (t *Tracer) visibility(p math3d.Vec3, exclude scene.ObjectID) float64 {
	l := t.light
	if l.Kind == scene.AreaLight && (l.SamplesU <= 0 || l.SamplesV <= 0) {
		cp := *l
		cp.SamplesU, cp.SamplesV = t.cfg.AreaSamplesU, t.cfg.AreaSamplesV
		l = &cp
	}
	if l.Kind == scene.AreaLight {
		t.Stats.ShadowRays += max(1, l.SamplesU) * max(1, l.SamplesV)
	} else {
		t.Stats.ShadowRays++
	}
	return Visibility(t.scene, l, p, exclude, t.cfg.ShadowBias, t.rng)
}
