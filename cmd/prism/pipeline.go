package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taigrr/prism/pkg/models"
	"github.com/taigrr/prism/pkg/render"
	"github.com/taigrr/prism/pkg/trace"
)

// Mode selects the rendering pipeline.
type Mode int

const (
	ModeRaster Mode = iota
	ModeTrace
	ModeWire
)

func (m Mode) String() string {
	switch m {
	case ModeRaster:
		return "raster"
	case ModeTrace:
		return "trace"
	case ModeWire:
		return "wire"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func parseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeRaster, ModeTrace, ModeWire} {
		if m.String() == s {
			return m, nil
		}
	}
	return ModeRaster, fmt.Errorf("unknown mode %q (use raster, trace or wire)", s)
}

// toggled swaps raster and trace. Wireframe switches back to raster.
func (m Mode) toggled() Mode {
	if m == ModeRaster {
		return ModeTrace
	}
	return ModeRaster
}

// pipeline owns one renderer per mode for a setup and draws frames into a
// framebuffer.
type pipeline struct {
	setup  *models.Setup
	fb     *render.Framebuffer
	raster *render.Rasterizer
	wire   *render.Wireframe
	tracer *trace.Tracer
}

func newPipeline(s *models.Setup) *pipeline {
	cfg := s.Config
	return &pipeline{
		setup:  s,
		fb:     render.NewFramebuffer(cfg.Width, cfg.Height),
		raster: render.NewRasterizer(cfg),
		wire:   render.NewWireframe(cfg),
		tracer: trace.New(cfg, s.Scene, s.Light),
	}
}

// resize changes the canvas of every renderer.
func (p *pipeline) resize(width, height int) {
	p.setup.Config.Width, p.setup.Config.Height = width, height
	p.fb.Resize(width, height)
	p.raster.Resize(width, height)
	p.wire.Resize(width, height)
	p.tracer.Resize(width, height)
}

// draw renders one frame in mode. The framebuffer starts opaque black.
func (p *pipeline) draw(ctx context.Context, mode Mode) error {
	start := time.Now()
	p.fb.Clear(0xff000000)

	cam := p.setup.Camera
	switch mode {
	case ModeTrace:
		if err := p.tracer.Render(ctx, cam, p.fb); err != nil {
			return err
		}
		st := p.tracer.Stats
		slog.DebugContext(ctx, "traced frame",
			"elapsed", time.Since(start),
			"primary_rays", st.PrimaryRays,
			"rays", st.Rays,
			"shadow_rays", st.ShadowRays)
	case ModeWire:
		p.wire.Render(p.setup.Scene, cam, p.fb)
		p.logStats(ctx, "wireframe frame", start, p.wire.Stats)
	default:
		p.raster.Render(p.setup.Scene, cam, p.fb)
		p.logStats(ctx, "rasterized frame", start, p.raster.Stats)
	}
	return nil
}

func (p *pipeline) logStats(ctx context.Context, msg string, start time.Time, st render.Stats) {
	slog.DebugContext(ctx, msg,
		"elapsed", time.Since(start),
		"triangles", st.Triangles,
		"culled", st.Culled,
		"drawn", st.Drawn)
}
