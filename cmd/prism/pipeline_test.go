package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/prism/pkg/models"
	"github.com/taigrr/prism/pkg/render"
)

func smallCornell() *models.Setup {
	cfg := render.DefaultConfig()
	cfg.Width, cfg.Height = 48, 36
	cfg.PixelScale = 100 * 48.0 / 640
	cfg.MaxDepth = 3
	return models.CornellBox(cfg)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"raster", ModeRaster, false},
		{"trace", ModeTrace, false},
		{"wire", ModeWire, false},
		{"pathtrace", ModeRaster, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestModeToggled(t *testing.T) {
	if got := ModeRaster.toggled(); got != ModeTrace {
		t.Errorf("raster toggles to %v, want trace", got)
	}
	if got := ModeTrace.toggled(); got != ModeRaster {
		t.Errorf("trace toggles to %v, want raster", got)
	}
	if got := ModeWire.toggled(); got != ModeRaster {
		t.Errorf("wire toggles to %v, want raster", got)
	}
}

func TestPipelineDraw(t *testing.T) {
	for _, mode := range []Mode{ModeRaster, ModeTrace, ModeWire} {
		t.Run(mode.String(), func(t *testing.T) {
			p := newPipeline(smallCornell())
			if err := p.draw(context.Background(), mode); err != nil {
				t.Fatalf("draw: %v", err)
			}
			lit := 0
			for _, px := range p.fb.Pixels {
				if px != 0xff000000 {
					lit++
				}
			}
			if lit == 0 {
				t.Error("frame is entirely black")
			}
		})
	}
}

func TestPipelineResize(t *testing.T) {
	p := newPipeline(smallCornell())
	p.resize(20, 10)
	if err := p.draw(context.Background(), ModeTrace); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if p.fb.Width != 20 || p.fb.Height != 10 {
		t.Errorf("framebuffer = %dx%d, want 20x10", p.fb.Width, p.fb.Height)
	}
	if got := p.tracer.Stats.PrimaryRays; got != 200 {
		t.Errorf("PrimaryRays = %d, want 200", got)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "cornell.ppm")

	root := rootCmd()
	root.SetArgs([]string{"render", "--width", "32", "--height", "24", "--max-depth", "2", "--mode", "raster", "-o", out})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	// P6 header plus three bytes per pixel.
	if info.Size() < 32*24*3 {
		t.Errorf("output is %d bytes, want at least %d", info.Size(), 32*24*3)
	}
}

func TestAnimateCommand(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "orbit.yaml")
	src := `
preset: cornell
render: {width: 16, height: 12}
animation:
  tracks:
    - target: camera
      look_at: [0, 0, 0]
      steps:
        - {op: rotate_position, by: [0, 10, 0], seconds: 0.3}
    - steps:
        - {op: wait, seconds: 0.1}
        - {op: switch}
`
	if err := os.WriteFile(scenePath, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	frames := filepath.Join(dir, "frames")
	root := rootCmd()
	root.SetArgs([]string{"animate", "--scene", scenePath, "--dir", frames, "--format", "png"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("animate: %v", err)
	}
	got, err := filepath.Glob(filepath.Join(frames, "frame-*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("wrote %d frames, want 3", len(got))
	}
}

func TestAnimateWithoutAnimation(t *testing.T) {
	root := rootCmd()
	root.SetArgs([]string{"animate", "--width", "8", "--height", "8", "--dir", t.TempDir()})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("expected error for a scene without animation")
	}
}
