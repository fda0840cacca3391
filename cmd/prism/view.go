package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/models"
	"github.com/taigrr/prism/pkg/scene"
)

// Interactive step sizes.
const (
	moveStep   = 0.25
	rotateStep = 1.0
	orbitStep  = 2.0
)

var hudStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#E8E8F0")).
	Background(lipgloss.Color("#1E1E28")).
	Padding(0, 1)

func viewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Explore the scene interactively in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			setup, err := opts.load(ctx)
			if err != nil {
				return err
			}
			return runView(ctx, setup, opts.sceneName())
		},
	}
}

// viewer is the state shared by the event loop and the frame loop.
type viewer struct {
	mu        sync.Mutex
	pipe      *pipeline
	name      string
	mode      Mode
	status    string
	snapshots int
	frameTime time.Duration
	cols      int
	rows      int
}

func runView(ctx context.Context, setup *models.Setup, name string) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	if err := term.Resize(width, height); err != nil {
		return fmt.Errorf("resize terminal: %w", err)
	}
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			slog.Warn("shutdown terminal", "error", err)
		}
	}()

	v := &viewer{pipe: newPipeline(setup), name: name}
	v.resize(width, height)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	redraw := make(chan struct{}, 1)
	redraw <- struct{}{}
	request := func() {
		select {
		case redraw <- struct{}{}:
		default:
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-term.Events():
				switch ev := ev.(type) {
				case uv.WindowSizeEvent:
					term.Erase()
					if err := term.Resize(ev.Width, ev.Height); err != nil {
						return fmt.Errorf("resize terminal: %w", err)
					}
					v.mu.Lock()
					v.resize(ev.Width, ev.Height)
					v.mu.Unlock()
					request()
				case uv.KeyPressEvent:
					if ev.MatchString("q", "escape", "ctrl+c") {
						cancel()
						return nil
					}
					v.mu.Lock()
					changed := v.handleKey(ctx, ev)
					v.mu.Unlock()
					if changed {
						request()
					}
				}
			}
		}
	})
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-redraw:
			}
			v.mu.Lock()
			err := v.drawFrame(ctx, term)
			v.mu.Unlock()
			if errors.Is(err, context.Canceled) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	})
	return g.Wait()
}

// resize fits the framebuffer to the terminal, keeping the bottom row for
// the status line. Each cell shows two pixel rows.
func (v *viewer) resize(cols, rows int) {
	v.cols, v.rows = cols, rows
	v.pipe.resize(max(cols, 1), max(rows-1, 1)*2)
}

// handleKey applies a key press and reports whether a redraw is needed.
func (v *viewer) handleKey(ctx context.Context, ev uv.KeyPressEvent) bool {
	s := v.pipe.setup
	cam := s.Camera
	orbit := func(x, y float64) {
		cam.RotatePosition(x, y, 0)
		cam.LookAt(math3d.Zero3())
	}

	switch {
	case ev.MatchString("left"):
		cam.Translate(math3d.V3(-moveStep, 0, 0))
	case ev.MatchString("right"):
		cam.Translate(math3d.V3(moveStep, 0, 0))
	case ev.MatchString("up"):
		cam.Translate(math3d.V3(0, moveStep, 0))
	case ev.MatchString("down"):
		cam.Translate(math3d.V3(0, -moveStep, 0))
	case ev.MatchString("f"):
		cam.Translate(math3d.V3(0, 0, -moveStep))
	case ev.MatchString("b"):
		cam.Translate(math3d.V3(0, 0, moveStep))
	case ev.MatchString("w"):
		cam.Rotate(rotateStep, 0, 0)
	case ev.MatchString("s"):
		cam.Rotate(-rotateStep, 0, 0)
	case ev.MatchString("a"):
		cam.Rotate(0, rotateStep, 0)
	case ev.MatchString("d"):
		cam.Rotate(0, -rotateStep, 0)
	case ev.MatchString("o"):
		cam.Rotate(0, 0, rotateStep)
	case ev.MatchString("p"):
		cam.Rotate(0, 0, -rotateStep)
	case ev.MatchString("h"):
		orbit(0, -orbitStep)
	case ev.MatchString("l"):
		orbit(0, orbitStep)
	case ev.MatchString("j"):
		orbit(orbitStep, 0)
	case ev.MatchString("k"):
		orbit(-orbitStep, 0)
	case ev.MatchString("r"):
		v.mode = v.mode.toggled()
		v.status = ""
	case ev.MatchString("x"):
		if v.mode == ModeWire {
			v.mode = ModeRaster
		} else {
			v.mode = ModeWire
		}
		v.status = ""
	case ev.MatchString("1"):
		s.Light.SetKind(scene.PointLight)
		v.status = "point light"
	case ev.MatchString("2"):
		s.Light.SetKind(scene.AreaLight)
		v.status = "area light"
	case ev.MatchString("space"):
		tl := s.Timeline
		if tl == nil || tl.Done() {
			v.status = "no animation left"
			return true
		}
		if tl.Step() {
			v.mode = v.mode.toggled()
		}
		v.status = fmt.Sprintf("frame %d/%d", tl.Frame(), tl.Frames())
	case ev.MatchString("c"):
		v.status = v.snapshot(ctx)
	default:
		return false
	}
	return true
}

// snapshot saves the current frame in every supported format and returns a
// status message.
func (v *viewer) snapshot(ctx context.Context) string {
	v.snapshots++
	base := fmt.Sprintf("snapshot-%03d", v.snapshots)
	for _, ext := range []string{"ppm", "bmp", "png"} {
		path := base + "." + ext
		if err := v.pipe.fb.Save(path); err != nil {
			slog.ErrorContext(ctx, "save snapshot", "path", path, "error", err)
			return "snapshot failed"
		}
	}
	slog.InfoContext(ctx, "saved snapshot", "base", base)
	return "saved " + base
}

func (v *viewer) drawFrame(ctx context.Context, scr *uv.Terminal) error {
	start := time.Now()
	if err := v.pipe.draw(ctx, v.mode); err != nil {
		return err
	}
	v.frameTime = time.Since(start)

	v.pipe.fb.Draw(scr, uv.Rect(0, 0, v.cols, max(v.rows-1, 0)))
	uv.NewStyledString(v.hud()).Draw(scr, uv.Rect(0, v.rows-1, v.cols, 1))
	if err := scr.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

func (v *viewer) hud() string {
	s := v.pipe.setup
	text := fmt.Sprintf("%s │ %s │ %d tris │ %s light │ %v",
		v.name, v.mode, s.Scene.TriangleCount(), s.Light.Kind, v.frameTime.Round(time.Millisecond))
	if v.status != "" {
		text += " │ " + v.status
	}
	return hudStyle.Width(v.cols).MaxHeight(1).Render(text)
}
