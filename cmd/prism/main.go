// prism - Whitted ray tracer and scanline rasterizer
// Render triangle-mesh scenes to images, animate them frame by frame, or
// explore them live in the terminal.
//
// Usage:
//
//	prism render  [--scene file.yaml] [--mode raster|trace|wire] [-o out.png]
//	prism animate [--scene file.yaml] [--mode raster|trace] [--dir frames]
//	prism view    [--scene file.yaml]
//
// Without --scene the built-in Cornell box is used.
//
// View controls:
//
//	Arrows      - Move the camera left/right/up/down
//	F/B         - Move the camera forward/back
//	W/S         - Pitch the camera
//	A/D         - Yaw the camera
//	O/P         - Roll the camera
//	H/L, J/K    - Orbit about the origin and face it
//	R           - Toggle rasterizer / ray tracer
//	X           - Toggle wireframe
//	1/2         - Point / area light
//	Space       - Advance the animation one frame
//	C           - Save a snapshot (PPM, BMP and PNG)
//	Q, Esc      - Quit
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/prism/pkg/models"
	"github.com/taigrr/prism/pkg/render"
)

var version = "dev"

// options are the flags shared by every subcommand.
type options struct {
	scenePath  string
	configPath string
	width      int
	height     int
	maxDepth   int
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, rootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "prism",
		Short: "Ray trace and rasterize triangle-mesh scenes",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogging(opts.logLevel)
		},
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.scenePath, "scene", "s", "", "YAML scene file (default: the Cornell box)")
	pf.StringVarP(&opts.configPath, "config", "c", "", "YAML render config, applied before the scene's render section")
	pf.IntVar(&opts.width, "width", 0, "canvas width in pixels (overrides the scene)")
	pf.IntVar(&opts.height, "height", 0, "canvas height in pixels (overrides the scene)")
	pf.IntVar(&opts.maxDepth, "max-depth", -1, "reflection and refraction recursion limit (overrides the scene)")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(renderCmd(opts), animateCmd(opts), viewCmd(opts))
	return root
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// load builds the scene and applies the command-line overrides.
func (o *options) load(ctx context.Context) (*models.Setup, error) {
	cfg := render.DefaultConfig()
	if o.configPath != "" {
		var err error
		if cfg, err = render.LoadConfig(o.configPath); err != nil {
			return nil, err
		}
	}

	var setup *models.Setup
	if o.scenePath == "" {
		setup = models.CornellBox(cfg)
	} else {
		var err error
		setup, err = models.LoadSceneConfig(o.scenePath, cfg)
		if err != nil {
			return nil, err
		}
	}

	if o.width > 0 {
		setup.Config.Width = o.width
	}
	if o.height > 0 {
		setup.Config.Height = o.height
	}
	if o.maxDepth >= 0 {
		setup.Config.MaxDepth = o.maxDepth
	}
	if err := setup.Config.Validate(); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "scene loaded",
		"scene", o.sceneName(),
		"objects", len(setup.Scene.Objects),
		"triangles", setup.Scene.TriangleCount(),
		"light", setup.Light.Kind,
		"animated", setup.Timeline != nil)
	return setup, nil
}

func (o *options) sceneName() string {
	if o.scenePath == "" {
		return "cornell"
	}
	return o.scenePath
}
