package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

func animateCmd(opts *options) *cobra.Command {
	var (
		mode   string
		dir    string
		format string
	)
	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Play the scene's animation and write every frame",
		Long: "Play the scene's animation and write every frame as a numbered " +
			"image. A switch step toggles between rasterizing and ray tracing.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			m, err := parseMode(mode)
			if err != nil {
				return err
			}
			setup, err := opts.load(ctx)
			if err != nil {
				return err
			}
			tl := setup.Timeline
			if tl == nil {
				return errors.New("scene has no animation section")
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create frame directory: %w", err)
			}

			start := time.Now()
			p := newPipeline(setup)
			total := tl.Frames()
			for !tl.Done() {
				frame := tl.Frame()
				if tl.Step() {
					m = m.toggled()
					slog.InfoContext(ctx, "switched pipeline", "frame", frame, "mode", m)
				}
				if err := p.draw(ctx, m); err != nil {
					return err
				}
				path := filepath.Join(dir, fmt.Sprintf("frame-%04d.%s", frame, format))
				if err := p.fb.Save(path); err != nil {
					return err
				}
				slog.DebugContext(ctx, "wrote frame", "frame", frame, "of", total, "path", path)
			}
			slog.InfoContext(ctx, "animation done",
				"scene", opts.sceneName(),
				"frames", total,
				"tracks", tl.Tracks(),
				"elapsed", time.Since(start),
				"dir", dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "raster", "starting pipeline: raster, trace or wire")
	cmd.Flags().StringVarP(&dir, "dir", "d", "frames", "directory for the numbered frames")
	cmd.Flags().StringVarP(&format, "format", "f", "ppm", "frame format: png, bmp or ppm")
	return cmd
}
