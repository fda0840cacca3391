package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

func renderCmd(opts *options) *cobra.Command {
	var (
		mode   string
		output string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a single frame to an image file",
		Long: "Render a single frame to an image file. The format follows the " +
			"extension of --output: .png, .bmp or .ppm.",
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

			start := time.Now()
			p := newPipeline(setup)
			if err := p.draw(ctx, m); err != nil {
				return err
			}
			if err := p.fb.Save(output); err != nil {
				return err
			}
			slog.InfoContext(ctx, "rendered",
				"scene", opts.sceneName(),
				"mode", m,
				"width", p.fb.Width,
				"height", p.fb.Height,
				"elapsed", time.Since(start),
				"output", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "trace", "pipeline: raster, trace or wire")
	cmd.Flags().StringVarP(&output, "output", "o", "prism.png", "output image (.png, .bmp or .ppm)")
	return cmd
}
