package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/taigrr/prism/pkg/ppm"
)

// Encode writes img in the given format: "png", "bmp" or "ppm".
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "ppm":
		return ppm.Encode(w, img)
	}
	return fmt.Errorf("unsupported image format %q", format)
}

// Save writes the framebuffer to path, choosing the format from the file
// extension.
func (fb *Framebuffer) Save(path string) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		return fmt.Errorf("no image format in %q", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	if err := Encode(f, fb.ToImage(), format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
