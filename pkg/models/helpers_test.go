package models

import (
	"image"
	"image/png"
	"math"
	"os"
	"strconv"
	"testing"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/scene"
)

func writePNG(path string, tex *scene.Texture) error {
	img := image.NewRGBA(image.Rect(0, 0, tex.Width, tex.Height))
	for y := range tex.Height {
		for x := range tex.Width {
			img.SetRGBA(x, y, scene.Unpack(tex.GetPixel(x, y)).ToRGBA())
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
func itoa(i int) string     { return strconv.Itoa(i) }

func near(a, b math3d.Vec3) bool {
	return a.Distance(b) < 1e-9
}

func assertNear(t *testing.T, what string, got, want math3d.Vec3) {
	t.Helper()
	if !near(got, want) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}

func deg(d float64) float64 { return d * math.Pi / 180 }
