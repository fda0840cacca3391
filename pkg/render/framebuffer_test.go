package render

import (
	"image"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/prism/pkg/scene"
)

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.SetPixel(-1, 0, 0xffffffff)
	fb.SetPixel(4, 0, 0xffffffff)
	fb.SetPixel(0, 3, 0xffffffff)
	for i, p := range fb.Pixels {
		if p != 0 {
			t.Fatalf("pixel %d written by out of bounds SetPixel", i)
		}
	}
	if got := fb.GetPixel(10, 10); got != 0 {
		t.Errorf("GetPixel out of bounds = %#x, want 0", got)
	}
}

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(7, 5)
	fb.Clear(0xff102030)
	for i, p := range fb.Pixels {
		if p != 0xff102030 {
			t.Fatalf("pixel %d = %#x after Clear", i, p)
		}
	}
}

func TestDrawLine(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.DrawLine(0, 0, 9, 9, 0xffffffff)
	for i := range 10 {
		if fb.GetPixel(i, i) != 0xffffffff {
			t.Errorf("diagonal pixel %d missing", i)
		}
	}
	// Lines running off the canvas are clipped, not wrapped.
	fb.Clear(0)
	fb.DrawLine(-5, 2, 20, 2, 0xffffffff)
	for x := range 10 {
		if fb.GetPixel(x, 2) != 0xffffffff {
			t.Errorf("pixel (%d,2) missing", x)
		}
	}
	if fb.GetPixel(0, 3) != 0 {
		t.Error("line leaked into next row")
	}
}

func TestToImage(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.SetPixel(1, 0, scene.RGB(1, 2, 3).Packed())
	img := fb.ToImage()
	c := img.RGBAAt(1, 0)
	if c.R != 1 || c.G != 2 || c.B != 3 || c.A != 255 {
		t.Errorf("got %v, want {1 2 3 255}", c)
	}
}

func TestSave(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Clear(scene.RGB(200, 100, 50).Packed())
	dir := t.TempDir()

	for _, ext := range []string{"png", "bmp", "ppm"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "out."+ext)
			if err := fb.Save(path); err != nil {
				t.Fatalf("Save: %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, format, err := image.Decode(f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if format != ext {
				t.Errorf("format = %q, want %q", format, ext)
			}
			r, g, b, _ := img.At(2, 1).RGBA()
			if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 {
				t.Errorf("pixel = (%d,%d,%d), want (200,100,50)", r>>8, g>>8, b>>8)
			}
		})
	}

	if err := fb.Save(filepath.Join(dir, "out.tga")); err == nil {
		t.Error("expected error for unsupported format")
	}
	if err := fb.Save(filepath.Join(dir, "noext")); err == nil {
		t.Error("expected error for missing extension")
	}
}

func TestDepthBuffer(t *testing.T) {
	d := NewDepthBuffer(4, 4)
	if got := d.At(1, 1); got != -math.MaxFloat64 {
		t.Errorf("cleared depth = %v, want -MaxFloat64", got)
	}
	if !d.Test(1, 1, 0.2) {
		t.Error("first write should pass")
	}
	if d.Test(1, 1, 0.1) {
		t.Error("farther write should fail")
	}
	if !d.Test(1, 1, 0.2) {
		t.Error("equal depth should pass")
	}
	if d.Test(5, 1, 1) {
		t.Error("out of bounds write should fail")
	}
	if got := d.At(-1, 2); got != -math.MaxFloat64 {
		t.Errorf("out of bounds depth = %v, want -MaxFloat64", got)
	}
	d.Clear()
	if got := d.At(1, 1); got != -math.MaxFloat64 {
		t.Errorf("depth after Clear = %v", got)
	}
}

func TestCellColor(t *testing.T) {
	if cellColor(0) != nil {
		t.Error("unwritten pixel should map to the terminal default")
	}
	if cellColor(scene.Red.Packed()) == nil {
		t.Error("opaque pixel should have a colour")
	}
}
