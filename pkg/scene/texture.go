package scene

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"

	_ "github.com/taigrr/prism/pkg/ppm" // Register PPM decoder
	_ "golang.org/x/image/bmp"          // Register BMP decoder

	"github.com/taigrr/prism/pkg/math3d"
)

// Texture is a row-major grid of packed 0xAARRGGBB texels. Lookups use texel
// coordinates, not normalized UVs.
type Texture struct {
	Width  int
	Height int
	Pixels []uint32
}

// NewTexture creates a black texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
}

// LoadTexture loads a texture from a PNG, JPEG, BMP or binary PPM file.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage copies an image into a texture.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	tex := NewTexture(bounds.Dx(), bounds.Dy())
	for y := range tex.Height {
		for x := range tex.Width {
			// RGBA returns 16-bit values
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			tex.Pixels[y*tex.Width+x] = 0xff<<24 | (r>>8)<<16 | (g>>8)<<8 | b>>8
		}
	}
	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	p1, p2 := c1.Packed(), c2.Packed()
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.Pixels[y*width+x] = p1
			} else {
				tex.Pixels[y*width+x] = p2
			}
		}
	}
	return tex
}

// SetPixel sets a texel. Out of range writes are ignored.
func (t *Texture) SetPixel(x, y int, argb uint32) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = argb
}

// GetPixel returns the texel at (x, y), or 0 when out of range.
func (t *Texture) GetPixel(x, y int) uint32 {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return 0
	}
	return t.Pixels[y*t.Width+x]
}

// At returns the nearest texel to (x, y). Coordinates are truncated and then
// clamped to the texture edge.
func (t *Texture) At(x, y float64) uint32 {
	if t.Width == 0 || t.Height == 0 {
		return 0
	}
	return t.Pixels[clampIndex(int(y), t.Height)*t.Width+clampIndex(int(x), t.Width)]
}

// TexelCoord converts a normalized UV with a top-left origin, as glTF uses,
// to texel coordinates. OBJ coordinates need V flipped first.
func (t *Texture) TexelCoord(uv math3d.Vec2) math3d.Vec2 {
	return math3d.V2(uv.X*float64(t.Width), uv.Y*float64(t.Height))
}

func clampIndex(i, n int) int {
	switch {
	case i < 0:
		return 0
	case i >= n:
		return n - 1
	}
	return i
}
