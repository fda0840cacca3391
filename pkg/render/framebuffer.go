// Package render turns a scene into pixels: the scanline rasterizer, the
// wireframe renderer, the framebuffer they draw into and its presenters.
package render

import (
	"image"
	"image/color"
)

// PixelSink receives packed 0xAARRGGBB pixels. Renderers only write
// coordinates inside the canvas they were configured for.
type PixelSink interface {
	SetPixel(x, y int, argb uint32)
}

// Framebuffer is a row-major grid of packed 0xAARRGGBB pixels.
type Framebuffer struct {
	Width  int
	Height int
	Pixels []uint32
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
}

// Resize reallocates the pixels if the size changed. Contents are lost.
func (fb *Framebuffer) Resize(width, height int) {
	if width == fb.Width && height == fb.Height {
		return
	}
	fb.Width, fb.Height = width, height
	fb.Pixels = make([]uint32, width*height)
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(argb uint32) {
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	fb.Pixels[0] = argb
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// SetPixel sets a pixel at (x, y). Out of bounds writes are dropped.
func (fb *Framebuffer) SetPixel(x, y int, argb uint32) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = argb
}

// GetPixel returns the pixel at (x, y), or 0 if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) uint32 {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return 0
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, argb uint32) {
	drawLine(fb, fb.Width, fb.Height, x0, y0, x1, y1, argb)
}

// drawLine rasterizes a Bresenham line into sink, skipping points off the
// width x height canvas.
func drawLine(sink PixelSink, width, height, x0, y0, x1, y1 int, argb uint32) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if x0 >= 0 && x0 < width && y0 >= 0 && y0 < height {
			sink.SetPixel(x0, y0, argb)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := range fb.Height {
		for x := range fb.Width {
			img.SetRGBA(x, y, unpackRGBA(fb.Pixels[y*fb.Width+x]))
		}
	}
	return img
}

func unpackRGBA(argb uint32) color.RGBA {
	return color.RGBA{
		R: uint8(argb >> 16),
		G: uint8(argb >> 8),
		B: uint8(argb),
		A: uint8(argb >> 24),
	}
}
