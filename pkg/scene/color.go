package scene

import (
	"image/color"
	"math"
)

// Color is an RGB colour with channels on the 0-255 scale. Shading works in
// float64 and clamps after every step.
type Color struct {
	R, G, B float64
}

// RGB creates a colour from 0-255 channel values.
func RGB(r, g, b float64) Color {
	return Color{r, g, b}
}

// Common colours.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
	Red   = Color{255, 0, 0}
)

// Scale multiplies every channel by s and clamps.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}.Clamp()
}

// AddScalar adds the same amount to every channel and clamps. This is how a
// white specular highlight is applied.
func (c Color) AddScalar(s float64) Color {
	return Color{c.R + s, c.G + s, c.B + s}.Clamp()
}

// Add adds two colours channel by channel and clamps.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}.Clamp()
}

// Lerp blends c towards o by t and clamps.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
	}.Clamp()
}

// Clamp limits every channel to [0, 255]. NaN channels become 0.
func (c Color) Clamp() Color {
	return Color{clampChannel(c.R), clampChannel(c.G), clampChannel(c.B)}
}

func clampChannel(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 255:
		return 255
	}
	return v
}

// IsFinite reports whether every channel is a real number.
func (c Color) IsFinite() bool {
	return !math.IsNaN(c.R) && !math.IsInf(c.R, 0) &&
		!math.IsNaN(c.G) && !math.IsInf(c.G, 0) &&
		!math.IsNaN(c.B) && !math.IsInf(c.B, 0)
}

// Packed returns the colour as 0xAARRGGBB with alpha fixed at 255. Channels
// are clamped and truncated towards zero.
func (c Color) Packed() uint32 {
	c = c.Clamp()
	return 0xff<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Unpack converts a 0xAARRGGBB word back to a Color, ignoring alpha.
func Unpack(argb uint32) Color {
	return Color{
		R: float64(argb >> 16 & 0xff),
		G: float64(argb >> 8 & 0xff),
		B: float64(argb & 0xff),
	}
}

// ToRGBA converts to the standard library colour type.
func (c Color) ToRGBA() color.RGBA {
	c = c.Clamp()
	return color.RGBA{uint8(c.R), uint8(c.G), uint8(c.B), 255}
}
