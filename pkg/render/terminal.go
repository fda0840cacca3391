package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the framebuffer to terminal cells and draws them on the
// screen. Each cell shows two framebuffer rows, so the framebuffer height
// should be twice the area height.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// ▀ (upper half block) with fg=top pixel and bg=bottom pixel
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := (row - area.Min.Y) * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col-area.Min.X < fb.Width; col++ {
			x := col - area.Min.X
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(x, topY)),
					Bg: cellColor(fb.GetPixel(x, botY)),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// cellColor converts a packed pixel for the terminal. Pixels with zero alpha
// (never drawn, or off the framebuffer) use the terminal default.
func cellColor(argb uint32) color.Color {
	c := unpackRGBA(argb)
	if c.A == 0 {
		return nil
	}
	return c
}
