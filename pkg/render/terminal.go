package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw writes the framebuffer into area of a terminal screen. Each cell is
// an upper half block with the top pixel as foreground and the bottom one
// as background, so area needs Height/2 rows.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	for row := area.Min.Y; row < area.Max.Y; row++ {
		top := (row - area.Min.Y) * 2
		if top >= fb.Height {
			return
		}
		for col := area.Min.X; col < area.Max.X; col++ {
			x := col - area.Min.X
			if x >= fb.Width {
				break
			}
			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: cellColor(fb.GetPixel(x, top)),
					Bg: cellColor(fb.GetPixel(x, top+1)),
				},
			})
		}
	}
}

// TerminalSize returns the framebuffer size that fills a terminal of the
// given cells.
func TerminalSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

func cellColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}

// Color is an alias for color.RGBA.
type Color = color.RGBA

// Preview palette.
var (
	ColorBackground = RGB(30, 30, 40)
	ColorBezel      = RGB(255, 255, 255)
	ColorModel      = RGB(0, 255, 128)
	ColorGrid       = RGB(90, 90, 110)
	ColorClip       = RGB(255, 96, 64)
	ColorRed        = RGB(255, 0, 0)
	ColorGreen      = RGB(0, 255, 0)
	ColorBlue       = RGB(0, 0, 255)
)

// RGB returns an opaque color.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}
