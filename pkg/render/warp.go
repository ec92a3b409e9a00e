package render

import (
	"image/color"
	"math"

	"github.com/taigrr/lenticular/pkg/homography"
	"github.com/taigrr/lenticular/pkg/math3d"
)

// WarpHomography fills dst by sampling src through h. The destination
// pixel at viewport coordinate uv, origin bottom-left, takes the nearest
// src pixel at h(uv). Samples falling outside src are transparent.
func WarpHomography(dst, src *Framebuffer, h math3d.Mat3) {
	for y := range dst.Height {
		v := 1 - (float64(y)+0.5)/float64(dst.Height)
		for x := range dst.Width {
			u := (float64(x) + 0.5) / float64(dst.Width)
			su, sv := homography.Apply(h, u, v)
			if math.IsNaN(su) || math.IsNaN(sv) {
				dst.Pixels[y*dst.Width+x] = color.RGBA{}
				continue
			}
			sx := int(math.Floor(su * float64(src.Width)))
			sy := int(math.Floor((1 - sv) * float64(src.Height)))
			dst.Pixels[y*dst.Width+x] = src.GetPixel(sx, sy)
		}
	}
}

// LowPass returns a 3x3 box-filtered copy of fb. Border pixels average
// only their in-range neighbours.
func LowPass(fb *Framebuffer) *Framebuffer {
	out := NewFramebuffer(fb.Width, fb.Height)
	for y := range fb.Height {
		for x := range fb.Width {
			var r, g, b, a, n int
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					sx, sy := x+dx, y+dy
					if sx < 0 || sx >= fb.Width || sy < 0 || sy >= fb.Height {
						continue
					}
					c := fb.Pixels[sy*fb.Width+sx]
					r, g, b, a = r+int(c.R), g+int(c.G), b+int(c.B), a+int(c.A)
					n++
				}
			}
			out.Pixels[y*fb.Width+x] = color.RGBA{
				uint8((r + n/2) / n), uint8((g + n/2) / n), uint8((b + n/2) / n), uint8((a + n/2) / n),
			}
		}
	}
	return out
}
