package render

import (
	"image/color"
	"testing"
)

func TestFramebufferPixels(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.Clear(ColorBackground)

	fb.SetPixel(1, 2, ColorModel)
	fb.SetPixel(-1, 0, ColorModel)
	fb.SetPixel(4, 0, ColorModel)

	if got := fb.GetPixel(1, 2); got != ColorModel {
		t.Errorf("GetPixel(1, 2) = %v, want %v", got, ColorModel)
	}
	if got := fb.GetPixel(0, 0); got != ColorBackground {
		t.Errorf("GetPixel(0, 0) = %v, want background", got)
	}
	if got := fb.GetPixel(9, 9); got != (color.RGBA{}) {
		t.Errorf("out of range pixel = %v, want zero", got)
	}
}

func TestFramebufferDrawLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           [][2]int
	}{
		{"horizontal", 0, 1, 3, 1, [][2]int{{0, 1}, {1, 1}, {2, 1}, {3, 1}}},
		{"vertical", 2, 3, 2, 0, [][2]int{{2, 0}, {2, 1}, {2, 2}, {2, 3}}},
		{"diagonal", 0, 0, 3, 3, [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{"point", 1, 1, 1, 1, [][2]int{{1, 1}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(4, 4)
			fb.DrawLine(tc.x0, tc.y0, tc.x1, tc.y1, ColorBezel)

			set := 0
			for _, p := range fb.Pixels {
				if p == ColorBezel {
					set++
				}
			}
			if set != len(tc.want) {
				t.Errorf("%d pixels set, want %d", set, len(tc.want))
			}
			for _, p := range tc.want {
				if fb.GetPixel(p[0], p[1]) != ColorBezel {
					t.Errorf("pixel %v not set", p)
				}
			}
		})
	}
}

func TestFramebufferImage(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.Clear(ColorGrid)
	fb.SetPixel(2, 1, ColorClip)

	img := fb.ToImage()
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if got := img.RGBAAt(2, 1); got != ColorClip {
		t.Errorf("image pixel = %v, want %v", got, ColorClip)
	}

	back := FromImage(img.SubImage(img.Bounds()))
	for i := range fb.Pixels {
		if back.Pixels[i] != fb.Pixels[i] {
			t.Fatalf("pixel %d = %v, want %v", i, back.Pixels[i], fb.Pixels[i])
		}
	}
}
