package render

import "testing"

func solid(w, h int, c Color) *Framebuffer {
	fb := NewFramebuffer(w, h)
	fb.Clear(c)
	return fb
}

func near(a, b Color) bool {
	d := func(x, y uint8) bool { return abs(int(x)-int(y)) <= 1 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestResize(t *testing.T) {
	fb := solid(4, 4, ColorClip)
	if Resize(fb, 4, 4) != fb {
		t.Error("same size resize copied")
	}

	big := Resize(fb, 8, 6)
	if big.Width != 8 || big.Height != 6 {
		t.Fatalf("size = %dx%d", big.Width, big.Height)
	}
	for i, p := range big.Pixels {
		if !near(p, ColorClip) {
			t.Fatalf("pixel %d = %v, want %v", i, p, ColorClip)
		}
	}
}

func TestSideBySide(t *testing.T) {
	tests := []struct {
		name       string
		eyeW, eyeH int
	}{
		{"full resolution", 4, 3},
		{"half resolution eyes", 8, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			left := solid(4, 3, ColorRed)
			right := solid(4, 3, ColorBlue)

			out := SideBySide(left, right, tc.eyeW, tc.eyeH)
			if out.Width != 2*tc.eyeW || out.Height != tc.eyeH {
				t.Fatalf("size = %dx%d", out.Width, out.Height)
			}
			for y := range out.Height {
				if got := out.GetPixel(0, y); !near(got, ColorRed) {
					t.Errorf("left column = %v, want red", got)
				}
				if got := out.GetPixel(out.Width-1, y); !near(got, ColorBlue) {
					t.Errorf("right column = %v, want blue", got)
				}
			}
		})
	}
}
