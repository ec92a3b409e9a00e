package main

import (
	"context"
	"testing"

	"github.com/taigrr/lenticular/pkg/config"
	"github.com/taigrr/lenticular/pkg/display"
	"github.com/taigrr/lenticular/pkg/engine"
	"github.com/taigrr/lenticular/pkg/math3d"
	"github.com/taigrr/lenticular/pkg/render"
	"github.com/taigrr/lenticular/pkg/tracking"
)

func TestLoadScene(t *testing.T) {
	g := display.Default()
	s, err := LoadScene("", g, math3d.IdentityTransform())
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	if s.Name != "cube" || s.Triangles() != 12 || s.Floor == nil {
		t.Errorf("scene = %q, %d triangles, floor %v", s.Name, s.Triangles(), s.Floor != nil)
	}
	c := s.Models[0].Center()
	if c.Distance(g.Center) > 1e-9 {
		t.Errorf("cube center = %v, want display center %v", c, g.Center)
	}

	if _, err := LoadScene("model.obj", g, math3d.IdentityTransform()); err == nil {
		t.Error("obj model accepted")
	}
}

func TestEyeRendererFrame(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"lens shift", func(*config.Config) {}},
		{"homography", func(c *config.Config) { c.LensShift = false }},
		{"performance priority", func(c *config.Config) { c.PerformancePriority = true }},
		{"frame level backend", func(c *config.Config) { c.Backend = "high_definition" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			info := display.DefaultInfo()
			eng, err := engine.New(cfg, info, tracking.NewMouseTracker(info.Geometry))
			if err != nil {
				t.Fatalf("engine.New: %v", err)
			}
			scene, err := LoadScene("", info.Geometry, eng.Origin())
			if err != nil {
				t.Fatalf("LoadScene: %v", err)
			}

			r := NewEyeRenderer(scene, 64, 36)
			res, img, err := r.Frame(context.Background(), eng)
			if err != nil {
				t.Fatalf("Frame: %v", err)
			}
			if res.Held() {
				t.Errorf("frame held: %v", res.Eyes[0].Err)
			}
			if img.Width != 128 || img.Height != 36 {
				t.Fatalf("image = %dx%d, want 128x36", img.Width, img.Height)
			}

			// Something other than background must land in each half.
			for half := range 2 {
				drawn := false
				for y := 0; y < img.Height && !drawn; y++ {
					for x := half * 64; x < (half+1)*64; x++ {
						if p := img.GetPixel(x, y); p != render.ColorBackground && p.A != 0 {
							drawn = true
							break
						}
					}
				}
				if !drawn {
					t.Errorf("eye %d is blank", half)
				}
			}
		})
	}
}

func TestSnapshotPath(t *testing.T) {
	tests := []struct {
		path string
		i, n int
		want string
	}{
		{"out.png", 0, 1, "out.png"},
		{"out.png", 1, 3, "out-1.png"},
		{"dir/frame.webp", 0, 2, "dir/frame-0.webp"},
	}
	for _, tc := range tests {
		if got := snapshotPath(tc.path, tc.i, tc.n); got != tc.want {
			t.Errorf("snapshotPath(%q, %d, %d) = %q, want %q", tc.path, tc.i, tc.n, got, tc.want)
		}
	}
}
