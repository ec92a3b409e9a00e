package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/taigrr/lenticular/pkg/config"
	"github.com/taigrr/lenticular/pkg/display"
	"github.com/taigrr/lenticular/pkg/engine"
	"github.com/taigrr/lenticular/pkg/math3d"
	"github.com/taigrr/lenticular/pkg/models"
	"github.com/taigrr/lenticular/pkg/render"
	"github.com/taigrr/lenticular/pkg/tracking"
)

// Scene is the world-space geometry drawn for each eye.
type Scene struct {
	Name   string
	Models []*models.Mesh
	Floor  *models.Mesh
}

// Triangles returns the model triangle count.
func (s *Scene) Triangles() int {
	n := 0
	for _, m := range s.Models {
		n += m.TriangleCount()
	}
	return n
}

// LoadScene builds the scene around a display of geometry g placed by
// origin. With no model path a cube stands on the display.
func LoadScene(modelPath string, g display.Geometry, origin math3d.Transform) (*Scene, error) {
	s := &Scene{Name: "cube"}

	// Models fill half the panel width, centered on the display body.
	size := g.Width / 2
	var mesh *models.Mesh
	if modelPath != "" {
		ext := strings.ToLower(filepath.Ext(modelPath))
		if ext != ".glb" && ext != ".gltf" {
			return nil, fmt.Errorf("unsupported format: %s (use .glb or .gltf)", ext)
		}
		m, err := models.LoadGLB(modelPath)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		mesh = m
		s.Name = filepath.Base(modelPath)
	} else {
		half := math3d.V3(0.5, 0.5, 0.5)
		mesh = models.NewBox(half.Negate(), half)
	}
	mesh.FitInto(g.Center, size)
	mesh.Transform(origin.Matrix())
	s.Models = append(s.Models, mesh)

	s.Floor = models.NewGrid(4*g.Width, 8)
	s.Floor.Transform(origin.Matrix())
	return s, nil
}

// EyeRenderer draws the scene for each eye into its own buffer and
// composes them side by side.
type EyeRenderer struct {
	Scene *Scene

	eyeWidth, eyeHeight int
	edges               display.Edges
	settings            config.Config
	out                 [2]*render.Framebuffer
}

// NewEyeRenderer creates a renderer producing eyeWidth x eyeHeight images.
func NewEyeRenderer(scene *Scene, eyeWidth, eyeHeight int) *EyeRenderer {
	return &EyeRenderer{Scene: scene, eyeWidth: eyeWidth, eyeHeight: eyeHeight}
}

// Resize changes the output eye size.
func (r *EyeRenderer) Resize(eyeWidth, eyeHeight int) {
	r.eyeWidth, r.eyeHeight = eyeWidth, eyeHeight
}

// Frame runs one engine frame and returns the composed image.
func (r *EyeRenderer) Frame(ctx context.Context, eng *engine.Engine) (engine.FrameResult, *render.Framebuffer, error) {
	r.settings = eng.Config()
	r.edges = display.PlaceEdges(eng.Info().Geometry, eng.Origin())

	res, err := eng.Frame(ctx, r.renderEye)
	if err != nil {
		return res, nil, err
	}
	return res, render.SideBySide(r.out[tracking.EyeLeft], r.out[tracking.EyeRight], r.eyeWidth, r.eyeHeight), nil
}

func (r *EyeRenderer) renderEye(_ context.Context, eye engine.EyeResult) error {
	w, h := r.eyeWidth, r.eyeHeight
	if r.settings.PerformancePriority {
		w, h = max(w/2, 1), max(h/2, 1)
	}

	fb := render.NewFramebuffer(w, h)
	fb.Clear(render.ColorBackground)
	wf := render.NewWireframe(render.NewCamera(eye.Pose, eye.Projection), fb)
	if r.Scene.Floor != nil {
		wf.DrawMesh(r.Scene.Floor, render.ColorGrid)
	}
	for _, m := range r.Scene.Models {
		wf.DrawMesh(m, render.ColorModel)
	}
	wf.DrawDisplay(r.edges, render.ColorBezel)

	switch {
	case !r.settings.LensShift:
		warped := render.NewFramebuffer(w, h)
		render.WarpHomography(warped, fb, eye.Homography.H)
		fb = warped
	case !r.settings.PerformancePriority:
		fb = render.LowPass(fb)
	}
	r.out[eye.Eye] = fb
	return nil
}
