package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"path/filepath"
	"strings"

	"github.com/taigrr/lenticular/pkg/config"
	"github.com/taigrr/lenticular/pkg/engine"
	"github.com/taigrr/lenticular/pkg/math3d"
	"github.com/taigrr/lenticular/pkg/render"
	"github.com/taigrr/lenticular/pkg/session"
	"github.com/taigrr/lenticular/pkg/tracking"
)

// headlessDisplay is one simulated display and the pipeline driving it.
type headlessDisplay struct {
	sess     *session.Session
	engine   *engine.Engine
	renderer *EyeRenderer
	last     *render.Framebuffer

	held, lost int
}

func runHeadless(ctx context.Context, cfg config.Config) (err error) {
	n := max(*displays, 1)
	if n > 1 {
		cfg.MultiMode = true
	}

	mgr := session.NewManager()
	defer func() {
		if cerr := mgr.CloseAll(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	runtimes := make([]session.Runtime, n)
	for i := range runtimes {
		rt := session.NewSimulatedRuntime(fmt.Sprintf("sim-%d", i))
		// A few frames of tracking loss exercise the hold path.
		rt.Failures = map[int]tracking.Status{30: tracking.StatusNotTracking, 31: tracking.StatusNotTracking}
		runtimes[i] = rt
	}

	var outs []*headlessDisplay
	for i, sess := range mgr.AllocateMulti(runtimes) {
		if err := sess.Start(ctx); err != nil {
			return err
		}
		info, ok := sess.Info()
		if !ok {
			log.Printf("session %s: using reference device description", sess.ID)
		}
		if rt, isSim := sess.Runtime().(*session.SimulatedRuntime); isSim {
			rt.Script = session.OrbitScript(info.Geometry, 90, info.Geometry.Width/4)
		}

		tracker := tracking.NewRuntimeTracker(sess.Runtime(), info)
		eng, err := engine.New(cfg, info, tracker)
		if err != nil {
			return err
		}
		// Displays tile left to right.
		eng.SetOrigin(math3d.V3(float64(i)*info.Geometry.Width*cfg.ViewSpaceScale, 0, 0), math3d.QuatIdent())

		scene, err := LoadScene(*modelPath, info.Geometry, eng.Origin())
		if err != nil {
			return err
		}
		w := max(*eyeWidth, 2)
		h := max(int(math.Round(float64(w)/info.Screen.Aspect())), 2)
		log.Printf("session %s: %s hook, %d triangles, %dx%d eyes", sess.ID, eng.Hook().Name(), scene.Triangles(), w, h)

		outs = append(outs, &headlessDisplay{sess: sess, engine: eng, renderer: NewEyeRenderer(scene, w, h)})
	}

	for f := range max(*frames, 1) {
		for _, d := range outs {
			res, img, err := d.renderer.Frame(ctx, d.engine)
			if err != nil {
				return ignoreCanceled(err)
			}
			d.last = img
			if res.Held() {
				d.held++
			}
			if res.TrackingLost {
				d.lost++
			}
		}
		if f%30 == 0 {
			log.Printf("frame %d", f)
		}
	}

	var errs []error
	for i, d := range outs {
		fmt.Printf("%s: %d frames, %d held, %d tracking lost\n", d.sess.Runtime().DeviceID(), *frames, d.held, d.lost)
		if *snapshot == "" || d.last == nil {
			continue
		}
		path := snapshotPath(*snapshot, i, len(outs))
		if err := render.SaveImage(path, d.last.ToImage()); err != nil {
			errs = append(errs, err)
			continue
		}
		fmt.Printf("wrote %s\n", path)
	}
	return errors.Join(errs...)
}

// snapshotPath numbers the snapshot per display when there are several.
func snapshotPath(path string, i, n int) string {
	if n <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), i, ext)
}
