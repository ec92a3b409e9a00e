package main

import (
	"context"
	"fmt"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/lenticular/pkg/config"
	"github.com/taigrr/lenticular/pkg/display"
	"github.com/taigrr/lenticular/pkg/engine"
	"github.com/taigrr/lenticular/pkg/render"
	"github.com/taigrr/lenticular/pkg/tracking"
)

// Approximate cell size in pixels, used to turn terminal mouse motion into
// pointer motion.
const (
	cellPixelsX = 8
	cellPixelsY = 16
)

// HUD renders an overlay with scene info and mode status.
type HUD struct {
	name      string
	triangles int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD.
func NewHUD(name string, triangles int) *HUD {
	return &HUD{name: name, triangles: triangles, fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame).
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Draw writes the HUD rows into the top and bottom lines of area.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle, cfg config.Config, res engine.FrameResult) {
	bar := uv.Style{Fg: render.RGB(255, 255, 255), Bg: render.RGB(0, 0, 0)}

	top := fmt.Sprintf(" %.0f FPS  %s  %d tris  tracking: %s ", h.fps, h.name, h.triangles, res.Status)
	drawText(scr, area.Min.X, area.Min.Y, top, bar)

	mode := "homography"
	if cfg.LensShift {
		mode = "lens shift"
	}
	bottom := fmt.Sprintf(" %s  [%s] clip  [%s] perf ",
		mode, check(cfg.BoxFrontClip), check(cfg.PerformancePriority))
	if res.Held() {
		bottom += " HELD "
	}
	drawText(scr, area.Min.X, area.Max.Y-1, bottom, bar)
}

func check(on bool) string {
	if on {
		return "✓"
	}
	return " "
}

func drawText(scr uv.Screen, x, y int, s string, style uv.Style) {
	for _, r := range s {
		scr.SetCell(x, y, &uv.Cell{Content: string(r), Width: 1, Style: style})
		x++
	}
}

// preview is the interactive terminal session.
type preview struct {
	cfg     config.Config
	info    display.Info
	mouse   *tracking.MouseTracker
	tracker tracking.Tracker
	smooth  *tracking.Smoothed

	engine   *engine.Engine
	renderer *EyeRenderer
	hud      *HUD
	showHUD  bool
}

func newPreview(cfg config.Config) (*preview, error) {
	p := &preview{cfg: cfg, info: display.DefaultInfo(), showHUD: true}
	p.mouse = tracking.NewMouseTracker(p.info.Geometry)
	p.tracker = p.mouse
	if cfg.SmoothFrequency > 0 {
		p.smooth = tracking.NewSmoothed(p.mouse, cfg.FPS, cfg.SmoothFrequency, cfg.SmoothDamping)
		p.tracker = p.smooth
	}
	if err := p.rebuild(); err != nil {
		return nil, err
	}

	scene, err := LoadScene(*modelPath, p.info.Geometry, p.engine.Origin())
	if err != nil {
		return nil, err
	}
	p.renderer = NewEyeRenderer(scene, 1, 1)
	p.hud = NewHUD(scene.Name, scene.Triangles())
	return p, nil
}

// rebuild recreates the engine after a settings change.
func (p *preview) rebuild() error {
	eng, err := engine.New(p.cfg, p.info, p.tracker)
	if err != nil {
		return err
	}
	p.engine = eng
	return nil
}

func (p *preview) resize(cols, rows int) {
	w, h := render.TerminalSize(cols, rows)
	p.renderer.Resize(max(w/2, 1), max(h, 1))
}

func (p *preview) reset() {
	p.mouse.Reset()
	if p.smooth != nil {
		p.smooth.Reset()
	}
}

// handle processes one terminal event. It reports false when the preview
// should quit.
func (p *preview) handle(term *uv.Terminal, ev uv.Event) (bool, error) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		term.Erase()
		if err := term.Resize(ev.Width, ev.Height); err != nil {
			return false, fmt.Errorf("resize: %w", err)
		}
		p.resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c"):
			return false, nil
		case ev.MatchString("r"):
			p.reset()
		case ev.MatchString("l"):
			p.cfg.LensShift = !p.cfg.LensShift
			return true, p.rebuild()
		case ev.MatchString("c"):
			p.cfg.BoxFrontClip = !p.cfg.BoxFrontClip
			return true, p.rebuild()
		case ev.MatchString("p"):
			p.cfg.PerformancePriority = !p.cfg.PerformancePriority
			return true, p.rebuild()
		case ev.MatchString("?"), ev.MatchString("shift+/"):
			p.showHUD = !p.showHUD
		}

	case uv.MouseClickEvent:
		if ev.Button == uv.MouseRight {
			p.mouse.BeginDrag(pointer(ev.X, ev.Y))
		}

	case uv.MouseReleaseEvent:
		p.mouse.EndDrag()

	case uv.MouseMotionEvent:
		if p.mouse.Dragging() {
			p.mouse.Drag(pointer(ev.X, ev.Y))
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			p.mouse.Zoom(0.1)
		case uv.MouseWheelDown:
			p.mouse.Zoom(-0.1)
		}
	}
	return true, nil
}

// pointer converts a cell position to pointer coordinates growing rightward
// and upward.
func pointer(col, row int) (x, y float64) {
	return float64(col * cellPixelsX), -float64(row * cellPixelsY)
}

func runPreview(ctx context.Context, cfg config.Config) error {
	p, err := newPreview(cfg)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	if err := term.Resize(width, height); err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	p.resize(width, height)

	// Any-event mouse tracking in SGR mode.
	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	defer func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		_ = term.Shutdown(context.Background())
	}()

	ticker := time.NewTicker(time.Second / time.Duration(p.cfg.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-term.Events():
			if !ok {
				return nil
			}
			keepGoing, err := p.handle(term, ev)
			if err != nil || !keepGoing {
				return err
			}
		case <-ticker.C:
			res, img, err := p.renderer.Frame(ctx, p.engine)
			if err != nil {
				return ignoreCanceled(err)
			}
			term.Draw(img)
			if p.showHUD {
				p.hud.Draw(term, term.Bounds(), p.cfg, res)
			}
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
			p.hud.UpdateFPS()
		}
	}
}
