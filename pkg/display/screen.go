package display

// Default output resolution of the reference device.
const (
	DefaultScreenWidth  = 3840
	DefaultScreenHeight = 2160
)

// ScreenRect is the panel's area on the desktop, in pixels.
type ScreenRect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// DefaultScreenRect returns the reference 4K panel at the desktop origin.
func DefaultScreenRect() ScreenRect {
	return ScreenRect{Width: DefaultScreenWidth, Height: DefaultScreenHeight}
}

// Aspect returns width / height, or 0 for an empty rect.
func (r ScreenRect) Aspect() float64 {
	if r.Height == 0 {
		return 0
	}
	return float64(r.Width) / float64(r.Height)
}

// Half returns the rect at half resolution, used when the runtime favors
// performance over image quality.
func (r ScreenRect) Half() ScreenRect {
	return ScreenRect{Left: r.Left, Top: r.Top, Width: r.Width / 2, Height: r.Height / 2}
}
