package display

import (
	"fmt"
	"log"
)

// Spec is the device specification service. Implementations query the
// vendor runtime; both calls may fail when no device is attached.
type Spec interface {
	// DisplaySize returns the panel width and height in meters and the
	// tilt in radians.
	DisplaySize() (width, height, tilt float64, err error)
	// ScreenRect returns the panel's desktop rectangle in pixels.
	ScreenRect() (ScreenRect, error)
}

// Info is the cached device description a session works with.
type Info struct {
	Geometry Geometry
	Screen   ScreenRect
}

// DefaultInfo describes the reference device.
func DefaultInfo() Info {
	return Info{Geometry: Default(), Screen: DefaultScreenRect()}
}

// Load queries spec once and substitutes the reference defaults for
// anything that fails. ok is false if either query fell back.
func Load(spec Spec) (info Info, ok bool) {
	info = DefaultInfo()
	if spec == nil {
		return info, false
	}
	ok = true

	if w, h, tilt, err := spec.DisplaySize(); err != nil {
		log.Printf("display: size query failed, using reference geometry: %v", err)
		ok = false
	} else if err := checkSize(w, h); err != nil {
		log.Printf("display: %v, using reference geometry", err)
		ok = false
	} else {
		info.Geometry = Build(w, h, tilt)
	}

	if rect, err := spec.ScreenRect(); err != nil {
		log.Printf("display: screen rect query failed, using %dx%d: %v", DefaultScreenWidth, DefaultScreenHeight, err)
		ok = false
	} else if rect.Width <= 0 || rect.Height <= 0 {
		log.Printf("display: empty screen rect %+v, using %dx%d", rect, DefaultScreenWidth, DefaultScreenHeight)
		ok = false
	} else {
		info.Screen = rect
	}

	return info, ok
}

func checkSize(w, h float64) error {
	if !(w > 0) || !(h > 0) {
		return fmt.Errorf("invalid panel size %gx%g", w, h)
	}
	return nil
}
