package render

import (
	"image"

	"golang.org/x/image/draw"
)

// Resize resamples fb to width x height with Catmull-Rom.
func Resize(fb *Framebuffer, width, height int) *Framebuffer {
	if fb.Width == width && fb.Height == height {
		return fb
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	src := fb.ToImage()
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return FromImage(dst)
}

// SideBySide composes the eye images into one buffer twice as wide as an
// eye, left eye first. Eyes rendered at another size, such as half
// resolution, are resampled to eyeWidth x eyeHeight.
func SideBySide(left, right *Framebuffer, eyeWidth, eyeHeight int) *Framebuffer {
	out := image.NewRGBA(image.Rect(0, 0, 2*eyeWidth, eyeHeight))
	for i, eye := range [2]*Framebuffer{left, right} {
		img := Resize(eye, eyeWidth, eyeHeight).ToImage()
		r := image.Rect(i*eyeWidth, 0, (i+1)*eyeWidth, eyeHeight)
		draw.Copy(out, r.Min, img, img.Bounds(), draw.Src, nil)
	}
	return FromImage(out)
}
