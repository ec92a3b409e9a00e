package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/webp"
)

// SaveImage writes img to path. The format follows the extension: .png,
// .webp (lossless) or .tga.
func SaveImage(path string, img image.Image) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	var encode func(*os.File) error
	switch ext {
	case ".png":
		encode = func(f *os.File) error { return png.Encode(f, img) }
	case ".webp":
		encode = func(f *os.File) error { return nativewebp.Encode(f, img, nil) }
	case ".tga":
		encode = func(f *os.File) error { return tga.Encode(f, img) }
	default:
		return fmt.Errorf("save %s: unsupported image format %q", path, ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("save %s: %w", path, cerr)
		}
	}()
	if err := encode(f); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// LoadImage decodes a PNG, WebP or TGA file. The decoder follows the
// extension; the tga package claims every input under image.Decode.
func LoadImage(path string) (image.Image, error) {
	var decode func(*os.File) (image.Image, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		decode = func(f *os.File) (image.Image, error) { return png.Decode(f) }
	case ".webp":
		decode = func(f *os.File) (image.Image, error) { return webp.Decode(f) }
	case ".tga":
		decode = func(f *os.File) (image.Image, error) { return tga.Decode(f) }
	default:
		return nil, fmt.Errorf("load %s: unsupported image format %q", path, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return img, nil
}
