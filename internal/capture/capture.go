// Package capture exports presented frames as image files.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// Upscale enlarges img by an integer factor with nearest-neighbor sampling,
// keeping pixels hard-edged. Factors below 2 return img unchanged.
func Upscale(img image.Image, scale int) image.Image {
	if scale < 2 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Encode writes img to w in the format named by ext (".webp" or ".png").
// WebP output is lossless.
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".webp":
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("capture: webp encode: %w", err)
		}
	case ".png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("capture: png encode: %w", err)
		}
	default:
		return fmt.Errorf("capture: unsupported format %q", ext)
	}
	return nil
}

// WriteFile saves img to path, upscaled by scale, choosing the encoder from
// the file extension. Parent directories are created.
func WriteFile(path string, img image.Image, scale int) error {
	ext := filepath.Ext(path)
	if e := strings.ToLower(ext); e != ".webp" && e != ".png" {
		return fmt.Errorf("capture: unsupported format %q", ext)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("capture: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	if err := Encode(f, Upscale(img, scale), ext); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	return nil
}
