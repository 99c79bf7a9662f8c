package sprite

import (
	"errors"
	"fmt"

	"davinci-renderer/internal/raster"
)

// ErrEmptyImage is returned when source data does not describe a positive size.
var ErrEmptyImage = errors.New("sprite: empty image")

// Sprite is a decoded opaque image. It is never modified after registration.
type Sprite struct {
	Width  int
	Height int
	Pixels []raster.Color // row-major, len = Width*Height
}

// FromRaw converts interleaved pixel data with stride bytes per texel into a
// Sprite, keeping the first three channels as (r, g, b) and dropping the rest.
func FromRaw(raw []byte, w, h, stride int) (*Sprite, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}
	if stride < 3 {
		return nil, fmt.Errorf("sprite: channel stride %d, need at least 3", stride)
	}
	n := w * h
	if len(raw) < n*stride {
		return nil, fmt.Errorf("sprite: short pixel data (%d bytes, need %d)", len(raw), n*stride)
	}

	px := make([]raster.Color, n)
	for i := range px {
		o := i * stride
		px[i] = raster.Color{R: raw[o], G: raw[o+1], B: raw[o+2]}
	}
	return &Sprite{Width: w, Height: h, Pixels: px}, nil
}

// At returns the texel at (x, y); out-of-range reads return the zero Color.
func (s *Sprite) At(x, y int) raster.Color {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return raster.Color{}
	}
	return s.Pixels[y*s.Width+x]
}
