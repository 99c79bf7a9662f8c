package raster

import "davinci-renderer/internal/mathutil"

// BackBuffer holds the frame being composed as a flat row-major slice,
// origin top-left. len(Pix) == Width*Height at all times.
type BackBuffer struct {
	Width  int
	Height int
	Pix    []Color

	allocs int
}

// NewBackBuffer allocates a buffer of the given size. Negative sizes are treated as zero.
func NewBackBuffer(w, h int) *BackBuffer {
	b := &BackBuffer{}
	b.Resize(w, h)
	return b
}

// Resize reallocates the pixel slice when the size differs from the current one
// and reports whether it did. Contents are undefined after a reallocation.
func (b *BackBuffer) Resize(w, h int) bool {
	w, h = max(w, 0), max(h, 0)
	if w == b.Width && h == b.Height && len(b.Pix) == w*h {
		return false
	}
	b.Width = w
	b.Height = h
	b.Pix = make([]Color, w*h)
	b.allocs++
	return true
}

// Allocs returns how many times the pixel slice has been allocated.
func (b *BackBuffer) Allocs() int { return b.allocs }

// Empty reports whether the buffer has no pixels.
func (b *BackBuffer) Empty() bool { return len(b.Pix) == 0 }

// Clear fills every pixel with c.
func (b *BackBuffer) Clear(c Color) {
	for i := range b.Pix {
		b.Pix[i] = c
	}
}

// At returns the pixel at (x, y), or the zero Color outside the buffer.
func (b *BackBuffer) At(x, y int) Color {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return Color{}
	}
	return b.Pix[y*b.Width+x]
}

// Set writes c at (x, y); out-of-bounds writes are dropped.
func (b *BackBuffer) Set(x, y int, c Color) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = c
}

// Project maps a draw-space point to pixel coordinates by moving the origin
// to the buffer center. There is no scale, camera or rotation.
func (b *BackBuffer) Project(p mathutil.Point3) (x, y int) {
	return mathutil.FloorInt(p.X) + b.Width/2, mathutil.FloorInt(p.Y) + b.Height/2
}
