package surface

import (
	"fmt"
	"sync/atomic"
)

// MemoryBitmap is a Bitmap backed by a Go byte slice. Window implementations
// without a device-owned bitmap use it directly.
type MemoryBitmap struct {
	width  int
	height int
	format PixelFormat
	stride int
	buf    []byte

	released  atomic.Bool
	onRelease func()
}

// NewMemoryBitmap allocates a zeroed bitmap. onRelease, if non-nil, runs once
// on the first Release.
func NewMemoryBitmap(width, height int, format PixelFormat, onRelease func()) (*MemoryBitmap, error) {
	if format.BytesPerPixel() == 0 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("surface: invalid bitmap size %dx%d", width, height)
	}
	stride := format.StrideBytes(width)
	return &MemoryBitmap{
		width:     width,
		height:    height,
		format:    format,
		stride:    stride,
		buf:       make([]byte, stride*height),
		onRelease: onRelease,
	}, nil
}

func (m *MemoryBitmap) Width() int          { return m.width }
func (m *MemoryBitmap) Height() int         { return m.height }
func (m *MemoryBitmap) Format() PixelFormat { return m.format }
func (m *MemoryBitmap) StrideBytes() int    { return m.stride }
func (m *MemoryBitmap) Buffer() []byte      { return m.buf }

// Released reports whether Release has been called.
func (m *MemoryBitmap) Released() bool { return m.released.Load() }

func (m *MemoryBitmap) Release() error {
	if m.released.Swap(true) {
		return nil
	}
	if m.onRelease != nil {
		m.onRelease()
	}
	return nil
}
