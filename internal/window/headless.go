package window

import (
	"fmt"
	"image"
	"sync"

	"davinci-renderer/internal/surface"
)

// Headless is an in-memory window. It keeps the most recently presented frame
// and counts the resources handed out so leaks are observable.
type Headless struct {
	mu         sync.Mutex
	width      int
	height     int
	format     surface.PixelFormat
	closed     bool
	acquireErr error
	blitErr    error

	drawables int // live
	bitmaps   int // live
	created   int // total bitmaps
	blits     int
	last      *image.RGBA
}

// NewHeadless returns an open window with the given client size whose
// bitmaps use format.
func NewHeadless(width, height int, format surface.PixelFormat) *Headless {
	return &Headless{width: width, height: height, format: format}
}

func (h *Headless) Exists() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.closed
}

func (h *Headless) ClientSize() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

// Resize changes the client size, as a user dragging the window border would.
func (h *Headless) Resize(width, height int) {
	h.mu.Lock()
	h.width, h.height = width, height
	h.mu.Unlock()
}

// Close destroys the window. A render loop attached to it exits on its next tick.
func (h *Headless) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
}

// FailAcquire makes subsequent Acquire calls return err (nil restores).
func (h *Headless) FailAcquire(err error) {
	h.mu.Lock()
	h.acquireErr = err
	h.mu.Unlock()
}

// FailBlit makes subsequent presents fail with err (nil restores).
func (h *Headless) FailBlit(err error) {
	h.mu.Lock()
	h.blitErr = err
	h.mu.Unlock()
}

func (h *Headless) Acquire() (surface.Drawable, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrClosed
	}
	if h.acquireErr != nil {
		return nil, fmt.Errorf("window: acquire drawable: %w", h.acquireErr)
	}
	h.drawables++
	return &headlessDrawable{h: h}, nil
}

// LastFrame returns a copy of the most recently blitted frame, or nil.
func (h *Headless) LastFrame() *image.RGBA {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last == nil {
		return nil
	}
	img := image.NewRGBA(h.last.Rect)
	copy(img.Pix, h.last.Pix)
	return img
}

// Blits returns how many frames have been presented.
func (h *Headless) Blits() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.blits
}

// LiveDrawables returns the number of acquired, unreleased drawables.
func (h *Headless) LiveDrawables() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.drawables
}

// LiveBitmaps returns the number of created, unreleased bitmaps.
func (h *Headless) LiveBitmaps() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bitmaps
}

// BitmapsCreated returns the total number of bitmaps ever created.
func (h *Headless) BitmapsCreated() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.created
}

type headlessDrawable struct {
	h        *Headless
	released bool
}

func (d *headlessDrawable) NewBitmap(width, height int) (surface.Bitmap, error) {
	bm, err := surface.NewMemoryBitmap(width, height, d.h.format, func() {
		d.h.mu.Lock()
		d.h.bitmaps--
		d.h.mu.Unlock()
	})
	if err != nil {
		return nil, err
	}
	d.h.mu.Lock()
	d.h.bitmaps++
	d.h.created++
	d.h.mu.Unlock()
	return bm, nil
}

func (d *headlessDrawable) Blit(b surface.Bitmap) error {
	d.h.mu.Lock()
	defer d.h.mu.Unlock()
	if d.h.blitErr != nil {
		return d.h.blitErr
	}
	if d.h.last == nil || d.h.last.Rect.Dx() != b.Width() || d.h.last.Rect.Dy() != b.Height() {
		d.h.last = image.NewRGBA(image.Rect(0, 0, b.Width(), b.Height()))
	}
	if err := surface.ToRGBAInto(d.h.last, b); err != nil {
		return err
	}
	d.h.blits++
	return nil
}

func (d *headlessDrawable) Release() error {
	if d.released {
		return nil
	}
	d.released = true
	d.h.mu.Lock()
	d.h.drawables--
	d.h.mu.Unlock()
	return nil
}
