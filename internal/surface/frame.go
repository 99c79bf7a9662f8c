package surface

import (
	"errors"
	"fmt"
	"image"

	"davinci-renderer/internal/raster"
)

// Frame is the Frame Surface: the back buffer the rasterizer paints into and
// the native bitmap it is converted to for presentation. Only the render
// loop touches a Frame.
type Frame struct {
	dev    Drawable
	back   *raster.BackBuffer
	bitmap Bitmap
}

// NewFrame returns an empty 0×0 frame presenting to dev.
func NewFrame(dev Drawable) *Frame {
	return &Frame{dev: dev, back: raster.NewBackBuffer(0, 0)}
}

// Back returns the back buffer.
func (f *Frame) Back() *raster.BackBuffer { return f.back }

// Size returns the current frame size.
func (f *Frame) Size() (width, height int) { return f.back.Width, f.back.Height }

// Bitmap returns the current presentation bitmap, or nil when the frame is empty.
func (f *Frame) Bitmap() Bitmap { return f.bitmap }

// EnsureSize resizes the back buffer and recreates the presentation bitmap
// when the requested size differs from the current one. The old bitmap is
// released before the new one is created. It reports whether a resize
// happened; with an unchanged size it does nothing.
//
// A zero or negative dimension (minimized window) leaves an empty frame with
// no bitmap.
func (f *Frame) EnsureSize(width, height int) (bool, error) {
	resized := f.back.Resize(width, height)
	if !resized && (f.bitmap != nil || f.back.Empty()) {
		return false, nil
	}

	var errs []error
	if f.bitmap != nil {
		if err := f.bitmap.Release(); err != nil {
			errs = append(errs, fmt.Errorf("surface: release bitmap: %w", err))
		}
		f.bitmap = nil
	}
	if !f.back.Empty() {
		bm, err := f.dev.NewBitmap(f.back.Width, f.back.Height)
		if err != nil {
			errs = append(errs, fmt.Errorf("surface: create bitmap %dx%d: %w", f.back.Width, f.back.Height, err))
		} else {
			f.bitmap = bm
		}
	}
	return resized, errors.Join(errs...)
}

// Present converts the back buffer into the bitmap and blits it to the device.
// An empty frame presents nothing.
func (f *Frame) Present() error {
	if f.bitmap == nil {
		return nil
	}
	if err := Convert(f.bitmap, f.back); err != nil {
		return err
	}
	if err := f.dev.Blit(f.bitmap); err != nil {
		return fmt.Errorf("surface: blit: %w", err)
	}
	return nil
}

// Snapshot copies the back buffer into a new RGBA image.
func (f *Frame) Snapshot() *image.RGBA {
	w, h := f.back.Width, f.back.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, c := range f.back.Pix {
		j := i * 4
		img.Pix[j+0] = c.R
		img.Pix[j+1] = c.G
		img.Pix[j+2] = c.B
		img.Pix[j+3] = 0xFF
	}
	return img
}

// Release frees the bitmap and returns the drawable to its window.
// The frame must not be used afterwards.
func (f *Frame) Release() error {
	var errs []error
	if f.bitmap != nil {
		if err := f.bitmap.Release(); err != nil {
			errs = append(errs, fmt.Errorf("surface: release bitmap: %w", err))
		}
		f.bitmap = nil
	}
	if f.dev != nil {
		if err := f.dev.Release(); err != nil {
			errs = append(errs, fmt.Errorf("surface: release drawable: %w", err))
		}
		f.dev = nil
	}
	return errors.Join(errs...)
}
