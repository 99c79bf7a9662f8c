// Package surface holds the Frame Surface (back buffer plus native bitmap)
// and the interfaces it needs from the window layer.
package surface

// Window is the host window the render loop draws into.
type Window interface {
	// Exists reports whether the window is still alive.
	Exists() bool
	// ClientSize returns the current client-area size in pixels.
	ClientSize() (width, height int)
	// Acquire returns a drawable tied to the window. The caller releases it.
	Acquire() (Drawable, error)
}

// Drawable is a device surface that native bitmaps can be presented to.
type Drawable interface {
	// NewBitmap allocates a presentation bitmap in the device's native format.
	NewBitmap(width, height int) (Bitmap, error)
	// Blit copies the whole bitmap onto the device surface.
	Blit(b Bitmap) error
	// Release returns the drawable to the window.
	Release() error
}

// Bitmap is a device-format pixel buffer.
type Bitmap interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	Release() error
}
