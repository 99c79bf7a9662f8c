//go:build cgo

package window

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"

	"davinci-renderer/internal/surface"
)

// Desktop is an OS window backed by ebiten. The render loop presents into an
// RGBA staging image; ebiten uploads and draws it on its own schedule.
type Desktop struct {
	title string

	mu     sync.Mutex
	width  int
	height int
	frame  *image.RGBA
	dirty  bool
	img    *ebiten.Image

	closed atomic.Bool
}

// NewDesktop describes a window; nothing is shown until Run.
func NewDesktop(title string, width, height int) *Desktop {
	return &Desktop{title: title, width: width, height: height}
}

// Run opens the window and blocks until it closes. It must be called from the
// main goroutine.
func (d *Desktop) Run() error {
	d.mu.Lock()
	w, h := d.width, d.height
	d.mu.Unlock()

	ebiten.SetWindowTitle(d.title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(d)
	d.closed.Store(true)
	return err
}

// Update ends the ebiten run loop once Close has been called.
func (d *Desktop) Update() error {
	if d.closed.Load() {
		return ebiten.Termination
	}
	return nil
}

func (d *Desktop) Draw(screen *ebiten.Image) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.frame == nil {
		return
	}
	fw, fh := d.frame.Rect.Dx(), d.frame.Rect.Dy()
	if d.img == nil || d.img.Bounds().Dx() != fw || d.img.Bounds().Dy() != fh {
		if d.img != nil {
			d.img.Deallocate()
		}
		d.img = ebiten.NewImage(fw, fh)
		d.dirty = true
	}
	if d.dirty {
		d.img.WritePixels(d.frame.Pix)
		d.dirty = false
	}
	screen.DrawImage(d.img, nil)
}

// Layout keeps one logical pixel per window pixel, so the client size
// follows the window.
func (d *Desktop) Layout(outsideWidth, outsideHeight int) (int, int) {
	d.mu.Lock()
	d.width, d.height = outsideWidth, outsideHeight
	d.mu.Unlock()
	return outsideWidth, outsideHeight
}

// Close asks the window to close; the render loop sees Exists() == false.
func (d *Desktop) Close() {
	d.closed.Store(true)
}

func (d *Desktop) Exists() bool {
	return !d.closed.Load()
}

func (d *Desktop) ClientSize() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.width, d.height
}

func (d *Desktop) Acquire() (surface.Drawable, error) {
	if d.closed.Load() {
		return nil, ErrClosed
	}
	return desktopDrawable{d: d}, nil
}

type desktopDrawable struct {
	d *Desktop
}

func (dd desktopDrawable) NewBitmap(width, height int) (surface.Bitmap, error) {
	bm, err := surface.NewMemoryBitmap(width, height, surface.FormatRGBA32, nil)
	if err != nil {
		return nil, err
	}
	return bm, nil
}

func (dd desktopDrawable) Blit(b surface.Bitmap) error {
	d := dd.d
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.frame == nil || d.frame.Rect.Dx() != b.Width() || d.frame.Rect.Dy() != b.Height() {
		d.frame = image.NewRGBA(image.Rect(0, 0, b.Width(), b.Height()))
	}
	if err := surface.ToRGBAInto(d.frame, b); err != nil {
		return err
	}
	d.dirty = true
	return nil
}

func (dd desktopDrawable) Release() error {
	return nil
}
