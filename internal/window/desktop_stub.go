//go:build !cgo

package window

import (
	"errors"

	"davinci-renderer/internal/surface"
)

var errNoCgo = errors.New("window: desktop mode requires cgo (build/run with CGO_ENABLED=1)")

// Desktop is unavailable without cgo; it reports itself as already closed.
type Desktop struct{}

func NewDesktop(title string, width, height int) *Desktop { return &Desktop{} }

func (d *Desktop) Run() error                         { return errNoCgo }
func (d *Desktop) Close()                             {}
func (d *Desktop) Exists() bool                       { return false }
func (d *Desktop) ClientSize() (int, int)             { return 0, 0 }
func (d *Desktop) Acquire() (surface.Drawable, error) { return nil, errNoCgo }
