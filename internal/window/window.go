// Package window provides hosts for the render loop: an in-memory headless
// window and, in cgo builds, a desktop window.
package window

import "errors"

// ErrClosed is returned when acquiring a drawable from a closed window.
var ErrClosed = errors.New("window: closed")
