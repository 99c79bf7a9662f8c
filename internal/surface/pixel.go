package surface

import (
	"errors"
	"fmt"
	"image"

	"davinci-renderer/internal/raster"
)

// ErrUnsupportedFormat is returned for pixel formats a bitmap cannot hold.
var ErrUnsupportedFormat = errors.New("surface: unsupported pixel format")

// PixelFormat defines the bitmap pixel encoding.
type PixelFormat uint8

const (
	// FormatBGR24 is 24bpp b,g,r with rows padded to 4 bytes.
	FormatBGR24 PixelFormat = iota + 1
	// FormatRGBA32 is 32bpp r,g,b,a with alpha always 0xFF.
	FormatRGBA32
	// FormatRGB565 is 16bpp little-endian rrrrrggggggbbbbb.
	FormatRGB565
)

func (f PixelFormat) String() string {
	switch f {
	case FormatBGR24:
		return "bgr24"
	case FormatRGBA32:
		return "rgba32"
	case FormatRGB565:
		return "rgb565"
	}
	return fmt.Sprintf("PixelFormat(%d)", uint8(f))
}

// ParsePixelFormat accepts the names returned by PixelFormat.String.
// The empty string selects FormatBGR24.
func ParsePixelFormat(s string) (PixelFormat, error) {
	switch s {
	case "", "bgr24":
		return FormatBGR24, nil
	case "rgba32":
		return FormatRGBA32, nil
	case "rgb565":
		return FormatRGB565, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// BytesPerPixel returns the packed size of one pixel, or 0 if unknown.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatBGR24:
		return 3
	case FormatRGBA32:
		return 4
	case FormatRGB565:
		return 2
	}
	return 0
}

// StrideBytes returns the row size for width pixels.
func (f PixelFormat) StrideBytes(width int) int {
	row := width * f.BytesPerPixel()
	if f == FormatBGR24 {
		row = (row + 3) &^ 3
	}
	return row
}

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// Convert encodes src into dst, a bitmap of the same size, in format f.
func Convert(dst Bitmap, src *raster.BackBuffer) error {
	w, h := src.Width, src.Height
	if dst.Width() != w || dst.Height() != h {
		return fmt.Errorf("surface: convert %dx%d into %dx%d bitmap", w, h, dst.Width(), dst.Height())
	}
	buf := dst.Buffer()
	stride := dst.StrideBytes()

	switch dst.Format() {
	case FormatBGR24:
		for y := 0; y < h; y++ {
			row := buf[y*stride:]
			for x, c := range src.Pix[y*w : (y+1)*w] {
				i := x * 3
				row[i+0] = c.B
				row[i+1] = c.G
				row[i+2] = c.R
			}
		}
	case FormatRGBA32:
		for y := 0; y < h; y++ {
			row := buf[y*stride:]
			for x, c := range src.Pix[y*w : (y+1)*w] {
				i := x * 4
				row[i+0] = c.R
				row[i+1] = c.G
				row[i+2] = c.B
				row[i+3] = 0xFF
			}
		}
	case FormatRGB565:
		for y := 0; y < h; y++ {
			row := buf[y*stride:]
			for x, c := range src.Pix[y*w : (y+1)*w] {
				p := rgb565(c.R, c.G, c.B)
				row[x*2] = byte(p)
				row[x*2+1] = byte(p >> 8)
			}
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, dst.Format())
	}
	return nil
}

// ToRGBAInto decodes b into dst, which must have the bitmap's size. RGB565
// input is expanded, so it does not round-trip exactly.
func ToRGBAInto(dst *image.RGBA, b Bitmap) error {
	w, h := b.Width(), b.Height()
	if dst.Rect.Dx() != w || dst.Rect.Dy() != h {
		return fmt.Errorf("surface: decode %dx%d bitmap into %dx%d image", w, h, dst.Rect.Dx(), dst.Rect.Dy())
	}
	src := b.Buffer()
	stride := b.StrideBytes()

	for y := 0; y < h; y++ {
		row := src[y*stride:]
		out := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			var r, g, bb uint8
			switch b.Format() {
			case FormatBGR24:
				bb, g, r = row[x*3], row[x*3+1], row[x*3+2]
			case FormatRGBA32:
				r, g, bb = row[x*4], row[x*4+1], row[x*4+2]
			case FormatRGB565:
				r, g, bb = rgb888From565(uint16(row[x*2]) | uint16(row[x*2+1])<<8)
			default:
				return fmt.Errorf("%w: %v", ErrUnsupportedFormat, b.Format())
			}
			j := x * 4
			out[j+0] = r
			out[j+1] = g
			out[j+2] = bb
			out[j+3] = 0xFF
		}
	}
	return nil
}
