package sprite

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// decoders maps filetype extensions to decoders. The tga package registers
// an empty magic with image.RegisterFormat, so image.Decode would hand every
// file to it; decoders are picked explicitly instead.
var decoders = map[string]func(io.Reader) (image.Image, error){
	"png":  png.Decode,
	"jpg":  jpeg.Decode,
	"gif":  gif.Decode,
	"bmp":  bmp.Decode,
	"tif":  tiff.Decode,
	"webp": webp.Decode,
}

// Channels is the texel stride of data returned by Decode (RGBA).
const Channels = 4

// Extensions lists the file extensions Decode understands, lowercase.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp", ".tga"}

// Supported reports whether path has an extension Decode understands.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Decode reads an image file and returns its pixels as interleaved,
// non-premultiplied RGBA bytes together with the size and channel count.
func Decode(path string) (raw []byte, width, height, channels int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, 0, 0, fmt.Errorf("sprite: read %s: %w", path, err)
	}

	img, err := decodeImage(path, data)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	n := toNRGBA(img)
	w, h := n.Rect.Dx(), n.Rect.Dy()
	if w <= 0 || h <= 0 {
		return nil, 0, 0, 0, fmt.Errorf("sprite: decode %s: %w", path, ErrEmptyImage)
	}
	return n.Pix, w, h, Channels, nil
}

// decodeImage picks a decoder from the content signature. TGA has no magic
// number, so unidentified content is only accepted under a .tga extension.
func decodeImage(path string, data []byte) (image.Image, error) {
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("sprite: sniff %s: %w", path, err)
	}

	var decode func(io.Reader) (image.Image, error)
	switch {
	case kind == filetype.Unknown:
		if strings.ToLower(filepath.Ext(path)) != ".tga" {
			return nil, fmt.Errorf("sprite: decode %s: unrecognized image data", path)
		}
		decode = tga.Decode
	case kind.MIME.Type != "image":
		return nil, fmt.Errorf("sprite: %s is %s, not an image", path, kind.MIME.Value)
	default:
		decode = decoders[kind.Extension]
		if decode == nil {
			return nil, fmt.Errorf("sprite: decode %s: unsupported image type %s", path, kind.MIME.Value)
		}
	}

	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("sprite: decode %s: %w", path, err)
	}
	return img, nil
}

// Load decodes path into a Sprite.
func Load(path string) (*Sprite, error) {
	raw, w, h, ch, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return FromRaw(raw, w, h, ch)
}

// RegisterFile decodes path and stores the result under name.
// On error the atlas is unchanged.
func (a *Atlas) RegisterFile(name, path string) error {
	s, err := Load(path)
	if err != nil {
		return err
	}
	a.Put(name, s)
	return nil
}

// toNRGBA converts any image to a zero-origin NRGBA with a tight stride.
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
