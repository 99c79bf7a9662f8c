package surface

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"davinci-renderer/internal/raster"
)

// fakeDrawable records every call so ordering can be asserted.
type fakeDrawable struct {
	format  PixelFormat
	calls   []string
	live    int
	blits   []Bitmap
	failNew error
}

func (d *fakeDrawable) NewBitmap(w, h int) (Bitmap, error) {
	d.calls = append(d.calls, "new")
	if d.failNew != nil {
		return nil, d.failNew
	}
	d.live++
	return NewMemoryBitmap(w, h, d.format, func() {
		d.calls = append(d.calls, "release")
		d.live--
	})
}

func (d *fakeDrawable) Blit(b Bitmap) error {
	d.calls = append(d.calls, "blit")
	d.blits = append(d.blits, b)
	return nil
}

func (d *fakeDrawable) Release() error {
	d.calls = append(d.calls, "drawable")
	return nil
}

func TestParsePixelFormat(t *testing.T) {
	for _, f := range []PixelFormat{FormatBGR24, FormatRGBA32, FormatRGB565} {
		got, err := ParsePixelFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	f, err := ParsePixelFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatBGR24, f)

	_, err = ParsePixelFormat("yuv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestStrideBytes(t *testing.T) {
	assert.Equal(t, 12, FormatBGR24.StrideBytes(3))
	assert.Equal(t, 12, FormatBGR24.StrideBytes(4))
	assert.Equal(t, 16, FormatBGR24.StrideBytes(5))
	assert.Equal(t, 20, FormatRGBA32.StrideBytes(5))
	assert.Equal(t, 10, FormatRGB565.StrideBytes(5))
}

func TestConvertBGR24(t *testing.T) {
	back := raster.NewBackBuffer(3, 2)
	back.Clear(raster.RGB(1, 2, 3))
	back.Set(2, 1, raster.RGB(10, 20, 30))

	bm, err := NewMemoryBitmap(3, 2, FormatBGR24, nil)
	require.NoError(t, err)
	require.NoError(t, Convert(bm, back))

	buf := bm.Buffer()
	assert.Equal(t, []byte{3, 2, 1, 3, 2, 1, 3, 2, 1, 0, 0, 0}, buf[:12])
	assert.Equal(t, []byte{3, 2, 1, 3, 2, 1, 30, 20, 10, 0, 0, 0}, buf[12:24])
}

func TestConvertRoundTrip(t *testing.T) {
	back := raster.NewBackBuffer(5, 3)
	back.Clear(raster.Background)
	back.Set(4, 2, raster.RGB(255, 0, 0))
	back.Set(0, 0, raster.RGB(0, 0, 255))

	for _, f := range []PixelFormat{FormatBGR24, FormatRGBA32} {
		t.Run(f.String(), func(t *testing.T) {
			bm, err := NewMemoryBitmap(5, 3, f, nil)
			require.NoError(t, err)
			require.NoError(t, Convert(bm, back))
			img := image.NewRGBA(image.Rect(0, 0, 5, 3))
			require.NoError(t, ToRGBAInto(img, bm))
			for y := 0; y < 3; y++ {
				for x := 0; x < 5; x++ {
					c := back.At(x, y)
					got := img.RGBAAt(x, y)
					require.Equal(t, [4]uint8{c.R, c.G, c.B, 0xFF}, [4]uint8{got.R, got.G, got.B, got.A})
				}
			}
		})
	}
}

func TestConvertRGB565(t *testing.T) {
	back := raster.NewBackBuffer(2, 1)
	back.Set(0, 0, raster.RGB(255, 255, 255))
	back.Set(1, 0, raster.RGB(255, 0, 0))

	bm, err := NewMemoryBitmap(2, 1, FormatRGB565, nil)
	require.NoError(t, err)
	require.NoError(t, Convert(bm, back))
	assert.Equal(t, []byte{0xFF, 0xFF, 0x00, 0xF8}, bm.Buffer())

	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	require.NoError(t, ToRGBAInto(img, bm))
	assert.Equal(t, uint8(255), img.RGBAAt(1, 0).R)
	assert.Equal(t, uint8(0), img.RGBAAt(1, 0).G)
}

func TestConvertSizeMismatch(t *testing.T) {
	bm, err := NewMemoryBitmap(2, 2, FormatRGBA32, nil)
	require.NoError(t, err)
	assert.Error(t, Convert(bm, raster.NewBackBuffer(3, 2)))
}

func TestNewMemoryBitmapRejects(t *testing.T) {
	_, err := NewMemoryBitmap(2, 2, PixelFormat(99), nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = NewMemoryBitmap(0, 2, FormatRGBA32, nil)
	assert.Error(t, err)
}

func TestMemoryBitmapReleaseOnce(t *testing.T) {
	n := 0
	bm, err := NewMemoryBitmap(1, 1, FormatRGBA32, func() { n++ })
	require.NoError(t, err)
	require.NoError(t, bm.Release())
	require.NoError(t, bm.Release())
	assert.True(t, bm.Released())
	assert.Equal(t, 1, n)
}

func TestEnsureSizeIdempotent(t *testing.T) {
	dev := &fakeDrawable{format: FormatBGR24}
	f := NewFrame(dev)

	resized, err := f.EnsureSize(64, 48)
	require.NoError(t, err)
	assert.True(t, resized)
	resized, err = f.EnsureSize(64, 48)
	require.NoError(t, err)
	assert.False(t, resized)

	assert.Equal(t, []string{"new"}, dev.calls)
	assert.Equal(t, 1, f.Back().Allocs())
	assert.Len(t, f.Back().Pix, 64*48)
	w, h := f.Size()
	assert.Equal(t, [2]int{64, 48}, [2]int{w, h})
}

func TestEnsureSizeReleasesBeforeRecreate(t *testing.T) {
	dev := &fakeDrawable{format: FormatBGR24}
	f := NewFrame(dev)
	for _, sz := range [][2]int{{10, 10}, {20, 10}, {20, 30}, {20, 30}} {
		_, err := f.EnsureSize(sz[0], sz[1])
		require.NoError(t, err)
		assert.Len(t, f.Back().Pix, sz[0]*sz[1])
	}
	assert.Equal(t, []string{"new", "release", "new", "release", "new"}, dev.calls)
	assert.Equal(t, 1, dev.live)

	require.NoError(t, f.Release())
	assert.Equal(t, 0, dev.live)
	assert.Equal(t, "drawable", dev.calls[len(dev.calls)-1])
}

func TestEnsureSizeMinimized(t *testing.T) {
	dev := &fakeDrawable{format: FormatRGBA32}
	f := NewFrame(dev)
	_, err := f.EnsureSize(8, 8)
	require.NoError(t, err)

	resized, err := f.EnsureSize(0, 8)
	require.NoError(t, err)
	assert.True(t, resized)
	assert.Nil(t, f.Bitmap())
	assert.Equal(t, 0, dev.live)
	assert.NoError(t, f.Present())
	assert.Empty(t, dev.blits)
}

func TestEnsureSizeRetriesFailedBitmap(t *testing.T) {
	dev := &fakeDrawable{format: FormatRGBA32, failNew: errors.New("out of handles")}
	f := NewFrame(dev)

	_, err := f.EnsureSize(4, 4)
	assert.ErrorContains(t, err, "out of handles")
	assert.Nil(t, f.Bitmap())
	assert.Len(t, f.Back().Pix, 16)

	dev.failNew = nil
	resized, err := f.EnsureSize(4, 4)
	require.NoError(t, err)
	assert.False(t, resized)
	assert.NotNil(t, f.Bitmap())
}

func TestPresent(t *testing.T) {
	dev := &fakeDrawable{format: FormatRGBA32}
	f := NewFrame(dev)
	_, err := f.EnsureSize(2, 2)
	require.NoError(t, err)
	f.Back().Clear(raster.RGB(9, 8, 7))

	require.NoError(t, f.Present())
	require.Len(t, dev.blits, 1)
	assert.Equal(t, []byte{9, 8, 7, 0xFF}, dev.blits[0].Buffer()[:4])

	snap := f.Snapshot()
	assert.Equal(t, uint8(9), snap.RGBAAt(1, 1).R)
}
