package window

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"davinci-renderer/internal/raster"
	"davinci-renderer/internal/surface"
)

func TestHeadlessLifecycle(t *testing.T) {
	h := NewHeadless(32, 16, surface.FormatBGR24)
	assert.True(t, h.Exists())
	w, ht := h.ClientSize()
	assert.Equal(t, 32, w)
	assert.Equal(t, 16, ht)

	h.Resize(40, 20)
	w, ht = h.ClientSize()
	assert.Equal(t, 40, w)
	assert.Equal(t, 20, ht)

	h.Close()
	assert.False(t, h.Exists())
	_, err := h.Acquire()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestHeadlessFailAcquire(t *testing.T) {
	h := NewHeadless(8, 8, surface.FormatRGBA32)
	boom := errors.New("no dc")
	h.FailAcquire(boom)
	_, err := h.Acquire()
	assert.ErrorIs(t, err, boom)

	h.FailAcquire(nil)
	d, err := h.Acquire()
	require.NoError(t, err)
	assert.Equal(t, 1, h.LiveDrawables())
	require.NoError(t, d.Release())
	require.NoError(t, d.Release())
	assert.Equal(t, 0, h.LiveDrawables())
}

func TestHeadlessPresentThroughFrame(t *testing.T) {
	for _, format := range []surface.PixelFormat{surface.FormatBGR24, surface.FormatRGBA32, surface.FormatRGB565} {
		t.Run(format.String(), func(t *testing.T) {
			h := NewHeadless(7, 5, format)
			d, err := h.Acquire()
			require.NoError(t, err)

			f := surface.NewFrame(d)
			_, err = f.EnsureSize(h.ClientSize())
			require.NoError(t, err)
			assert.Equal(t, 1, h.LiveBitmaps())

			f.Back().Clear(raster.RGB(255, 255, 255))
			f.Back().Set(6, 4, raster.RGB(0, 0, 0))
			require.NoError(t, f.Present())
			assert.Equal(t, 1, h.Blits())

			img := h.LastFrame()
			require.NotNil(t, img)
			assert.Equal(t, uint8(255), img.RGBAAt(0, 0).R)
			assert.Equal(t, uint8(0), img.RGBAAt(6, 4).G)

			require.NoError(t, f.Release())
			assert.Equal(t, 0, h.LiveBitmaps())
			assert.Equal(t, 0, h.LiveDrawables())
			assert.Equal(t, 1, h.BitmapsCreated())
		})
	}
}

func TestHeadlessLastFrameNil(t *testing.T) {
	assert.Nil(t, NewHeadless(1, 1, surface.FormatBGR24).LastFrame())
}
