package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"davinci-renderer/internal/raster"
	"davinci-renderer/internal/surface"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"cfg.json", `{"title":"demo","width":320,"height":200,"tick_ms":8,"background":[1,2,3],"fill_mode":"barycentric","sprite_dir":"art","retain_shapes":true}`},
		{"cfg.toml", "title = \"demo\"\nwidth = 320\nheight = 200\ntick_ms = 8\nbackground = [1, 2, 3]\nfill_mode = \"barycentric\"\nsprite_dir = \"art\"\nretain_shapes = true\n"},
		{"cfg.yaml", "title: demo\nwidth: 320\nheight: 200\ntick_ms: 8\nbackground: [1, 2, 3]\nfill_mode: barycentric\nsprite_dir: art\nretain_shapes: true\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.name, tt.body)
			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, "demo", cfg.Title)
			assert.Equal(t, 320, cfg.Width)
			assert.Equal(t, 200, cfg.Height)
			assert.Equal(t, 8, cfg.TickMillis)
			assert.Equal(t, []int{1, 2, 3}, cfg.Background)
			assert.Equal(t, "barycentric", cfg.FillMode)
			assert.True(t, cfg.RetainShapes)
			assert.Equal(t, filepath.Join(filepath.Dir(path), "art"), cfg.SpriteDir)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "cfg.ini", "a=b"))
	assert.ErrorContains(t, err, "unknown extension")

	_, err = Load(writeFile(t, "cfg.json", "{"))
	assert.ErrorContains(t, err, "parse")
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, cfg.Resolve(Flags{}))
	assert.Equal(t, "DavinciGL Window", cfg.Title)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, 16*time.Millisecond, cfg.Tick())
	assert.Equal(t, []int{192, 192, 192}, cfg.Background)
	assert.Equal(t, 1, cfg.CaptureScale)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Config{Width: 100, SpriteDir: "/from/file", Workers: 2}
	require.NoError(t, cfg.Resolve(Flags{Width: 640, SpriteDir: "/from/flag", Manifest: "/m.json", Workers: 7}))
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, "/from/flag", cfg.SpriteDir)
	assert.Equal(t, "/m.json", cfg.SpriteManifest)
	assert.Equal(t, 7, cfg.Workers)
}

func TestResolveExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	cfg := Config{SpriteDir: "~/sprites", CapturePath: "~/shots/frame.webp"}
	require.NoError(t, cfg.Resolve(Flags{}))
	assert.Equal(t, filepath.Join(home, "sprites"), cfg.SpriteDir)
	assert.Equal(t, filepath.Join(home, "shots", "frame.webp"), cfg.CapturePath)
}

func TestRenderOptions(t *testing.T) {
	cfg := Config{Background: []int{10, 20, 30}, FillMode: "barycentric", RetainShapes: true, TickMillis: 5}
	opts, err := cfg.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, raster.RGB(10, 20, 30), opts.Background)
	assert.Equal(t, raster.FillBarycentric, opts.FillMode)
	assert.True(t, opts.RetainShapes)
	assert.Equal(t, 5*time.Millisecond, opts.Period)

	var empty Config
	require.NoError(t, empty.Resolve(Flags{}))
	opts, err = empty.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, raster.Background, opts.Background)
	assert.Equal(t, raster.FillBoundingBox, opts.FillMode)

	_, err = (&Config{FillMode: "wireframe"}).RenderOptions()
	assert.Error(t, err)
	_, err = (&Config{Background: []int{0, 300, 0}}).RenderOptions()
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	f, err := (&Config{PixelFormat: "rgb565"}).Format()
	require.NoError(t, err)
	assert.Equal(t, surface.FormatRGB565, f)

	_, err = (&Config{PixelFormat: "cmyk"}).Format()
	assert.ErrorIs(t, err, surface.ErrUnsupportedFormat)
}
