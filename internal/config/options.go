package config

import (
	"fmt"

	"davinci-renderer/internal/raster"
	"davinci-renderer/internal/render"
	"davinci-renderer/internal/surface"
)

// RenderOptions converts the resolved config into renderer options.
func (c *Config) RenderOptions() (render.Options, error) {
	opts := render.DefaultOptions()
	if c.TickMillis > 0 {
		opts.Period = c.Tick()
	}
	if len(c.Background) == 3 {
		var rgb [3]uint8
		for i, v := range c.Background {
			if v < 0 || v > 255 {
				return render.Options{}, fmt.Errorf("config: background component %d out of range", v)
			}
			rgb[i] = uint8(v)
		}
		opts.Background = raster.RGB(rgb[0], rgb[1], rgb[2])
	}
	mode, err := raster.ParseFillMode(c.FillMode)
	if err != nil {
		return render.Options{}, fmt.Errorf("config: %w", err)
	}
	opts.FillMode = mode
	opts.RetainShapes = c.RetainShapes
	return opts, nil
}

// Format returns the pixel format for headless windows.
func (c *Config) Format() (surface.PixelFormat, error) {
	f, err := surface.ParsePixelFormat(c.PixelFormat)
	if err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	return f, nil
}
