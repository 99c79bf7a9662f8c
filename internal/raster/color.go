package raster

// Color is a solid, fully opaque 8-bit RGB pixel.
type Color struct {
	R, G, B uint8
}

// Background is the color every frame is cleared to before painting.
var Background = Color{192, 192, 192}

// RGB is shorthand for a Color literal.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}
