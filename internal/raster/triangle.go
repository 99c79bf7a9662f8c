package raster

import (
	"fmt"

	"davinci-renderer/internal/mathutil"
)

// FillMode selects how FillTriangle decides which pixels belong to a triangle.
type FillMode uint8

const (
	// FillBoundingBox paints the whole clipped axis-aligned bounding box of the
	// projected vertices. Corners outside the triangle are painted too.
	FillBoundingBox FillMode = iota
	// FillBarycentric paints only pixels whose centers fall inside the triangle
	// (edges included), scanning the same clipped bounding box.
	FillBarycentric
)

func (m FillMode) String() string {
	switch m {
	case FillBoundingBox:
		return "bbox"
	case FillBarycentric:
		return "barycentric"
	}
	return fmt.Sprintf("FillMode(%d)", uint8(m))
}

// ParseFillMode accepts the names returned by FillMode.String.
// The empty string selects FillBoundingBox.
func ParseFillMode(s string) (FillMode, error) {
	switch s {
	case "", "bbox":
		return FillBoundingBox, nil
	case "barycentric":
		return FillBarycentric, nil
	}
	return 0, fmt.Errorf("raster: unknown fill mode %q", s)
}

// FillTriangle paints triangle p0,p1,p2 with c.
//
// The projected bounding box is clipped to the buffer before any pixel is
// touched, so vertices far outside the frame are harmless.
func FillTriangle(b *BackBuffer, p0, p1, p2 mathutil.Point3, c Color, mode FillMode) {
	if b.Empty() {
		return
	}
	x0, y0 := b.Project(p0)
	x1, y1 := b.Project(p1)
	x2, y2 := b.Project(p2)

	minX := max(0, mathutil.Min3(x0, x1, x2))
	maxX := min(b.Width-1, mathutil.Max3(x0, x1, x2))
	minY := max(0, mathutil.Min3(y0, y1, y2))
	maxY := min(b.Height-1, mathutil.Max3(y0, y1, y2))
	if minX > maxX || minY > maxY {
		return
	}

	if mode != FillBarycentric {
		for y := minY; y <= maxY; y++ {
			row := b.Pix[y*b.Width+minX : y*b.Width+maxX+1]
			for i := range row {
				row[i] = c
			}
		}
		return
	}

	// Edge functions in integer pixel space; det is twice the signed area.
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det == 0 {
		return
	}
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := sy - y2
		rowOff := sy * b.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := sx - x2
			w0 := dy12*dsx + dx21*dsy
			w1 := dy20*dsx + dx02*dsy
			w2 := det - w0 - w1
			if det > 0 {
				if w0 < 0 || w1 < 0 || w2 < 0 {
					continue
				}
			} else if w0 > 0 || w1 > 0 || w2 > 0 {
				continue
			}
			b.Pix[rowOff+sx] = c
		}
	}
}

// FillRect paints a quad given as four corners (top-left, top-right,
// bottom-right, bottom-left) as the triangles (v0,v1,v2) and (v2,v3,v0).
func FillRect(b *BackBuffer, v [4]mathutil.Point3, c Color, mode FillMode) {
	FillTriangle(b, v[0], v[1], v[2], c, mode)
	FillTriangle(b, v[2], v[3], v[0], c, mode)
}
