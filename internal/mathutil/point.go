package mathutil

import "math"

// Point3 is a position in draw space (value type, stack-allocated).
// Z is carried with the point but ignored by projection.
type Point3 struct {
	X, Y, Z float64
}

// Pt returns a point on the z=0 plane.
func Pt(x, y float64) Point3 {
	return Point3{X: x, Y: y}
}

func (a Point3) Add(b Point3) Point3 {
	return Point3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func (a Point3) Sub(b Point3) Point3 {
	return Point3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// CoordLimit bounds the integer pixel coordinates FloorInt produces. Products
// of two coordinate differences stay well inside int64.
const CoordLimit = 1 << 28

// FloorInt rounds toward negative infinity, saturating at ±CoordLimit.
// NaN maps to 0.
func FloorInt(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= CoordLimit:
		return CoordLimit
	case v <= -CoordLimit:
		return -CoordLimit
	}
	return int(math.Floor(v))
}

func Min3(a, b, c int) int {
	return min(a, b, c)
}

func Max3(a, b, c int) int {
	return max(a, b, c)
}
