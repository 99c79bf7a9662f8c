package mathutil

import "math"

// RotZ rotates p around the draw-space origin. Angle in radians.
func (p Point3) RotZ(a float64) Point3 {
	c, s := math.Cos(a), math.Sin(a)
	return Point3{
		X: p.X*c - p.Y*s,
		Y: p.X*s + p.Y*c,
		Z: p.Z,
	}
}

// RotZAround rotates p around center.
func (p Point3) RotZAround(center Point3, a float64) Point3 {
	return p.Sub(center).RotZ(a).Add(center)
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
