package render

import (
	"davinci-renderer/internal/mathutil"
	"davinci-renderer/internal/raster"
)

// ShapeKind discriminates Shape commands.
type ShapeKind uint8

const (
	ShapeTriangle ShapeKind = iota
	ShapeRect
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeTriangle:
		return "triangle"
	case ShapeRect:
		return "rect"
	}
	return "unknown"
}

// vertexCount is the number of vertices a well-formed shape of kind k carries.
func (k ShapeKind) vertexCount() int {
	switch k {
	case ShapeTriangle:
		return 3
	case ShapeRect:
		return 4
	}
	return -1
}

// Shape is a queued shape draw command. Rects carry their four corners in
// order top-left, top-right, bottom-right, bottom-left.
type Shape struct {
	Kind     ShapeKind
	Vertices []mathutil.Point3
	Color    raster.Color
}

// Triangle builds a triangle command.
func Triangle(v0, v1, v2 mathutil.Point3, c raster.Color) Shape {
	return Shape{Kind: ShapeTriangle, Vertices: []mathutil.Point3{v0, v1, v2}, Color: c}
}

// Rect builds a rect command from two opposite corners. The synthesized
// corners sit on z=0.
func Rect(topLeft, bottomRight mathutil.Point3, c raster.Color) Shape {
	return Shape{
		Kind: ShapeRect,
		Vertices: []mathutil.Point3{
			topLeft,
			{X: bottomRight.X, Y: topLeft.Y},
			bottomRight,
			{X: topLeft.X, Y: bottomRight.Y},
		},
		Color: c,
	}
}

// Valid reports whether the vertex count matches the kind.
func (s Shape) Valid() bool {
	return len(s.Vertices) == s.Kind.vertexCount()
}

// Placement asks for a registered sprite to be drawn with its top-left corner
// at (X, Y) in buffer pixels. The name is resolved at render time.
type Placement struct {
	Name string
	X, Y int
}
