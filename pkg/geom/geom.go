// Package geom provides the integer layout geometry shared by the shape,
// repetition and writer packages.
//
// Layout databases address geometry on an integer database-unit grid, so
// every coordinate here is an int64. X increases to the right and Y
// increases up the page.
//
// Besides [Point] the package carries the arithmetic used by grid
// compaction: [GCD] and [GridFactor].
package geom

import "fmt"

// Point is an absolute position or a displacement in database units.
type Point struct {
	X, Y int64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul returns p scaled by k.
func (p Point) Mul(k int64) Point { return Point{p.X * k, p.Y * k} }

// Div returns p with both components divided by k. Callers guarantee k
// divides both components.
func (p Point) Div(k int64) Point { return Point{p.X / k, p.Y / k} }

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }

// String formats p as "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// CompareRows orders points by Y, then X. This is the order in which row
// runs are searched.
func CompareRows(a, b Point) int {
	switch {
	case a.Y < b.Y:
		return -1
	case a.Y > b.Y:
		return 1
	case a.X < b.X:
		return -1
	case a.X > b.X:
		return 1
	}
	return 0
}

// CompareColumns orders points by X, then Y.
func CompareColumns(a, b Point) int {
	return CompareRows(Point{a.Y, a.X}, Point{b.Y, b.X})
}

// Translate returns a new slice holding every point of pts shifted by d.
func Translate(pts []Point, d Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = p.Add(d)
	}
	return out
}
