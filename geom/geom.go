// Package geom provides integer points and half-open rectangles used for view bounds.
package geom

import "fmt"

// Point is a cell coordinate
type Point struct {
	X, Y int
}

// Add returns p+q
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is half-open: A is inclusive top-left, B is exclusive bottom-right
// Invariant: A.X <= B.X && A.Y <= B.Y
type Rect struct {
	A, B Point
}

// NewRect builds a rect from corner coordinates
// Panics if the corners are inverted, which is a caller bug
func NewRect(ax, ay, bx, by int) Rect {
	if ax > bx || ay > by {
		panic(fmt.Sprintf("geom: inverted rect (%d,%d)-(%d,%d)", ax, ay, bx, by))
	}
	return Rect{A: Point{ax, ay}, B: Point{bx, by}}
}

// RectWH builds a rect from origin and size
func RectWH(x, y, w, h int) Rect {
	return NewRect(x, y, x+w, y+h)
}

// Size returns width and height as a point
func (r Rect) Size() Point {
	return Point{r.B.X - r.A.X, r.B.Y - r.A.Y}
}

// Width returns B.X-A.X
func (r Rect) Width() int {
	return r.B.X - r.A.X
}

// Height returns B.Y-A.Y
func (r Rect) Height() int {
	return r.B.Y - r.A.Y
}

// Empty reports whether the rect covers no cells
func (r Rect) Empty() bool {
	return r.A.X >= r.B.X || r.A.Y >= r.B.Y
}

// Contains reports whether p lies inside the rect
func (r Rect) Contains(p Point) bool {
	return p.X >= r.A.X && p.X < r.B.X && p.Y >= r.A.Y && p.Y < r.B.Y
}

// Move translates the rect by (dx, dy)
func (r Rect) Move(dx, dy int) Rect {
	return Rect{
		A: Point{r.A.X + dx, r.A.Y + dy},
		B: Point{r.B.X + dx, r.B.Y + dy},
	}
}

// Grow expands each side by (dx, dy); negative values shrink, clamped to an empty rect at the center
func (r Rect) Grow(dx, dy int) Rect {
	g := Rect{
		A: Point{r.A.X - dx, r.A.Y - dy},
		B: Point{r.B.X + dx, r.B.Y + dy},
	}
	if g.A.X > g.B.X {
		mid := (g.A.X + g.B.X) / 2
		g.A.X, g.B.X = mid, mid
	}
	if g.A.Y > g.B.Y {
		mid := (g.A.Y + g.B.Y) / 2
		g.A.Y, g.B.Y = mid, mid
	}
	return g
}

// Intersect returns the overlap of r and o; result is empty (not inverted) when disjoint
func (r Rect) Intersect(o Rect) Rect {
	i := Rect{
		A: Point{max(r.A.X, o.A.X), max(r.A.Y, o.A.Y)},
		B: Point{min(r.B.X, o.B.X), min(r.B.Y, o.B.Y)},
	}
	if i.B.X < i.A.X {
		i.B.X = i.A.X
	}
	if i.B.Y < i.A.Y {
		i.B.Y = i.A.Y
	}
	return i
}

// Union returns the smallest rect covering r and o
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		A: Point{min(r.A.X, o.A.X), min(r.A.Y, o.A.Y)},
		B: Point{max(r.B.X, o.B.X), max(r.B.Y, o.B.Y)},
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%v-%v)", r.A, r.B)
}
