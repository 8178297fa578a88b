package pane

// Point is a cell coordinate in the frame.
type Point struct {
	X int
	Y int
}

// Rect is a rectangle of cells. X and Y are the top-left corner.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether p falls inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Center returns the rectangle's center point.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Orientation selects how a split divides its rectangle among children.
type Orientation uint8

const (
	// OrientHorizontal arranges children side by side, dividing width.
	OrientHorizontal Orientation = iota

	// OrientVertical stacks children, dividing height.
	OrientVertical
)

// String returns a human-readable orientation name.
func (o Orientation) String() string {
	switch o {
	case OrientHorizontal:
		return "horizontal"
	case OrientVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Direction is a focus movement direction across pane boundaries.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return "unknown"
	}
}
