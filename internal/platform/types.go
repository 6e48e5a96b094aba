package platform

// Point is a position in global output-layout coordinates.
type Point struct {
	X int
	Y int
}

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width && r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Translate returns r moved by dx, dy.
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Region is a set of damaged rectangles. A nil region means "everything".
type Region []Rect

// Transform is an output rotation/reflection.
type Transform int

const (
	TransformNormal Transform = iota
	Transform90
	Transform180
	Transform270
	TransformFlipped
	TransformFlipped90
	TransformFlipped180
	TransformFlipped270
)

// String returns the string representation of the transform
func (t Transform) String() string {
	switch t {
	case TransformNormal:
		return "normal"
	case Transform90:
		return "90"
	case Transform180:
		return "180"
	case Transform270:
		return "270"
	case TransformFlipped:
		return "flipped"
	case TransformFlipped90:
		return "flipped-90"
	case TransformFlipped180:
		return "flipped-180"
	case TransformFlipped270:
		return "flipped-270"
	default:
		return "unknown"
	}
}

// SwapsAxes reports whether the transform is a quarter turn, i.e. whether the
// logical width and height are the device height and width.
func (t Transform) SwapsAxes() bool {
	switch t {
	case Transform90, Transform270, TransformFlipped90, TransformFlipped270:
		return true
	}
	return false
}

// Rotate turns t by n quarter turns clockwise, keeping any reflection.
// Negative n turns counter-clockwise.
func (t Transform) Rotate(n int) Transform {
	flipped := t & TransformFlipped
	turns := (int(t&3) + n%4 + 4) % 4
	return flipped | Transform(turns)
}

// ParseTransform maps a name produced by Transform.String back to a value.
func ParseTransform(s string) (Transform, bool) {
	for t := TransformNormal; t <= TransformFlipped270; t++ {
		if t.String() == s {
			return t, true
		}
	}
	return TransformNormal, false
}

// WorkspaceCoord addresses one cell of an output's workspace grid.
type WorkspaceCoord struct {
	X int
	Y int
}

// PanelSide is the output edge a shell panel reserves space on.
type PanelSide uint32

const (
	PanelTop PanelSide = iota
	PanelBottom
	PanelLeft
	PanelRight
)

// String returns the string representation of the side
func (s PanelSide) String() string {
	switch s {
	case PanelTop:
		return "top"
	case PanelBottom:
		return "bottom"
	case PanelLeft:
		return "left"
	case PanelRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParsePanelSide maps a name produced by PanelSide.String back to a value.
func ParsePanelSide(s string) (PanelSide, bool) {
	for side := PanelTop; side <= PanelRight; side++ {
		if side.String() == s {
			return side, true
		}
	}
	return PanelTop, false
}
