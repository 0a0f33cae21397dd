package sim

// RectF is an axis-aligned rectangle in world units, y growing downward.
type RectF struct {
	X0, Y0 float64
	X1, Y1 float64
}

// RectXYWH builds a rectangle from its top-left corner and size.
func RectXYWH(x, y, w, h float64) RectF {
	return RectF{X0: x, Y0: y, X1: x + w, Y1: y + h}
}

// Intersects reports overlap on both axes. Rectangles that only share an
// edge do not intersect.
func (r RectF) Intersects(o RectF) bool {
	return r.X0 < o.X1 && r.X1 > o.X0 && r.Y0 < o.Y1 && r.Y1 > o.Y0
}

func (r RectF) W() float64 { return r.X1 - r.X0 }
func (r RectF) H() float64 { return r.Y1 - r.Y0 }
