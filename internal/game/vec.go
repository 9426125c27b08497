package game

import "math"

// Vec3 is a point or direction in world space. Y is up.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

func (v Vec3) Add(o Vec3) Vec3           { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3           { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3      { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64           { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Horizontal() Vec3          { return Vec3{X: v.X, Z: v.Z} }
func (v Vec3) DistanceTo(o Vec3) float64 { return v.Sub(o).Length() }

// Normalized returns the unit vector in the direction of v.
// ok is false for a zero-length vector, in which case the zero vector is returned.
func (v Vec3) Normalized() (Vec3, bool) {
	l := v.Length()
	if l == 0 {
		return Vec3{}, false
	}
	return v.Scale(1 / l), true
}

// Distance calculates the Euclidean distance between two points.
func Distance(a, b Vec3) float64 {
	return a.DistanceTo(b)
}

// NormalizeHeading wraps degrees into [0, 360).
func NormalizeHeading(deg float64) float64 {
	h := math.Mod(deg, 360)
	if h < 0 {
		h += 360
	}
	// -1e-15 wraps to 360 after the add above
	if h >= 360 {
		h = 0
	}
	return h
}

// HeadingToward returns the heading that faces from -> to on the horizontal plane.
// ok is false when the two points coincide horizontally.
func HeadingToward(from, to Vec3) (float64, bool) {
	d := to.Sub(from).Horizontal()
	if d.Length() == 0 {
		return 0, false
	}
	return NormalizeHeading(math.Atan2(d.X, d.Z) * 180 / math.Pi), true
}

// forwardFor is the horizontal unit vector for a heading: 0 faces +Z, 90 faces +X.
func forwardFor(heading float64) Vec3 {
	rad := heading * math.Pi / 180
	f, ok := Vec3{X: math.Sin(rad), Z: math.Cos(rad)}.Normalized()
	if !ok {
		return Vec3{Z: 1}
	}
	return f
}

func rightFor(heading float64) Vec3 {
	return forwardFor(heading + 90)
}

func clampAxis(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
