package geom

import "math"

// Angle is a heading in degrees, normalized to [-180, 180). Zero points up
// the screen (negative Y), increasing clockwise.
type Angle float64

func NewAngle(degrees float64) Angle {
	return Angle(normalize(degrees))
}

// AngleOf returns the heading of a vector.
func AngleOf(p Point) Angle {
	return NewAngle(math.Atan2(p.X, -p.Y) * 180 / math.Pi)
}

func (a Angle) Degrees() float64 { return float64(a) }

func (a Angle) Rotate(degrees float64) Angle {
	return NewAngle(float64(a) + degrees)
}

// Unit is the unit vector pointing along the heading.
func (a Angle) Unit() Point {
	r := float64(a) * math.Pi / 180
	return Point{X: math.Sin(r), Y: -math.Cos(r)}
}

// Toward returns the signed turn, in degrees, from a to b.
func (a Angle) Toward(b Angle) float64 {
	return normalize(float64(b) - float64(a))
}

func normalize(d float64) float64 {
	d = math.Mod(d+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}
