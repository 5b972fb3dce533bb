package geom

import "math"

// Point is a 2D position or vector in world units.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func P(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y} }
func (p Point) Mul(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) Dot(o Point) float64 { return p.X*o.X + p.Y*o.Y }
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }
func (p Point) LengthSquared() float64 { return p.X*p.X + p.Y*p.Y }
func (p Point) Distance(o Point) float64 { return math.Hypot(o.X-p.X, o.Y-p.Y) }

func (p Point) DistanceSquared(o Point) float64 {
	dx, dy := o.X-p.X, o.Y-p.Y
	return dx*dx + dy*dy
}

// Unit returns p scaled to length one, or the zero point for a zero vector.
func (p Point) Unit() Point {
	l := p.Length()
	if l == 0 {
		return Point{}
	}
	return Point{p.X / l, p.Y / l}
}

// Clamp limits the vector's length to max.
func (p Point) Clamp(max float64) Point {
	l := p.Length()
	if l <= max || l == 0 {
		return p
	}
	return p.Mul(max / l)
}
