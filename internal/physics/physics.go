// Package physics provides collision tests on circles in canvas space.
package physics

import "gonum.org/v1/gonum/spatial/r2"

// Circle is a collision shape centred on a canvas point.
type Circle struct {
	Center r2.Vec
	Radius float64
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(b, a))
}

// Contains reports whether p lies inside or on the circle.
func (c Circle) Contains(p r2.Vec) bool {
	return r2.Norm2(r2.Sub(p, c.Center)) <= c.Radius*c.Radius
}

// Overlaps reports whether two circles intersect. Touching edges do not count.
func (c Circle) Overlaps(o Circle) bool {
	minDist := c.Radius + o.Radius
	return r2.Norm2(r2.Sub(o.Center, c.Center)) < minDist*minDist
}

// Toward returns the unit vector from a to b, or the zero vector when they coincide.
func Toward(a, b r2.Vec) r2.Vec {
	d := r2.Sub(b, a)
	if d.X == 0 && d.Y == 0 {
		return r2.Vec{}
	}
	return r2.Unit(d)
}
