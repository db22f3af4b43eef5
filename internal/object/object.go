// Package object provides the drawable point entity and the moving body that
// game objects are built from.
package object

import (
	"math"

	"github.com/tomz197/driftroids/internal/draw"
)

// Object is anything that can be drawn onto the game canvas.
type Object interface {
	Draw(c *draw.Canvas)
}

// Screen represents canvas dimensions in logical units.
type Screen struct {
	Width  float64
	Height float64
}

// Contains reports whether (x, y) lies inside the screen, edges included.
func (s Screen) Contains(x, y float64) bool {
	return x >= 0 && x <= s.Width && y >= 0 && y <= s.Height
}

// WrapPosition wraps x and y coordinates around screen boundaries (Asteroids-style).
// Wrapped coordinates satisfy 0 <= v < dimension. Non-positive dimensions are left alone.
func (s Screen) WrapPosition(x, y *float64) {
	*x = wrap(*x, s.Width)
	*y = wrap(*y, s.Height)
}

func wrap(v, dim float64) float64 {
	if dim <= 0 {
		return v
	}
	v = math.Mod(v, dim)
	if v < 0 {
		v += dim
	}
	// v+dim can round up to dim for tiny negative v
	if v >= dim {
		v = 0
	}
	return v
}
