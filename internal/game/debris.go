package game

import (
	"math/rand"

	"github.com/tomz197/driftroids/internal/draw"
	"github.com/tomz197/driftroids/internal/object"
)

// DebrisLifetime is how long a debris fragment survives.
const DebrisLifetime = 0.6

// Debris is a short-lived fragment thrown out by an explosion.
type Debris struct {
	*object.Mover
	life float64
}

// Explode returns count fragments flying away from (x, y).
func Explode(rng *rand.Rand, x, y, width, height float64, count int) []*Debris {
	out := make([]*Debris, 0, count)
	for i := 0; i < count; i++ {
		m := object.NewMoverWithVelocity(x, y, width, height, rng.Float64()*360, 0.5+rng.Float64()*1.5)
		m.Wrap = false
		out = append(out, &Debris{
			Mover: m,
			life:  DebrisLifetime * (0.5 + rng.Float64()*0.5),
		})
	}
	return out
}

// Update moves the fragment and reports whether it has expired.
func (d *Debris) Update(dt float64) bool {
	d.Advance(dt)
	d.life -= dt
	return d.life <= 0 || d.ExitedBounds
}

// Draw renders the fragment as its motion streak.
func (d *Debris) Draw(c *draw.Canvas) {
	c.DrawLine(draw.Point{X: d.X, Y: d.Y}, d.Tail())
}
