package game

import (
	"github.com/tomz197/driftroids/internal/draw"
	"github.com/tomz197/driftroids/internal/object"
	"github.com/tomz197/driftroids/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Projectile tuning.
const (
	ProjectileVelocity    = 3.0
	ProjectileMinVelocity = 1.0 // Slower projectiles fizzle out
	ProjectileRadius      = 2
)

// Projectile is a shot that flies straight until it leaves the canvas.
type Projectile struct {
	*object.Mover
	hit bool
}

// NewProjectile creates a non-wrapping projectile at (x, y).
func NewProjectile(x, y, width, height, angle, velocity float64) *Projectile {
	m := object.NewMoverWithVelocity(x, y, width, height, angle, velocity)
	m.Wrap = false
	return &Projectile{Mover: m}
}

// Dead reports whether the projectile should be removed.
func (p *Projectile) Dead() bool {
	return p.hit || p.ExitedBounds || p.Velocity < ProjectileMinVelocity
}

// Collider returns the projectile's collision circle.
func (p *Projectile) Collider() physics.Circle {
	return physics.Circle{Center: r2.Vec{X: p.X, Y: p.Y}, Radius: ProjectileRadius}
}

// Draw renders a short streak behind the shot.
func (p *Projectile) Draw(c *draw.Canvas) {
	c.DrawLine(draw.Point{X: p.X, Y: p.Y}, p.Tail())
	c.DrawCircle(draw.Point{X: p.X, Y: p.Y}, ProjectileRadius)
}
