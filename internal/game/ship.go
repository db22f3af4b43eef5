package game

import (
	"math"

	"github.com/tomz197/driftroids/internal/draw"
	"github.com/tomz197/driftroids/internal/object"
	"github.com/tomz197/driftroids/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Ship tuning.
const (
	ShipSize          = 12   // Nose distance from centre
	ShipRadius        = 8    // Collision radius
	ShipThrust        = 0.6  // Velocity added per touch
	ShipMaxVelocity   = 2.5  // Velocity cap
	ShipFireCooldown  = 0.15 // Seconds between shots
	ShipRespawnShield = 2.0  // Seconds of invincibility after a respawn
)

// Ship is the player's craft. It faces the pointer, and each touch pushes it
// forward and fires. It wraps around the canvas.
type Ship struct {
	*object.Mover

	shield   float64 // Seconds of invincibility left
	cooldown float64 // Seconds until the next shot
}

// NewShip creates a stationary ship at (x, y) pointing up the screen.
func NewShip(x, y, width, height float64) *Ship {
	s := &Ship{Mover: object.NewMover(x, y, width, height)}
	s.Angle = 180
	return s
}

// Aim turns the ship to face (x, y).
func (s *Ship) Aim(x, y float64) {
	if x == s.X && y == s.Y {
		return
	}
	s.Angle = s.Heading(x, y)
}

// Thrust adds an impulse along the current heading.
func (s *Ship) Thrust() {
	s.Velocity = math.Min(s.Velocity+ShipThrust, ShipMaxVelocity)
}

// Fire returns a projectile leaving the nose, or nil while reloading. A nose
// past the canvas edge fires from the opposite side, as the ship wraps.
func (s *Ship) Fire() *Projectile {
	if s.cooldown > 0 {
		return nil
	}
	s.cooldown = ShipFireCooldown
	nose := s.nose()
	b := s.Bounds()
	b.WrapPosition(&nose.X, &nose.Y)
	return NewProjectile(nose.X, nose.Y, b.Width, b.Height, s.Angle, ProjectileVelocity+math.Max(s.Velocity, 0))
}

// Shield grants invincibility for the given number of seconds.
func (s *Ship) Shield(seconds float64) {
	s.shield = seconds
}

// Shielded reports whether the ship is currently invincible.
func (s *Ship) Shielded() bool {
	return s.shield > 0
}

// Update moves the ship and counts down its timers.
func (s *Ship) Update(dt float64) {
	s.Advance(dt)
	s.shield = math.Max(s.shield-dt, 0)
	s.cooldown = math.Max(s.cooldown-dt, 0)
}

// Collider returns the ship's collision circle.
func (s *Ship) Collider() physics.Circle {
	return physics.Circle{Center: r2.Vec{X: s.X, Y: s.Y}, Radius: ShipRadius}
}

func (s *Ship) nose() draw.Point {
	return s.vertex(0, ShipSize)
}

func (s *Ship) vertex(offset, length float64) draw.Point {
	rad := (s.Angle + offset) / 180 * math.Pi
	return draw.Point{
		X: s.X + math.Sin(rad)*length,
		Y: s.Y + math.Cos(rad)*length,
	}
}

// Draw renders the ship as a triangle. A shielded ship blinks.
func (s *Ship) Draw(c *draw.Canvas) {
	if s.Shielded() && int(s.shield*8)%2 == 1 {
		return
	}

	points := c.BorrowPoints(3)
	points[0] = s.nose()
	points[1] = s.vertex(140, ShipSize*0.7)
	points[2] = s.vertex(-140, ShipSize*0.7)
	c.DrawPolygon(points, true)

	if s.Velocity > 0 {
		c.DrawLine(draw.Point{X: s.X, Y: s.Y}, s.Tail())
	}
}
