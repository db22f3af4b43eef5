package object

import (
	"math"

	"github.com/tomz197/driftroids/internal/draw"
)

// Motion constants.
const (
	TailMultiplier  = 10  // Tail length per unit of velocity
	SpeedMultiplier = 100 // Canvas units per second per unit of velocity
	DropOff         = 2   // Divisor of the logarithmic drag term

	// MinVelocity keeps ln(velocity+1) defined.
	MinVelocity = -0.9
)

// Mover is an entity moving along a heading with logarithmic drag.
//
// Angle is in degrees: 0 moves along +Y and positive angles turn clockwise.
// A Mover either wraps around the canvas or reports when it has left it;
// EnteringBounds suppresses that report until the mover has first been inside.
// A wrapping mover never sets ExitedBounds, even while briefly off-canvas.
type Mover struct {
	Entity
	Angle    float64
	Velocity float64

	Wrap           bool
	EnteringBounds bool
	ExitedBounds   bool

	screen Screen
}

// NewMover creates a stationary wrapping mover.
func NewMover(x, y, width, height float64) *Mover {
	return NewEnteringMover(x, y, width, height, 0, 0, false)
}

// NewMoverWithVelocity creates a wrapping mover with an initial heading and velocity.
func NewMoverWithVelocity(x, y, width, height, angle, velocity float64) *Mover {
	return NewEnteringMover(x, y, width, height, angle, velocity, false)
}

// NewEnteringMover creates a mover; entering movers start off-canvas and do not wrap.
func NewEnteringMover(x, y, width, height, angle, velocity float64, entering bool) *Mover {
	return &Mover{
		Entity:         NewEntity(x, y),
		Angle:          angle,
		Velocity:       velocity,
		Wrap:           !entering,
		EnteringBounds: entering,
		screen:         Screen{Width: width, Height: height},
	}
}

// Bounds returns the canvas the mover moves within.
func (m *Mover) Bounds() Screen {
	return m.screen
}

// Resize updates the canvas bounds.
func (m *Mover) Resize(width, height float64) {
	m.screen = Screen{Width: width, Height: height}
}

// Advance applies drag and moves the mover by secondsElapsed.
// Negative or non-finite elapsed times are ignored.
func (m *Mover) Advance(secondsElapsed float64) {
	if !(secondsElapsed >= 0) || math.IsInf(secondsElapsed, 0) {
		return
	}

	m.Velocity = applyDrag(m.Velocity, secondsElapsed)

	rad := m.Angle / 180 * math.Pi
	speed := m.Velocity * SpeedMultiplier
	x := m.X + speed*math.Sin(rad)*secondsElapsed
	y := m.Y + speed*math.Cos(rad)*secondsElapsed

	if m.screen.Contains(x, y) {
		m.EnteringBounds = false
	} else if !m.EnteringBounds && !m.Wrap {
		m.ExitedBounds = true
	}

	if m.Wrap {
		m.screen.WrapPosition(&x, &y)
	}

	m.X, m.Y = x, y
}

// applyDrag decays velocity by ln(v+1)*dt/DropOff without crossing zero.
func applyDrag(v, dt float64) float64 {
	if v < MinVelocity {
		v = MinVelocity
	}
	next := v - math.Log(v+1)*dt/DropOff
	if (v > 0 && next < 0) || (v < 0 && next > 0) {
		return 0
	}
	return next
}

// Heading returns the angle in degrees that points from the mover towards (x, y).
func (m *Mover) Heading(x, y float64) float64 {
	return math.Atan2(x-m.X, y-m.Y) * 180 / math.Pi
}

// Tail returns the end of the trailing line drawn behind the mover.
func (m *Mover) Tail() draw.Point {
	rad := m.Angle / 180 * math.Pi
	length := m.Velocity * TailMultiplier
	return draw.Point{
		X: m.X - length*math.Sin(rad),
		Y: m.Y - length*math.Cos(rad),
	}
}

// Draw renders the velocity tail followed by the entity marker.
func (m *Mover) Draw(c *draw.Canvas) {
	c.DrawLine(draw.Point{X: m.X, Y: m.Y}, m.Tail())
	m.Entity.Draw(c)
}
