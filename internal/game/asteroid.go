package game

import (
	"math"
	"math/rand"

	"github.com/tomz197/driftroids/internal/draw"
	"github.com/tomz197/driftroids/internal/object"
	"github.com/tomz197/driftroids/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// AsteroidSize is the size class of an asteroid.
type AsteroidSize int

const (
	AsteroidSmall AsteroidSize = iota + 1
	AsteroidMedium
	AsteroidLarge
)

// Radius returns the collision and draw radius for the size.
func (s AsteroidSize) Radius() float64 {
	switch s {
	case AsteroidLarge:
		return 40
	case AsteroidMedium:
		return 24
	default:
		return 12
	}
}

// Cruise returns the velocity the asteroid never drifts below.
func (s AsteroidSize) Cruise() float64 {
	switch s {
	case AsteroidLarge:
		return 0.35
	case AsteroidMedium:
		return 0.5
	default:
		return 0.7
	}
}

// Points returns the score for destroying an asteroid of this size.
func (s AsteroidSize) Points() int64 {
	switch s {
	case AsteroidLarge:
		return 20
	case AsteroidMedium:
		return 50
	default:
		return 100
	}
}

// Asteroid is a tumbling rock. Asteroids spawned off-canvas fly in without
// wrapping and start wrapping once they are fully inside.
type Asteroid struct {
	*object.Mover
	Size AsteroidSize

	cruise   float64
	spin     float64   // Degrees per second
	rotation float64   // Current outline rotation in degrees
	outline  []float64 // Vertex distances from centre
}

// NewAsteroid creates an asteroid. entering asteroids start outside the
// canvas and ignore the bounds until they have crossed in.
func NewAsteroid(rng *rand.Rand, x, y, width, height float64, size AsteroidSize, angle, speedScale float64, entering bool) *Asteroid {
	cruise := size.Cruise() * speedScale
	radius := size.Radius()

	verts := 8 + rng.Intn(5)
	outline := make([]float64, verts)
	for i := range outline {
		outline[i] = radius * (0.75 + rng.Float64()*0.35)
	}

	return &Asteroid{
		Mover:    object.NewEnteringMover(x, y, width, height, angle, cruise*1.5, entering),
		Size:     size,
		cruise:   cruise,
		spin:     (rng.Float64() - 0.5) * 120,
		rotation: rng.Float64() * 360,
		outline:  outline,
	}
}

// NewEdgeAsteroid creates an entering asteroid just beyond a random canvas
// edge, aimed at a random point in the middle half of the canvas so it
// always crosses in, whatever the aspect ratio.
func NewEdgeAsteroid(rng *rand.Rand, width, height float64, size AsteroidSize, speedScale float64) *Asteroid {
	r := size.Radius()
	var x, y float64
	switch rng.Intn(4) {
	case 0:
		x, y = rng.Float64()*width, -r
	case 1:
		x, y = rng.Float64()*width, height+r
	case 2:
		x, y = -r, rng.Float64()*height
	default:
		x, y = width+r, rng.Float64()*height
	}

	tx := width * (0.25 + rng.Float64()*0.5)
	ty := height * (0.25 + rng.Float64()*0.5)
	angle := math.Atan2(tx-x, ty-y) * 180 / math.Pi
	return NewAsteroid(rng, x, y, width, height, size, angle, speedScale, true)
}

// Update moves the asteroid. Once it has entered the canvas it wraps.
func (a *Asteroid) Update(dt float64) {
	a.Advance(dt)
	if !a.EnteringBounds && !a.Wrap {
		a.Wrap = true
	}
	if a.Velocity < a.cruise {
		a.Velocity = a.cruise
	}
	a.rotation = math.Mod(a.rotation+a.spin*dt, 360)
}

// Split returns the two fragments left after a hit; small asteroids leave none.
func (a *Asteroid) Split(rng *rand.Rand, speedScale float64) []*Asteroid {
	if a.Size <= AsteroidSmall {
		return nil
	}
	b := a.Bounds()
	spread := 30 + rng.Float64()*30
	next := a.Size - 1
	return []*Asteroid{
		NewAsteroid(rng, a.X, a.Y, b.Width, b.Height, next, a.Angle+spread, speedScale, false),
		NewAsteroid(rng, a.X, a.Y, b.Width, b.Height, next, a.Angle-spread, speedScale, false),
	}
}

// Collider returns the asteroid's collision circle.
func (a *Asteroid) Collider() physics.Circle {
	return physics.Circle{Center: r2.Vec{X: a.X, Y: a.Y}, Radius: a.Size.Radius()}
}

// Draw renders the asteroid outline.
func (a *Asteroid) Draw(c *draw.Canvas) {
	points := c.BorrowPoints(len(a.outline))
	step := 360 / float64(len(a.outline))
	for i, dist := range a.outline {
		rad := (a.rotation + float64(i)*step) / 180 * math.Pi
		points[i] = draw.Point{
			X: a.X + math.Sin(rad)*dist,
			Y: a.Y + math.Cos(rad)*dist,
		}
	}
	c.DrawPolygon(points, false)
}
