package object

import "github.com/tomz197/driftroids/internal/draw"

// EntitySize is the radius every entity is rendered with.
const EntitySize = 10

// Entity is a drawable point.
type Entity struct {
	X, Y float64
}

// NewEntity creates an entity at (x, y).
func NewEntity(x, y float64) Entity {
	return Entity{X: x, Y: y}
}

// Draw renders the entity as a filled circle marker.
func (e *Entity) Draw(c *draw.Canvas) {
	c.DrawCircle(draw.Point{X: e.X, Y: e.Y}, EntitySize)
}
