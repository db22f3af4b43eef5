package loop

// TouchAction identifies the kind of pointer event.
type TouchAction int

const (
	TouchDown TouchAction = iota
	TouchMove
	TouchUp
)

// TouchEvent is pointer input in canvas coordinates.
type TouchEvent struct {
	Action TouchAction
	X, Y   float64
}
