// Package event defines the messages the game loop sends to the UI and the
// bounded queue that carries them.
package event

// Visibility of a widget.
type Visibility int

const (
	Visible Visibility = iota
	Invisible
)

func (v Visibility) String() string {
	if v == Visible {
		return "visible"
	}
	return "invisible"
}

// Event is a UI update sent from the game loop. It is one of Score, Lives,
// Submit or Status.
type Event interface {
	isEvent()
}

// Score updates the score display and makes it visible.
type Score struct {
	Text string
}

// Lives updates the lives display and makes it visible.
type Lives struct {
	Text string
}

// Submit asks the UI to collect the player's name.
type Submit struct{}

// Status updates the status text and the menu button visibility.
// Visible buttons hide the score and lives displays.
type Status struct {
	Viz     Visibility
	Buttons Visibility
	Text    string
}

func (Score) isEvent()  {}
func (Lives) isEvent()  {}
func (Submit) isEvent() {}
func (Status) isEvent() {}

// Sink receives events. Send must not block the caller.
type Sink interface {
	Send(e Event)
}
