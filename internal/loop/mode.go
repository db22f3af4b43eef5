package loop

// Mode is the phase of the current round.
type Mode int

const (
	ModeReady   Mode = iota // Waiting for the first touch
	ModeRunning             // Physics advancing
	ModePaused              // Frozen, last frame still drawn
	ModeLose                // Round lost
	ModeWin                 // Round won
)

func (m Mode) String() string {
	switch m {
	case ModeReady:
		return "ready"
	case ModeRunning:
		return "running"
	case ModePaused:
		return "paused"
	case ModeLose:
		return "lose"
	case ModeWin:
		return "win"
	default:
		return "unknown"
	}
}

// Resources looks up the canned status text shown for a mode.
type Resources interface {
	StatusText(m Mode) string
}

// Texts is a fixed set of status strings.
type Texts struct {
	Ready string
	Pause string
	Lose  string
	Win   string
}

// DefaultTexts returns the built-in English status strings.
func DefaultTexts() Texts {
	return Texts{
		Ready: "Touch to start",
		Pause: "Paused - touch to resume",
		Lose:  "Game over - touch to play again",
		Win:   "You win! Touch to play again",
	}
}

// StatusText implements Resources.
func (t Texts) StatusText(m Mode) string {
	switch m {
	case ModeReady:
		return t.Ready
	case ModePaused:
		return t.Pause
	case ModeLose:
		return t.Lose
	case ModeWin:
		return t.Win
	default:
		return ""
	}
}

// StatusMessage formats the status line for a mode, prefixing the canned
// text with message on its own line when one is given.
func StatusMessage(res Resources, m Mode, message string) string {
	text := res.StatusText(m)
	if message != "" {
		return message + "\n" + text
	}
	return text
}
