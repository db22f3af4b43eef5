package draw

import (
	"os"

	"golang.org/x/term"
)

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// TerminalSizeOr returns the size reported by sizeFunc, or the fallback
// dimensions when the size cannot be determined (e.g. output is not a tty).
func TerminalSizeOr(sizeFunc TermSizeFunc, fallbackW, fallbackH int) (int, int) {
	if sizeFunc == nil {
		return fallbackW, fallbackH
	}
	w, h, err := sizeFunc()
	if err != nil || w <= 0 || h <= 0 {
		return fallbackW, fallbackH
	}
	return w, h
}
