package draw

import (
	"sync"
	"sync/atomic"
)

// Surface is a drawable area that is locked for drawing and then presented.
// Lock returns nil when no canvas is available; callers skip the frame.
type Surface interface {
	Lock() *Canvas
	UnlockAndPost(c *Canvas)
}

// FrameSurface is a Surface that keeps the last posted frame as a string so a
// separate UI goroutine can display it. Only one goroutine draws at a time.
type FrameSurface struct {
	mu     sync.Mutex // held between Lock and UnlockAndPost
	canvas *Canvas

	sizeMu     sync.Mutex
	pendingW   int
	pendingH   int
	pendingSet bool

	frame  atomic.Pointer[string]
	posted atomic.Uint64
}

// NewFrameSurface creates a surface for the given logical size. The surface
// has no terminal cells until Resize is called, so Lock returns nil until then.
func NewFrameSurface(logicalWidth, logicalHeight float64) *FrameSurface {
	s := &FrameSurface{
		canvas: NewScaledCanvas(0, 0, logicalWidth, logicalHeight),
	}
	empty := ""
	s.frame.Store(&empty)
	return s
}

// Resize sets the terminal cell size used from the next Lock on.
func (s *FrameSurface) Resize(cols, rows int) {
	s.sizeMu.Lock()
	s.pendingW, s.pendingH, s.pendingSet = cols, rows, true
	s.sizeMu.Unlock()
}

// Lock acquires the back buffer, cleared for a new frame.
func (s *FrameSurface) Lock() *Canvas {
	s.mu.Lock()

	s.sizeMu.Lock()
	if s.pendingSet {
		s.canvas.Resize(s.pendingW, s.pendingH)
		s.pendingSet = false
	}
	s.sizeMu.Unlock()

	if s.canvas.TerminalWidth() == 0 || s.canvas.TerminalHeight() == 0 {
		s.mu.Unlock()
		return nil
	}

	s.canvas.Clear()
	return s.canvas
}

// UnlockAndPost publishes the canvas contents and releases the surface.
func (s *FrameSurface) UnlockAndPost(c *Canvas) {
	if c == nil {
		return
	}
	frame := c.String()
	s.frame.Store(&frame)
	s.posted.Add(1)
	s.mu.Unlock()
}

// Frame returns the most recently posted frame.
func (s *FrameSurface) Frame() string {
	return *s.frame.Load()
}

// Posted returns how many frames have been presented.
func (s *FrameSurface) Posted() uint64 {
	return s.posted.Load()
}

// CellToLogical maps a terminal cell to logical canvas coordinates using the
// current canvas scale.
func (s *FrameSurface) CellToLogical(col, row int) (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canvas.CellToLogical(col, row)
}

// Ensure FrameSurface satisfies Surface.
var _ Surface = (*FrameSurface)(nil)
