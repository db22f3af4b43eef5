// Package loop provides the game loop: a goroutine that advances physics at a
// variable time step, draws onto a locked surface, and runs the round state
// machine, reporting UI updates as events.
package loop

import (
	"context"
	"io"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/driftroids/internal/draw"
	"github.com/tomz197/driftroids/internal/event"
)

// SetupGrace delays the first physics tick after a new round starts.
const SetupGrace = 100 * time.Millisecond

// DefaultFrameTime paces the loop at 60 frames per second.
const DefaultFrameTime = time.Second / 60

// Game supplies the per-round behaviour the loop drives. Every hook is called
// with the loop's lock held; hooks change loop state only through the Session
// they are given.
type Game interface {
	// SetupBeginning resets the world for a new round.
	SetupBeginning(s Session)

	// UpdateGame advances the world by secondsElapsed.
	UpdateGame(s Session, secondsElapsed float64)

	// ActionOnTouch handles a touch at canvas coordinates (x, y).
	ActionOnTouch(s Session, x, y float64)

	// Draw renders the world. The canvas is already cleared.
	Draw(c *draw.Canvas)
}

// Resizer is implemented by games that react to canvas size changes.
type Resizer interface {
	Resize(width, height float64)
}

// MoveTracker is implemented by games that handle pointer moves separately
// from touches. Games without it receive moves through ActionOnTouch.
type MoveTracker interface {
	ActionOnMove(s Session, x, y float64)
}

// Session is the lock-held view of the loop handed to Game hooks.
type Session interface {
	Mode() Mode
	Score() int64
	SetScore(v int64)
	AddScore(delta int64)
	Lives() int
	SetLives(n int)
	SetState(m Mode, message string)
	RequestName()
	Size() (width, height float64)
}

// Options configures a Loop.
type Options struct {
	Resources Resources
	Logger    *log.Logger
	FrameTime time.Duration
	Clock     func() time.Time
}

// Loop owns the timed game loop and the session state of the current round.
// A single mutex guards mode, canvas size, timing, score and lives.
type Loop struct {
	mu sync.Mutex

	game    Game
	surface draw.Surface
	sink    event.Sink

	res       Resources
	logger    *log.Logger
	now       func() time.Time
	frameTime time.Duration

	mode         Mode
	canvasWidth  float64
	canvasHeight float64
	lastUpdate   time.Time
	score        int64
	lives        int

	running atomic.Bool
	session session
}

// New creates a loop in ModeReady. Nothing is sent to sink until the first
// state change.
func New(game Game, surface draw.Surface, sink event.Sink, opts Options) *Loop {
	l := &Loop{
		game:         game,
		surface:      surface,
		sink:         sink,
		res:          opts.Resources,
		logger:       opts.Logger,
		now:          opts.Clock,
		frameTime:    opts.FrameTime,
		mode:         ModeReady,
		canvasWidth:  1,
		canvasHeight: 1,
	}
	if l.res == nil {
		l.res = DefaultTexts()
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.frameTime <= 0 {
		l.frameTime = DefaultFrameTime
	}
	l.session = session{l: l}
	return l
}

// Run drives the loop until SetRunning(false) is called or ctx is done.
func (l *Loop) Run(ctx context.Context) {
	l.running.Store(true)
	l.logger.Debug("loop started", "frameTime", l.frameTime)
	defer l.logger.Debug("loop stopped")

	for l.running.Load() {
		frameStart := time.Now()

		l.frame()

		elapsed := time.Since(frameStart)
		wait := l.frameTime - elapsed
		if wait < 0 {
			wait = 0
		}

		select {
		case <-ctx.Done():
			l.running.Store(false)
			return
		case <-time.After(wait):
		}
	}
}

// frame runs one iteration: acquire the surface, update physics if running,
// draw, and present. The surface is released even if drawing panics.
func (l *Loop) frame() {
	c := l.surface.Lock()
	if c != nil {
		defer l.surface.UnlockAndPost(c)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.mode == ModeRunning {
		l.updatePhysics()
	}
	if c != nil {
		c.Clear()
		l.game.Draw(c)
	}
}

func (l *Loop) updatePhysics() {
	now := l.now()
	if now.Before(l.lastUpdate) {
		return
	}

	l.game.UpdateGame(l.session, now.Sub(l.lastUpdate).Seconds())

	l.lastUpdate = now
}

// SetRunning sets the flag the loop checks before each iteration.
func (l *Loop) SetRunning(running bool) {
	l.running.Store(running)
}

// IsRunning reports whether the loop is (or will keep) iterating.
func (l *Loop) IsRunning() bool {
	return l.running.Load()
}

// Setup starts a new round.
func (l *Loop) Setup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setupLocked()
}

func (l *Loop) setupLocked() {
	l.game.SetupBeginning(l.session)
	l.lastUpdate = l.now().Add(SetupGrace)
	l.setStateLocked(ModeRunning, "")
	l.setScoreLocked(0)
}

// SetSurfaceSize updates the canvas dimensions.
func (l *Loop) SetSurfaceSize(width, height float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.canvasWidth = width
	l.canvasHeight = height
	if r, ok := l.game.(Resizer); ok {
		r.Resize(width, height)
	}
}

// Touch delivers pointer input. A touch-down starts a new round from
// ready/lose/win, resumes from pause, and otherwise reaches the game; moves
// always reach the game. Returns true when the touch changed the mode.
func (l *Loop) Touch(t TouchEvent) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch t.Action {
	case TouchMove:
		if mt, ok := l.game.(MoveTracker); ok {
			mt.ActionOnMove(l.session, t.X, t.Y)
		} else {
			l.game.ActionOnTouch(l.session, t.X, t.Y)
		}
	case TouchDown:
		switch l.mode {
		case ModeReady, ModeLose, ModeWin:
			l.setupLocked()
			return true
		case ModePaused:
			l.unpauseLocked()
			return true
		}
		l.game.ActionOnTouch(l.session, t.X, t.Y)
	}

	return false
}

// Pause freezes a running round.
func (l *Loop) Pause() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.mode == ModeRunning {
		l.setStateLocked(ModePaused, "")
	}
}

// Unpause resumes a paused round.
func (l *Loop) Unpause() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.mode == ModePaused {
		l.unpauseLocked()
	}
}

// unpauseLocked moves the clock up to now so the pause is not applied as
// elapsed time on the next tick.
func (l *Loop) unpauseLocked() {
	l.lastUpdate = l.now()
	l.setStateLocked(ModeRunning, "")
}

// SetState switches mode and reports the new status to the UI.
func (l *Loop) SetState(m Mode, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setStateLocked(m, message)
}

func (l *Loop) setStateLocked(m Mode, message string) {
	if l.mode != m {
		l.logger.Debug("mode change", "from", l.mode, "to", m)
	}
	l.mode = m

	if m == ModeRunning {
		l.sink.Send(event.Status{Viz: event.Invisible, Buttons: event.Invisible})
		return
	}

	// The menu stays hidden while paused so score and lives remain on screen
	buttons := event.Visible
	if m == ModePaused {
		buttons = event.Invisible
	}
	l.sink.Send(event.Status{
		Viz:     event.Visible,
		Buttons: buttons,
		Text:    StatusMessage(l.res, m, message),
	})
}

// Mode returns the current mode.
func (l *Loop) Mode() Mode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mode
}

// Score returns the current score.
func (l *Loop) Score() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.score
}

// SetScore sets the score and reports it to the UI.
func (l *Loop) SetScore(v int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setScoreLocked(v)
}

// AddScore adds delta to the score.
func (l *Loop) AddScore(delta int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setScoreLocked(l.score + delta)
}

func (l *Loop) setScoreLocked(v int64) {
	if v < 0 {
		v = 0
	}
	l.score = v
	l.sink.Send(event.Score{Text: strconv.FormatInt(v, 10)})
}

// Lives returns the remaining lives.
func (l *Loop) Lives() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lives
}

// SetLives sets the remaining lives and reports them to the UI.
func (l *Loop) SetLives(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setLivesLocked(n)
}

func (l *Loop) setLivesLocked(n int) {
	l.lives = n
	l.sink.Send(event.Lives{Text: strconv.Itoa(n)})
}

// RequestName asks the UI to collect the player's name.
func (l *Loop) RequestName() {
	l.sink.Send(event.Submit{})
}

// session implements Session on a loop whose lock is already held.
type session struct {
	l *Loop
}

func (s session) Mode() Mode                      { return s.l.mode }
func (s session) Score() int64                    { return s.l.score }
func (s session) SetScore(v int64)                { s.l.setScoreLocked(v) }
func (s session) AddScore(delta int64)            { s.l.setScoreLocked(s.l.score + delta) }
func (s session) Lives() int                      { return s.l.lives }
func (s session) SetLives(n int)                  { s.l.setLivesLocked(n) }
func (s session) SetState(m Mode, message string) { s.l.setStateLocked(m, message) }
func (s session) RequestName()                    { s.l.sink.Send(event.Submit{}) }
func (s session) Size() (float64, float64)        { return s.l.canvasWidth, s.l.canvasHeight }
