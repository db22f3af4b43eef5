// Package ui is the Bubble Tea front end of a game session. It applies the
// loop's UI events to the on-screen widgets and turns mouse and keyboard
// input into touches.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tomz197/driftroids/internal/event"
	"github.com/tomz197/driftroids/internal/loop"
	"github.com/tomz197/driftroids/internal/storage"
)

// Screen rows reserved around the canvas.
const (
	hudRows    = 1 // Score, lives and difficulty
	footerRows = 4 // Status (two lines), buttons, name entry
)

// Controller is the part of the game loop driven by input.
type Controller interface {
	Touch(t loop.TouchEvent) bool
	Pause()
}

// Screen presents the loop's frames and maps pointer cells onto the canvas.
type Screen interface {
	Frame() string
	Resize(cols, rows int)
	CellToLogical(col, row int) (x, y float64)
}

// Options wires the handler to the rest of the session. Nil callbacks disable
// the matching button.
type Options struct {
	Events    <-chan event.Event
	FrameTime time.Duration

	Difficulty      func() string
	CycleDifficulty func() string
	HighScores      func() ([]storage.Entry, error)
	Submit          func(name string)
}

type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayScores
)

// label is a text widget that can be hidden.
type label struct {
	text    string
	visible bool
}

// Model is the Bubble Tea model of a game session.
type Model struct {
	ctrl   Controller
	screen Screen
	opts   Options
	keys   KeyMap

	width, height int
	pointerX      float64
	pointerY      float64

	score   label
	lives   label
	status  label
	buttons bool

	name        textinput.Model
	nameVisible bool

	overlay  overlay
	help     help.Model
	scores   table.Model
	scoreErr error

	quitting bool
}

// eventMsg carries one UI event from the loop.
type eventMsg struct {
	e event.Event
}

// frameMsg triggers a redraw of the latest frame.
type frameMsg time.Time

// New creates the handler. Status and buttons start hidden until the loop
// reports its first state.
func New(ctrl Controller, screen Screen, opts Options) Model {
	if opts.FrameTime <= 0 {
		opts.FrameTime = loop.DefaultFrameTime
	}

	name := textinput.New()
	name.Placeholder = "your name"
	name.Prompt = "Name: "
	name.CharLimit = storage.MaxNameLength

	h := help.New()
	h.ShowAll = true

	return Model{
		ctrl:   ctrl,
		screen: screen,
		opts:   opts,
		keys:   DefaultKeyMap(),
		name:   name,
		help:   h,
	}
}

// Init starts the frame ticker and the event pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.opts.FrameTime), waitForEvent(m.opts.Events))
}

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// waitForEvent blocks on the next loop event.
func waitForEvent(ch <-chan event.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg{e: e}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.apply(msg.e)
		return m, tea.Batch(cmd, waitForEvent(m.opts.Events))

	case frameMsg:
		return m, frameCmd(m.opts.FrameTime)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.screen.Resize(msg.Width, m.canvasRows())
		m.help.Width = msg.Width
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// apply updates the widgets for one loop event.
func (m *Model) apply(e event.Event) tea.Cmd {
	switch e := e.(type) {
	case event.Score:
		m.score = label{text: e.Text, visible: true}
	case event.Lives:
		m.lives = label{text: e.Text, visible: true}
	case event.Submit:
		m.nameVisible = true
		m.name.SetValue("")
		return m.name.Focus()
	case event.Status:
		m.status.visible = e.Viz == event.Visible
		m.status.text = e.Text
		m.buttons = e.Buttons == event.Visible
		if m.buttons {
			m.score.visible = false
			m.lives.visible = false
		} else {
			m.overlay = overlayNone
		}
	}
	return nil
}

func (m Model) canvasRows() int {
	return max(m.height-hudRows-footerRows, 0)
}

// handleMouse maps a press to a touch-down and motion to a touch-move.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	row := msg.Y - hudRows
	if row < 0 || row >= m.canvasRows() || msg.X < 0 || msg.X >= m.width {
		return
	}
	x, y := m.screen.CellToLogical(msg.X, row)

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.pointerX, m.pointerY = x, y
		if !m.nameVisible && m.overlay == overlayNone {
			m.ctrl.Touch(loop.TouchEvent{Action: loop.TouchDown, X: x, Y: y})
		}
	case msg.Action == tea.MouseActionMotion:
		m.pointerX, m.pointerY = x, y
		m.ctrl.Touch(loop.TouchEvent{Action: loop.TouchMove, X: x, Y: y})
	case msg.Action == tea.MouseActionRelease:
		m.ctrl.Touch(loop.TouchEvent{Action: loop.TouchUp, X: x, Y: y})
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.nameVisible {
		return m.handleNameKey(msg)
	}

	if m.overlay != overlayNone {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Scores):
			m.overlay = overlayNone
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Touch):
		m.ctrl.Touch(loop.TouchEvent{Action: loop.TouchDown, X: m.pointerX, Y: m.pointerY})
	case key.Matches(msg, m.keys.Pause):
		m.ctrl.Pause()
	case m.buttons && key.Matches(msg, m.keys.Difficulty):
		if m.opts.CycleDifficulty != nil {
			m.opts.CycleDifficulty()
		}
	case m.buttons && key.Matches(msg, m.keys.Scores):
		if m.opts.HighScores != nil {
			m.loadScores()
			m.overlay = overlayScores
		}
	case m.buttons && key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
	}
	return m, nil
}

// handleNameKey edits the name field; enter submits it and esc discards it.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.opts.Submit != nil {
			m.opts.Submit(m.name.Value())
		}
		m.closeName()
		return m, nil
	case tea.KeyEsc:
		m.closeName()
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func (m *Model) closeName() {
	m.name.Blur()
	m.name.SetValue("")
	m.nameVisible = false
}

// loadScores fills the high-score table.
func (m *Model) loadScores() {
	entries, err := m.opts.HighScores()
	m.scoreErr = err

	rows := make([]table.Row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, table.Row{
			itoa(int64(i + 1)),
			e.Name,
			itoa(e.Score),
			e.Difficulty,
		})
	}

	m.scores = table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 3},
			{Title: "Name", Width: storage.MaxNameLength},
			{Title: "Score", Width: 8},
			{Title: "Level", Width: 8},
		}),
		table.WithRows(rows),
		table.WithHeight(max(len(rows), 1)+1),
	)
}
