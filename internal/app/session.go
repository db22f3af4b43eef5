// Package app assembles one playable game session: the event queue, frame
// surface, asteroid field, game loop and terminal front end.
package app

import (
	"context"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/tomz197/driftroids/internal/config"
	"github.com/tomz197/driftroids/internal/draw"
	"github.com/tomz197/driftroids/internal/event"
	"github.com/tomz197/driftroids/internal/game"
	"github.com/tomz197/driftroids/internal/loop"
	"github.com/tomz197/driftroids/internal/storage"
	"github.com/tomz197/driftroids/internal/ui"
)

// ScoreStore is the high-score persistence a session uses.
type ScoreStore interface {
	SaveScore(e storage.Entry) (storage.Entry, error)
	TopScores(limit int) ([]storage.Entry, error)
	Qualifies(score int64, limit int) (bool, error)
}

// Session is one player's game.
type Session struct {
	Queue   *event.Queue
	Surface *draw.FrameSurface
	World   *game.World
	Loop    *loop.Loop

	cfg    config.Config
	store  ScoreStore
	logger *log.Logger
	player string

	startOnce sync.Once
	cancel    context.CancelFunc
	done      chan struct{}
	ranking   sync.WaitGroup // in-flight high-score checks
}

// NewSession builds a session. store may be nil, which disables high scores.
// player is the default name for saved scores.
func NewSession(cfg config.Config, store ScoreStore, logger *log.Logger, player string) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		Queue:   event.NewQueue(cfg.Loop.QueueSize),
		Surface: draw.NewFrameSurface(cfg.Canvas.Width, cfg.Canvas.Height),
		cfg:     cfg,
		store:   store,
		logger:  logger,
		player:  player,
		done:    make(chan struct{}),
	}

	s.World = game.NewWorld(game.Options{
		Lives:        cfg.Game.Lives,
		Difficulties: Difficulties(cfg),
		Difficulty:   cfg.Game.Difficulty,
		RoundOver:    s.roundOver,
	})
	s.Loop = loop.New(s.World, s.Surface, s.Queue, loop.Options{
		Resources: Texts(cfg),
		Logger:    logger,
		FrameTime: cfg.Loop.FrameTime(),
	})
	s.Loop.SetSurfaceSize(cfg.Canvas.Width, cfg.Canvas.Height)

	return s
}

// Difficulties converts the configured presets.
func Difficulties(cfg config.Config) []game.Difficulty {
	out := make([]game.Difficulty, 0, len(cfg.Game.Presets))
	for _, p := range cfg.Game.Presets {
		out = append(out, game.Difficulty{Name: p.Name, Asteroids: p.Asteroids, Speed: p.Speed})
	}
	return out
}

// Texts converts the configured status strings.
func Texts(cfg config.Config) loop.Texts {
	return loop.Texts{
		Ready: cfg.Text.Ready,
		Pause: cfg.Text.Pause,
		Lose:  cfg.Text.Lose,
		Win:   cfg.Text.Win,
	}
}

// Start shows the ready screen and runs the loop until ctx is done or Stop
// is called. Later calls do nothing.
func (s *Session) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		ctx, s.cancel = context.WithCancel(ctx)
		s.Loop.SetState(loop.ModeReady, "")
		go func() {
			defer close(s.done)
			s.Loop.Run(ctx)
		}()
	})
}

// Stop halts the loop and waits for it to exit. It is a no-op before Start.
func (s *Session) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.Loop.SetRunning(false)
	<-s.done
	s.ranking.Wait()
	s.logger.Debug("session stopped", "player", s.player, "droppedEvents", s.Queue.Dropped())
}

// Model returns the terminal front end for the session.
func (s *Session) Model() ui.Model {
	opts := ui.Options{
		Events:          s.Queue.Events(),
		FrameTime:       s.cfg.Loop.FrameTime(),
		Difficulty:      func() string { return s.World.Difficulty().Name },
		CycleDifficulty: s.cycleDifficulty,
	}
	if s.store != nil {
		opts.HighScores = func() ([]storage.Entry, error) {
			return s.store.TopScores(s.cfg.Storage.TableSize)
		}
		opts.Submit = s.submit
	}
	return ui.New(s.Loop, s.Surface, opts)
}

// Run plays the session in the terminal until the player quits.
func (s *Session) Run(ctx context.Context, opts ...tea.ProgramOption) error {
	s.Start(ctx)
	defer s.Stop()

	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	}, opts...)

	_, err := tea.NewProgram(s.Model(), opts...).Run()
	return err
}

func (s *Session) cycleDifficulty() string {
	d := s.World.CycleDifficulty()
	s.logger.Debug("difficulty changed", "player", s.player, "difficulty", d.Name)
	return d.Name
}

// roundOver runs with the loop lock held, so the table lookup happens on its
// own goroutine. The name is only requested if no new round has started.
func (s *Session) roundOver(score int64) {
	if s.store == nil || score <= 0 {
		return
	}
	s.ranking.Add(1)
	go func() {
		defer s.ranking.Done()
		if !s.qualifies(score) {
			return
		}
		if m := s.Loop.Mode(); m == loop.ModeLose || m == loop.ModeWin {
			s.Loop.RequestName()
		}
	}()
}

func (s *Session) qualifies(score int64) bool {
	if s.store == nil {
		return false
	}
	ok, err := s.store.Qualifies(score, s.cfg.Storage.TableSize)
	if err != nil {
		s.logger.Warn("cannot rank score", "error", err)
		return false
	}
	return ok
}

// submit saves the last round under the entered name.
func (s *Session) submit(name string) {
	if name == "" {
		name = s.player
	}
	entry, err := s.store.SaveScore(storage.Entry{
		Name:       name,
		Score:      s.Loop.Score(),
		Difficulty: s.World.RoundDifficulty(),
	})
	if err != nil {
		s.logger.Error("cannot save score", "player", s.player, "error", err)
		return
	}
	s.logger.Info("score saved", "name", entry.Name, "score", entry.Score, "round", entry.RoundID)
}
