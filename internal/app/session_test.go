package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomz197/driftroids/internal/config"
	"github.com/tomz197/driftroids/internal/event"
	"github.com/tomz197/driftroids/internal/loop"
	"github.com/tomz197/driftroids/internal/storage"
)

type fakeStore struct {
	saved     []storage.Entry
	qualifies bool
	rankErr   error
	saveErr   error
	lastLimit int
	gate      chan struct{} // Qualifies blocks until closed
}

func (f *fakeStore) SaveScore(e storage.Entry) (storage.Entry, error) {
	if f.saveErr != nil {
		return storage.Entry{}, f.saveErr
	}
	f.saved = append(f.saved, e)
	return e, nil
}

func (f *fakeStore) TopScores(limit int) ([]storage.Entry, error) {
	f.lastLimit = limit
	return f.saved, nil
}

func (f *fakeStore) Qualifies(score int64, limit int) (bool, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.lastLimit = limit
	return f.qualifies, f.rankErr
}

func nextEvent(t *testing.T, q *event.Queue) event.Event {
	t.Helper()
	select {
	case e := <-q.Events():
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
		return nil
	}
}

func TestSessionStartShowsReadyScreen(t *testing.T) {
	cfg := config.Default()
	s := NewSession(cfg, nil, nil, "tester")

	s.Start(context.Background())
	defer s.Stop()

	e := nextEvent(t, s.Queue)
	expected := event.Status{Viz: event.Visible, Buttons: event.Visible, Text: cfg.Text.Ready}
	if e != expected {
		t.Errorf("first event = %#v, expected %#v", e, expected)
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.Surface.Posted() == 0 && time.Now().Before(deadline) {
		s.Surface.Resize(40, 12)
		time.Sleep(5 * time.Millisecond)
	}
	if s.Surface.Posted() == 0 {
		t.Error("loop never posted a frame")
	}
}

func TestSessionTouchStartsRound(t *testing.T) {
	s := NewSession(config.Default(), nil, nil, "tester")
	s.Start(context.Background())
	defer s.Stop()
	nextEvent(t, s.Queue)

	s.Loop.Touch(loop.TouchEvent{Action: loop.TouchDown})

	if s.Loop.Mode() != loop.ModeRunning {
		t.Errorf("Mode() = %v, expected running", s.Loop.Mode())
	}
	if s.Loop.Lives() != config.Default().Game.Lives {
		t.Errorf("Lives() = %d, expected %d", s.Loop.Lives(), config.Default().Game.Lives)
	}
	if s.World.Asteroids() != 5 {
		t.Errorf("asteroids = %d, expected 5 on normal", s.World.Asteroids())
	}
}

func TestSessionStopIsIdempotent(t *testing.T) {
	s := NewSession(config.Default(), nil, nil, "tester")
	s.Stop()

	s.Start(context.Background())
	s.Start(context.Background())
	s.Stop()
	s.Stop()
	if s.Loop.IsRunning() {
		t.Error("loop still running after Stop")
	}
}

func TestSessionStopsWithContext(t *testing.T) {
	s := NewSession(config.Default(), nil, nil, "tester")
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	cancel()

	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop on cancel")
	}
}

func TestSubmitSavesRound(t *testing.T) {
	store := &fakeStore{}
	cfg := config.Default()
	cfg.Game.Difficulty = "hard"
	s := NewSession(cfg, store, nil, "guest")

	s.Loop.Setup()
	s.Loop.SetScore(340)

	s.submit("ada")
	s.submit("")

	if len(store.saved) != 2 {
		t.Fatalf("saved %d entries, expected 2", len(store.saved))
	}
	if store.saved[0] != (storage.Entry{Name: "ada", Score: 340, Difficulty: "hard"}) {
		t.Errorf("saved = %+v", store.saved[0])
	}
	if store.saved[1].Name != "guest" {
		t.Errorf("empty name saved as %q, expected the player name", store.saved[1].Name)
	}
}

func TestSubmitErrorIsLogged(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("locked")}
	s := NewSession(config.Default(), store, nil, "guest")
	s.submit("ada")
	if len(store.saved) != 0 {
		t.Error("failed save should not be recorded")
	}
}

func TestQualifies(t *testing.T) {
	tests := []struct {
		name     string
		store    *fakeStore
		expected bool
	}{
		{"no store", nil, false},
		{"qualifying", &fakeStore{qualifies: true}, true},
		{"not qualifying", &fakeStore{qualifies: false}, false},
		{"rank error", &fakeStore{qualifies: true, rankErr: errors.New("boom")}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var store ScoreStore
			if tc.store != nil {
				store = tc.store
			}
			s := NewSession(config.Default(), store, nil, "p")
			if got := s.qualifies(100); got != tc.expected {
				t.Errorf("qualifies() = %v, expected %v", got, tc.expected)
			}
			if tc.store != nil && tc.store.lastLimit != config.Default().Storage.TableSize {
				t.Errorf("limit = %d, expected the table size", tc.store.lastLimit)
			}
		})
	}
}

func TestRoundOverRanksOffTheLoop(t *testing.T) {
	store := &fakeStore{qualifies: true, gate: make(chan struct{})}
	s := NewSession(config.Default(), store, nil, "p")
	s.Loop.SetState(loop.ModeLose, "Score: 90")
	nextEvent(t, s.Queue)

	returned := make(chan struct{})
	go func() {
		s.roundOver(90)
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("roundOver waited for the score store")
	}

	// The loop stays usable while the lookup is outstanding
	if s.Loop.Mode() != loop.ModeLose {
		t.Errorf("Mode() = %v, expected lose", s.Loop.Mode())
	}
	if s.Queue.Len() != 0 {
		t.Error("name requested before the score was ranked")
	}

	close(store.gate)
	s.ranking.Wait()
	if e := nextEvent(t, s.Queue); e != (event.Submit{}) {
		t.Errorf("event = %#v, expected a name request", e)
	}
}

func TestRoundOverSkipsNameRequest(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeStore
		mode  loop.Mode
		score int64
	}{
		{"not qualifying", &fakeStore{qualifies: false}, loop.ModeLose, 90},
		{"new round started", &fakeStore{qualifies: true}, loop.ModeRunning, 90},
		{"no points", &fakeStore{qualifies: true}, loop.ModeWin, 0},
		{"no store", nil, loop.ModeLose, 90},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var store ScoreStore
			if tc.store != nil {
				store = tc.store
			}
			s := NewSession(config.Default(), store, nil, "p")
			s.Loop.SetState(tc.mode, "")

			s.roundOver(tc.score)
			s.ranking.Wait()

			for s.Queue.Len() > 0 {
				if e := <-s.Queue.Events(); e == (event.Submit{}) {
					t.Error("name requested")
				}
			}
		})
	}
}

func TestCycleDifficulty(t *testing.T) {
	s := NewSession(config.Default(), &fakeStore{}, nil, "p")
	if got := s.cycleDifficulty(); got != "hard" {
		t.Errorf("cycleDifficulty() = %q, expected hard", got)
	}
	if s.World.Difficulty().Name != "hard" {
		t.Errorf("difficulty = %q, expected hard after one cycle", s.World.Difficulty().Name)
	}
}

func TestConversions(t *testing.T) {
	cfg := config.Default()

	ds := Difficulties(cfg)
	if len(ds) != len(cfg.Game.Presets) {
		t.Fatalf("got %d difficulties, expected %d", len(ds), len(cfg.Game.Presets))
	}
	for i, p := range cfg.Game.Presets {
		if ds[i].Name != p.Name || ds[i].Asteroids != p.Asteroids || ds[i].Speed != p.Speed {
			t.Errorf("difficulty %d = %+v, expected %+v", i, ds[i], p)
		}
	}

	texts := Texts(cfg)
	if texts.StatusText(loop.ModeLose) != cfg.Text.Lose {
		t.Errorf("lose text = %q", texts.StatusText(loop.ModeLose))
	}
}
