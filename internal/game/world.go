// Package game implements the asteroid field played inside the game loop.
package game

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/tomz197/driftroids/internal/draw"
	"github.com/tomz197/driftroids/internal/loop"
	"github.com/tomz197/driftroids/internal/object"
	"github.com/tomz197/driftroids/internal/physics"
)

// DefaultLives is the number of ships a round starts with.
const DefaultLives = 3

// Options configures a World.
type Options struct {
	Lives        int
	Difficulties []Difficulty
	Difficulty   string // Initial preset name

	// RoundOver receives the final score when a round ends. It runs with the
	// loop lock held and must not block. When nil, the world asks for a name
	// after every round with a positive score.
	RoundOver func(score int64)

	Rand *rand.Rand
}

// World is the asteroid field. It implements loop.Game; every method except
// the difficulty accessors runs with the loop lock held.
type World struct {
	rng          *rand.Rand
	lives        int
	difficulties []Difficulty
	selected     atomic.Int64
	roundOver    func(int64)

	width, height float64
	round         Difficulty
	roundName     atomic.Value // Preset of the latest round, read without the loop lock

	ship        *Ship
	asteroids   []*Asteroid
	projectiles []*Projectile
	debris      []*Debris

	grid *physics.Grid
}

// NewWorld creates an empty world. Asteroids appear on the first SetupBeginning.
func NewWorld(opts Options) *World {
	w := &World{
		rng:          opts.Rand,
		lives:        opts.Lives,
		difficulties: opts.Difficulties,
		roundOver:    opts.RoundOver,
		width:        1,
		height:       1,
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if w.lives <= 0 {
		w.lives = DefaultLives
	}
	if len(w.difficulties) == 0 {
		w.difficulties = DefaultDifficulties()
	}
	if i, ok := FindDifficulty(w.difficulties, opts.Difficulty); ok {
		w.selected.Store(int64(i))
	} else if i, ok := FindDifficulty(w.difficulties, "normal"); ok {
		w.selected.Store(int64(i))
	}
	w.grid = physics.NewGrid(w.width, w.height, cellSize)
	return w
}

// cellSize covers the largest collision distance: a large asteroid against the ship.
const cellSize = 40 + ShipRadius

// Difficulty returns the preset the next round will use.
func (w *World) Difficulty() Difficulty {
	return w.difficulties[w.selected.Load()]
}

// CycleDifficulty selects the next preset and returns it. It takes effect
// when the next round starts.
func (w *World) CycleDifficulty() Difficulty {
	for {
		cur := w.selected.Load()
		next := (cur + 1) % int64(len(w.difficulties))
		if w.selected.CompareAndSwap(cur, next) {
			return w.difficulties[next]
		}
	}
}

// RoundDifficulty returns the preset name of the current or last round.
func (w *World) RoundDifficulty() string {
	name, _ := w.roundName.Load().(string)
	return name
}

// Resize implements loop.Resizer.
func (w *World) Resize(width, height float64) {
	w.width, w.height = width, height
	if w.ship != nil {
		w.ship.Resize(width, height)
	}
	for _, a := range w.asteroids {
		a.Resize(width, height)
	}
	for _, p := range w.projectiles {
		p.Resize(width, height)
	}
	for _, d := range w.debris {
		d.Resize(width, height)
	}
}

// SetupBeginning implements loop.Game.
func (w *World) SetupBeginning(s loop.Session) {
	w.width, w.height = s.Size()
	w.round = w.Difficulty()
	w.roundName.Store(w.round.Name)

	w.ship = NewShip(w.width/2, w.height/2, w.width, w.height)
	w.ship.Shield(ShipRespawnShield / 2)

	w.asteroids = w.asteroids[:0]
	for i := 0; i < w.round.Asteroids; i++ {
		w.asteroids = append(w.asteroids, NewEdgeAsteroid(w.rng, w.width, w.height, AsteroidLarge, w.round.Speed))
	}
	w.projectiles = w.projectiles[:0]
	w.debris = w.debris[:0]

	s.SetLives(w.lives)
}

// ActionOnTouch implements loop.Game: the ship turns to the touch, thrusts
// and fires.
func (w *World) ActionOnTouch(s loop.Session, x, y float64) {
	if s.Mode() != loop.ModeRunning || w.ship == nil {
		return
	}
	w.ship.Aim(x, y)
	w.ship.Thrust()
	if p := w.ship.Fire(); p != nil {
		w.projectiles = append(w.projectiles, p)
	}
}

// ActionOnMove implements loop.MoveTracker: the ship follows the pointer.
func (w *World) ActionOnMove(s loop.Session, x, y float64) {
	if s.Mode() != loop.ModeRunning || w.ship == nil {
		return
	}
	w.ship.Aim(x, y)
}

// UpdateGame implements loop.Game.
func (w *World) UpdateGame(s loop.Session, dt float64) {
	if w.ship == nil {
		return
	}

	w.ship.Update(dt)
	for _, a := range w.asteroids {
		a.Update(dt)
	}
	w.projectiles = filter(w.projectiles, func(p *Projectile) bool {
		p.Advance(dt)
		return !p.Dead()
	})
	w.debris = filter(w.debris, func(d *Debris) bool {
		return !d.Update(dt)
	})

	w.collideProjectiles(s)
	if w.collideShip(s) {
		return
	}

	if len(w.asteroids) == 0 {
		w.endRound(s, loop.ModeWin, "Level cleared")
	}
}

// collideProjectiles destroys every asteroid hit by a shot.
func (w *World) collideProjectiles(s loop.Session) {
	if len(w.projectiles) == 0 || len(w.asteroids) == 0 {
		return
	}

	w.grid.Reset(w.width, w.height, cellSize)
	for i, a := range w.asteroids {
		w.grid.Insert(a.Collider().Center, i)
	}

	hit := make([]bool, len(w.asteroids))
	for _, p := range w.projectiles {
		shot := p.Collider()
		w.grid.Near(shot.Center, func(i int) bool {
			if hit[i] || !w.asteroids[i].Collider().Overlaps(shot) {
				return false
			}
			hit[i] = true
			p.hit = true
			return true
		})
	}

	var survivors []*Asteroid
	for i, a := range w.asteroids {
		if !hit[i] {
			survivors = append(survivors, a)
			continue
		}
		s.AddScore(a.Size.Points())
		w.debris = append(w.debris, Explode(w.rng, a.X, a.Y, w.width, w.height, int(a.Size)*4)...)
		survivors = append(survivors, a.Split(w.rng, w.round.Speed)...)
	}
	w.asteroids = survivors
	w.projectiles = filter(w.projectiles, func(p *Projectile) bool { return !p.hit })
}

// collideShip costs a life when an asteroid reaches the ship. It reports
// whether the round ended.
func (w *World) collideShip(s loop.Session) bool {
	if w.ship.Shielded() {
		return false
	}

	ship := w.ship.Collider()
	for _, a := range w.asteroids {
		if !a.Collider().Overlaps(ship) {
			continue
		}

		w.debris = append(w.debris, Explode(w.rng, w.ship.X, w.ship.Y, w.width, w.height, 12)...)
		lives := s.Lives() - 1
		s.SetLives(lives)
		if lives <= 0 {
			w.endRound(s, loop.ModeLose, fmt.Sprintf("Score: %d", s.Score()))
			return true
		}

		w.ship = NewShip(w.width/2, w.height/2, w.width, w.height)
		w.ship.Shield(ShipRespawnShield)
		return false
	}
	return false
}

func (w *World) endRound(s loop.Session, m loop.Mode, message string) {
	s.SetState(m, message)
	switch {
	case w.roundOver != nil:
		w.roundOver(s.Score())
	case s.Score() > 0:
		s.RequestName()
	}
}

// Draw implements loop.Game.
func (w *World) Draw(c *draw.Canvas) {
	drawAll(c, w.asteroids)
	drawAll(c, w.projectiles)
	drawAll(c, w.debris)
	if w.ship != nil {
		w.ship.Draw(c)
	}
}

func drawAll[T object.Object](c *draw.Canvas, items []T) {
	for _, it := range items {
		it.Draw(c)
	}
}

// Asteroids returns the number of asteroids left.
func (w *World) Asteroids() int {
	return len(w.asteroids)
}

// filter keeps the items for which keep returns true, reusing the backing array.
func filter[T any](items []T, keep func(T) bool) []T {
	out := items[:0]
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	clear(items[len(out):])
	return out
}

var (
	_ loop.Game        = (*World)(nil)
	_ loop.Resizer     = (*World)(nil)
	_ loop.MoveTracker = (*World)(nil)
)
