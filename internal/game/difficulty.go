package game

// Difficulty tunes the asteroid field of a round.
type Difficulty struct {
	Name      string
	Asteroids int     // Large asteroids spawned per round
	Speed     float64 // Multiplier on asteroid cruise velocity
}

// DefaultDifficulties returns the built-in presets, easiest first.
func DefaultDifficulties() []Difficulty {
	return []Difficulty{
		{Name: "easy", Asteroids: 3, Speed: 0.8},
		{Name: "normal", Asteroids: 5, Speed: 1.0},
		{Name: "hard", Asteroids: 8, Speed: 1.4},
	}
}

// FindDifficulty returns the index of the preset called name.
func FindDifficulty(presets []Difficulty, name string) (int, bool) {
	for i, d := range presets {
		if d.Name == name {
			return i, true
		}
	}
	return 0, false
}
