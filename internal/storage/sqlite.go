// Package storage keeps the high-score table in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultLimit is the size of the high-score table.
const DefaultLimit = 10

// MaxNameLength caps stored player names.
const MaxNameLength = 16

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// Entry is one high-score record.
type Entry struct {
	ID         int64
	RoundID    string
	Name       string
	Score      int64
	Difficulty string
	CreatedAt  time.Time
}

// Stats summarises every recorded score.
type Stats struct {
	Count  int
	Max    int64
	Mean   float64
	StdDev float64
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			round_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			score INTEGER NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished round. A round ID is generated when e has
// none; the stored entry is returned.
func (s *Store) SaveScore(e Entry) (Entry, error) {
	e.Name = CleanName(e.Name)
	if e.RoundID == "" {
		e.RoundID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.Exec(
		"INSERT INTO scores (round_id, name, score, difficulty, created_at) VALUES (?, ?, ?, ?, ?)",
		e.RoundID, e.Name, e.Score, e.Difficulty, e.CreatedAt.Format(time.DateTime),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("storage: cannot save score: %w", err)
	}

	e.ID, err = res.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return e, nil
}

// TopScores returns the best limit entries, highest first. Ties go to the
// earlier round.
func (s *Store) TopScores(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.Query(
		`SELECT id, round_id, name, score, difficulty, created_at
		 FROM scores
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RoundID, &e.Name, &e.Score, &e.Difficulty, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both driver-decoded times and raw DATETIME text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.DateTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the best score, or 0 if none are recorded.
func (s *Store) HighScore() (int64, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM scores").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return score.Int64, nil
}

// Qualifies reports whether score would enter a table of limit entries.
// Zero never qualifies.
func (s *Store) Qualifies(score int64, limit int) (bool, error) {
	if score <= 0 {
		return false, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var better int
	err := s.db.QueryRow("SELECT COUNT(*) FROM scores WHERE score >= ?", score).Scan(&better)
	if err != nil {
		return false, fmt.Errorf("storage: cannot rank score: %w", err)
	}
	return better < limit, nil
}

// Stats summarises all recorded scores.
func (s *Store) Stats() (Stats, error) {
	rows, err := s.db.Query("SELECT score FROM scores")
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var values []float64
	var st Stats
	for rows.Next() {
		var v int64
		if err := rows.Scan(&v); err != nil {
			return Stats{}, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		values = append(values, float64(v))
		st.Max = max(st.Max, v)
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	st.Count = len(values)
	switch {
	case st.Count == 1:
		st.Mean = values[0]
	case st.Count > 1:
		st.Mean, st.StdDev = stat.MeanStdDev(values, nil)
	}
	return st, nil
}

// csvEntry is the exported column layout.
type csvEntry struct {
	Rank       int    `csv:"rank"`
	Name       string `csv:"name"`
	Score      int64  `csv:"score"`
	Difficulty string `csv:"difficulty"`
	RoundID    string `csv:"round_id"`
	CreatedAt  string `csv:"created_at"`
}

// ExportCSV writes the top limit entries to w with a header row.
func (s *Store) ExportCSV(w io.Writer, limit int) error {
	entries, err := s.TopScores(limit)
	if err != nil {
		return err
	}

	records := make([]*csvEntry, 0, len(entries))
	for i, e := range entries {
		records = append(records, &csvEntry{
			Rank:       i + 1,
			Name:       e.Name,
			Score:      e.Score,
			Difficulty: e.Difficulty,
			RoundID:    e.RoundID,
			CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("storage: cannot write csv: %w", err)
	}
	return nil
}

// CleanName trims whitespace, drops control characters and caps the length.
// An empty name becomes "anonymous".
func CleanName(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)

	if runes := []rune(name); len(runes) > MaxNameLength {
		name = strings.TrimSpace(string(runes[:MaxNameLength]))
	}
	if name == "" {
		return "anonymous"
	}
	return name
}
