// Package storage provides SQLite-based persistence for generation history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-dungeon/internal/pipeline"
)

// ErrNotFound is returned when a generation record does not exist.
var ErrNotFound = errors.New("storage: generation not found")

// Store manages the SQLite database connection for generation history.
type Store struct {
	db *sql.DB
}

// Generation is one recorded generation run. The seed and parameters are
// enough to reproduce a successful layout.
type Generation struct {
	ID          int64
	Seed        uint32
	Rooms       int
	MinRoomSize int
	MaxRoomSize int
	Radius      int
	RoomsPlaced int
	TreeEdges   int
	LoopEdges   int
	Status      string // "succeeded" or "failed"
	Error       string // Empty on success
	Duration    time.Duration
	CreatedAt   time.Time
}

// Stats summarises the generation history.
type Stats struct {
	Total       int
	Succeeded   int
	Failed      int
	AvgDuration time.Duration
	LastRunAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS generations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			rooms INTEGER NOT NULL,
			min_room_size INTEGER NOT NULL,
			max_room_size INTEGER NOT NULL,
			radius INTEGER NOT NULL,
			rooms_placed INTEGER NOT NULL DEFAULT 0,
			tree_edges INTEGER NOT NULL DEFAULT 0,
			loop_edges INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_generations_seed ON generations(seed);
		CREATE INDEX IF NOT EXISTS idx_generations_status ON generations(status);
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

// InsertGeneration records a generation run.
// Returns the ID of the inserted record.
func (s *Store) InsertGeneration(g Generation) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO generations
		 (seed, rooms, min_room_size, max_room_size, radius,
		  rooms_placed, tree_edges, loop_edges, status, error, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		int64(g.Seed), g.Rooms, g.MinRoomSize, g.MaxRoomSize, g.Radius,
		g.RoomsPlaced, g.TreeEdges, g.LoopEdges, g.Status, g.Error, g.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save generation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveGeneration implements pipeline.ResultSaver.
func (s *Store) SaveGeneration(r pipeline.GenerationResult) error {
	_, err := s.InsertGeneration(Generation{
		Seed:        r.Request.Seed,
		Rooms:       int(r.Request.RoomsToGenerate),
		MinRoomSize: int(r.Request.MinRoomSize),
		MaxRoomSize: int(r.Request.MaxRoomSize),
		Radius:      int(r.Request.Radius),
		RoomsPlaced: r.RoomsPlaced,
		TreeEdges:   r.TreeEdges,
		LoopEdges:   r.LoopEdges,
		Status:      r.Status,
		Error:       r.Error,
		Duration:    r.Duration,
	})
	return err
}

const selectGeneration = `SELECT id, seed, rooms, min_room_size, max_room_size, radius,
	rooms_placed, tree_edges, loop_edges, status, error, duration_ms, created_at
	FROM generations`

// GenerationByID retrieves one generation record.
func (s *Store) GenerationByID(id int64) (*Generation, error) {
	row := s.db.QueryRow(selectGeneration+` WHERE id = ?`, id)
	g, err := scanGeneration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query generation: %w", err)
	}
	return g, nil
}

// RecentGenerations retrieves the most recent generation runs, newest first.
func (s *Store) RecentGenerations(limit int) ([]Generation, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryGenerations(selectGeneration+` ORDER BY id DESC LIMIT ?`, limit)
}

// GenerationsBySeed retrieves runs of the given seed, newest first.
func (s *Store) GenerationsBySeed(seed uint32, limit int) ([]Generation, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryGenerations(selectGeneration+` WHERE seed = ? ORDER BY id DESC LIMIT ?`, int64(seed), limit)
}

// Stats summarises every recorded run.
func (s *Store) Stats() (*Stats, error) {
	var st Stats
	var avg sql.NullFloat64
	var last any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
		        AVG(duration_ms),
		        MAX(created_at)
		 FROM generations`,
		pipeline.StatusSucceeded, pipeline.StatusFailed,
	).Scan(&st.Total, &st.Succeeded, &st.Failed, &avg, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	if avg.Valid {
		st.AvgDuration = time.Duration(avg.Float64 * float64(time.Millisecond))
	}
	st.LastRunAt = parseTime(last)
	return &st, nil
}

// ClearGenerations deletes the whole history.
func (s *Store) ClearGenerations() error {
	_, err := s.db.Exec("DELETE FROM generations")
	if err != nil {
		return fmt.Errorf("storage: cannot clear generations: %w", err)
	}
	return nil
}

func (s *Store) queryGenerations(query string, args ...any) ([]Generation, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query generations: %w", err)
	}
	defer rows.Close()

	var result []Generation
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		result = append(result, *g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return result, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanGeneration(row scanner) (*Generation, error) {
	var g Generation
	var seed, durationMs int64
	var createdAt any
	err := row.Scan(&g.ID, &seed, &g.Rooms, &g.MinRoomSize, &g.MaxRoomSize, &g.Radius,
		&g.RoomsPlaced, &g.TreeEdges, &g.LoopEdges, &g.Status, &g.Error, &durationMs, &createdAt)
	if err != nil {
		return nil, err
	}
	g.Seed = uint32(seed)
	g.Duration = time.Duration(durationMs) * time.Millisecond
	g.CreatedAt = parseTime(createdAt)
	return &g, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
