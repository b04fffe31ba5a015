// Package prefs persists per-column width preferences in SQLite.
//
// Writes are fire-and-forget: Set records the width in memory and schedules a
// trailing flush. Failures during a flush are logged and never surface to the
// caller of Set.
package prefs

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// DefaultDebounce is the trailing delay between the last Set and the write.
const DefaultDebounce = 300 * time.Millisecond

// Options configures a Store.
type Options struct {
	// Grid namespaces widths so several grids can share one database.
	Grid     string
	Debounce time.Duration
	Logger   *zap.Logger
}

// Store holds column widths for one grid.
type Store struct {
	db       *sql.DB
	path     string
	grid     string
	debounce time.Duration
	log      *zap.Logger

	mu      sync.Mutex
	pending map[int]int
	timer   *time.Timer
	closed  bool
}

// Open creates or opens the preference database at path.
func Open(path string, opts Options) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{
		db:       db,
		path:     path,
		grid:     opts.Grid,
		debounce: opts.Debounce,
		log:      opts.Logger,
		pending:  make(map[int]int),
	}
	if s.debounce <= 0 {
		s.debounce = DefaultDebounce
	}
	if s.grid == "" {
		s.grid = "default"
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS column_widths (
		grid TEXT NOT NULL,
		col INTEGER NOT NULL,
		width INTEGER NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (grid, col)
	);`)
	return err
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Set records a width in pixels for a column and schedules a write.
// Non-positive widths and negative columns are ignored.
func (s *Store) Set(col, width int) {
	if col < 0 || width <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending[col] = width
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		if err := s.Flush(); err != nil {
			s.log.Warn("failed to persist column widths", zap.String("grid", s.grid), zap.Error(err))
		}
	})
}

// Flush writes any pending widths immediately.
func (s *Store) Flush() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	batch := s.pending
	s.pending = make(map[int]int)
	s.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}
	if err := s.write(batch); err != nil {
		// Put the batch back unless newer values have arrived.
		s.mu.Lock()
		for col, w := range batch {
			if _, ok := s.pending[col]; !ok {
				s.pending[col] = w
			}
		}
		s.mu.Unlock()
		return err
	}
	s.log.Debug("persisted column widths", zap.String("grid", s.grid), zap.Int("count", len(batch)))
	return nil
}

func (s *Store) write(batch map[int]int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
	INSERT INTO column_widths (grid, col, width, updated_at) VALUES (?, ?, ?, ?)
	ON CONFLICT(grid, col) DO UPDATE SET width = excluded.width, updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for col, w := range batch {
		if _, err := stmt.Exec(s.grid, col, w, now); err != nil {
			return fmt.Errorf("write column %d: %w", col, err)
		}
	}
	return tx.Commit()
}

// Get returns the width of a column. Pending writes are visible before they are flushed.
func (s *Store) Get(col int) (int, bool, error) {
	s.mu.Lock()
	if w, ok := s.pending[col]; ok {
		s.mu.Unlock()
		return w, true, nil
	}
	s.mu.Unlock()

	var w int
	err := s.db.QueryRow(`SELECT width FROM column_widths WHERE grid = ? AND col = ?`, s.grid, col).Scan(&w)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query column %d: %w", col, err)
	}
	return w, true, nil
}

// All returns every stored width for the grid, including pending ones.
func (s *Store) All() (map[int]int, error) {
	rows, err := s.db.Query(`SELECT col, width FROM column_widths WHERE grid = ?`, s.grid)
	if err != nil {
		return nil, fmt.Errorf("query widths: %w", err)
	}
	defer rows.Close()

	out := make(map[int]int)
	for rows.Next() {
		var col, w int
		if err := rows.Scan(&col, &w); err != nil {
			return nil, err
		}
		out[col] = w
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	for col, w := range s.pending {
		out[col] = w
	}
	s.mu.Unlock()
	return out, nil
}

// Delete removes the stored width of a column.
func (s *Store) Delete(col int) error {
	s.mu.Lock()
	delete(s.pending, col)
	s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM column_widths WHERE grid = ? AND col = ?`, s.grid, col)
	return err
}

// Close flushes pending widths and closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	flushErr := s.Flush()
	if err := s.db.Close(); err != nil {
		return err
	}
	return flushErr
}
