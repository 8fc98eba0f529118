package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/aih-go/internal/domain"
	"github.com/doeshing/aih-go/internal/ports"
)

// SQLiteStore persists the command log in a SQLite database, bounded to the
// newest max rows.
type SQLiteStore struct {
	db   *sql.DB
	path string
	max  int
	mu   sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at path.
func NewSQLiteStore(path string, max int) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, path: path, max: max}
	if err := store.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history db: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS commands (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		command TEXT NOT NULL
	);`)
	return err
}

// Append inserts entry and trims the oldest rows in the same transaction.
func (s *SQLiteStore) Append(entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO commands (timestamp, command) VALUES (?, ?)`,
		entry.Timestamp.Format(time.RFC3339), entry.Command); err != nil {
		return err
	}
	if s.max > 0 {
		if _, err := tx.Exec(`DELETE FROM commands WHERE id NOT IN
			(SELECT id FROM commands ORDER BY id DESC LIMIT ?)`, s.max); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Entries returns the newest limit entries in chronological order.
func (s *SQLiteStore) Entries(limit int) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT timestamp, command FROM commands ORDER BY id DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var ts, command string
		if err := rows.Scan(&ts, &command); err != nil {
			return nil, err
		}
		entry := domain.HistoryEntry{Command: command}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			entry.Timestamp = t.Local()
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
