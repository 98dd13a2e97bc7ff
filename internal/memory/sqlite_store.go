package memory

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps the memory log in a SQLite table. Ordering comes from
// the autoincrement seq column; Record trims inside the insert transaction.
type SQLiteStore struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) the SQLite database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, writeError(path, fmt.Errorf("failed to create directory: %w", err))
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("failed to open memory database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate memory database: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exchanges (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		user_text TEXT NOT NULL,
		assistant_text TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Record inserts ex and deletes everything older than the last maxExchanges rows.
func (s *SQLiteStore) Record(ex Exchange, maxExchanges int) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	limit := resolveMax(maxExchanges)

	tx, err := s.db.Begin()
	if err != nil {
		return Stats{}, writeError(s.path, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO exchanges (id, user_text, assistant_text, created_at)
		VALUES (?, ?, ?, ?)
	`, uuid.New().String(), ex.User, ex.Assistant, time.Now().UTC()); err != nil {
		return Stats{}, writeError(s.path, err)
	}

	res, err := tx.Exec(`
		DELETE FROM exchanges
		WHERE seq NOT IN (SELECT seq FROM exchanges ORDER BY seq DESC LIMIT ?)
	`, limit)
	if err != nil {
		return Stats{}, writeError(s.path, err)
	}
	evicted, _ := res.RowsAffected()

	var stored int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM exchanges`).Scan(&stored); err != nil {
		return Stats{}, writeError(s.path, err)
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, writeError(s.path, err)
	}

	return Stats{Stored: stored, Evicted: int(evicted)}, nil
}

// Recent returns the last maxExchanges rows, oldest first.
func (s *SQLiteStore) Recent(maxExchanges int) ([]Exchange, Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM exchanges`).Scan(&stored); err != nil {
		return nil, Stats{}, readError(s.path, err)
	}

	rows, err := s.db.Query(`
		SELECT user_text, assistant_text
		FROM exchanges
		ORDER BY seq DESC
		LIMIT ?
	`, resolveMax(maxExchanges))
	if err != nil {
		return nil, Stats{}, readError(s.path, err)
	}
	defer rows.Close()

	var log []Exchange
	for rows.Next() {
		var ex Exchange
		if err := rows.Scan(&ex.User, &ex.Assistant); err != nil {
			return nil, Stats{}, readError(s.path, err)
		}
		log = append(log, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, Stats{}, readError(s.path, err)
	}

	// Reverse so oldest is first (we queried DESC for LIMIT).
	for i, j := 0, len(log)-1; i < j; i, j = i+1, j-1 {
		log[i], log[j] = log[j], log[i]
	}

	return log, Stats{Stored: stored}, nil
}

// Clear deletes every stored exchange.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM exchanges`); err != nil {
		return writeError(s.path, err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
