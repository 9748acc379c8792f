// Package store persists the card catalog and drawn spreads in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store is a SQLite-backed card catalog and session card store. It
// implements engine.CatalogReader and engine.SessionCardWriter.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
	now    func() time.Time
}

// Open creates or opens the database at path and applies the schema.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps PRAGMAs and in-memory databases consistent.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:     db,
		path:   path,
		logger: logger.With(zap.String("db", path)),
		now:    time.Now,
	}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema() error {
	schema := `
	PRAGMA foreign_keys = ON;

	CREATE TABLE IF NOT EXISTS tarot_cards (
		id TEXT PRIMARY KEY,
		name_primary TEXT NOT NULL,
		name_secondary TEXT NOT NULL,
		suit TEXT NOT NULL DEFAULT '',
		rank INTEGER NOT NULL,
		arcana_type TEXT NOT NULL CHECK (arcana_type IN ('major', 'minor')),
		keywords_json TEXT NOT NULL DEFAULT '[]',
		description_upright TEXT NOT NULL DEFAULT '',
		description_reversed TEXT NOT NULL DEFAULT '',
		image_reference TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS session_cards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		card_id TEXT NOT NULL REFERENCES tarot_cards(id),
		position_index INTEGER NOT NULL,
		position_meaning TEXT NOT NULL,
		is_reversed INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_session_cards_session ON session_cards(session_id);

	CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		question TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}
