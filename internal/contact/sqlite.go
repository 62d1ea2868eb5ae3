package contact

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"mukesh.dev/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS contact_messages (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    message TEXT NOT NULL,
    remote_addr TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contact_messages_created ON contact_messages(created_at);
`

// SQLiteStore keeps messages in a SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates or opens the database at path
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return migrate(db)
}

// OpenSQLiteMemory creates an in-memory database (useful for testing)
func OpenSQLiteMemory() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Each pooled connection would get its own empty in-memory database
	db.SetMaxOpenConns(1)
	return migrate(db)
}

func migrate(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save inserts msg
func (s *SQLiteStore) Save(ctx context.Context, msg models.ContactMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, message, remote_addr, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.Name, msg.Email, msg.Message, msg.RemoteAddr, msg.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving contact message: %w", err)
	}
	return nil
}

// List returns up to limit messages, newest first
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, message, remote_addr, created_at
		 FROM contact_messages ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing contact messages: %w", err)
	}
	defer rows.Close()

	var out []models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		var created time.Time
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.RemoteAddr, &created); err != nil {
			return nil, fmt.Errorf("scanning contact message: %w", err)
		}
		m.CreatedAt = created
		out = append(out, m)
	}
	return out, rows.Err()
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
