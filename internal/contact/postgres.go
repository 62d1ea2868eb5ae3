package contact

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"mukesh.dev/internal/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS contact_messages (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    message TEXT NOT NULL,
    remote_addr TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresStore keeps messages in PostgreSQL
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to databaseURL and creates the table if needed
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create contact table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Save inserts msg
func (s *PostgresStore) Save(ctx context.Context, msg models.ContactMessage) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO contact_messages (id, name, email, message, remote_addr, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		msg.ID, msg.Name, msg.Email, msg.Message, msg.RemoteAddr, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}

// List returns up to limit messages, newest first
func (s *PostgresStore) List(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	query := `SELECT id::text, name, email, message, remote_addr, created_at
	          FROM contact_messages ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	var out []models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.RemoteAddr, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Close closes the pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
