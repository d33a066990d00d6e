package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS candidates (
	id                  TEXT PRIMARY KEY,
	name                TEXT NOT NULL,
	email               TEXT NOT NULL DEFAULT '',
	phone               TEXT NOT NULL DEFAULT '',
	location            TEXT NOT NULL DEFAULT '',
	current_title       TEXT NOT NULL DEFAULT '',
	current_company     TEXT NOT NULL DEFAULT '',
	years_of_experience INTEGER NOT NULL DEFAULT 0,
	linkedin            TEXT NOT NULL DEFAULT '',
	fit_level           TEXT NOT NULL DEFAULT '',
	summary             TEXT NOT NULL DEFAULT '',
	skills              TEXT[] NOT NULL DEFAULT '{}',
	education           JSONB NOT NULL DEFAULT '[]',
	experience          JSONB NOT NULL DEFAULT '[]',
	resume_file         TEXT NOT NULL DEFAULT '',
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Migrate creates the candidates table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
