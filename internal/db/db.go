// Package db provides PostgreSQL persistence for the movie catalog.
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Common errors.
var (
	ErrNotFound = errors.New("not found")
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the database connection pool.
func (db *DB) Close() {
	db.pool.Close()
}

// Pool returns the underlying connection pool for advanced operations.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// Movies returns a MovieRepository.
func (db *DB) Movies() *MovieRepository {
	return &MovieRepository{pool: db.pool}
}

// EnsureSchema creates the catalog tables if they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS movies (
			tmdb_id           bigint PRIMARY KEY,
			title             text NOT NULL,
			overview          text NOT NULL DEFAULT '',
			genres            text[] NOT NULL DEFAULT '{}',
			poster_url        text NOT NULL DEFAULT '',
			release_year      int NOT NULL DEFAULT 0,
			popularity        double precision NOT NULL DEFAULT 0,
			emotion_scores    jsonb NOT NULL DEFAULT '{}',
			dominant_emotions text[] NOT NULL DEFAULT '{}',
			intensity         double precision NOT NULL DEFAULT 0,
			catharsis         double precision NOT NULL DEFAULT 0,
			comfort           double precision NOT NULL DEFAULT 0,
			emotion_processed boolean NOT NULL DEFAULT false,
			created_at        timestamptz NOT NULL DEFAULT NOW(),
			updated_at        timestamptz NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS movies_title_idx ON movies (lower(title));
		CREATE INDEX IF NOT EXISTS movies_processed_idx ON movies (emotion_processed);
	`
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
