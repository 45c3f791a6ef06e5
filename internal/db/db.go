// Package db opens the task store selected by configuration.
package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"

	"tareas/internal/config"
	"tareas/pkg/task"
	"tareas/pkg/task/sqlitestore"
)

// Connect opens a pgx pool and checks the connection.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// OpenSQLite creates the parent directory of path and opens the database.
func OpenSQLite(path string) (*sqlitestore.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return sqlitestore.Open(path)
}

// Open returns the configured store with its table ensured, and a func
// that releases it.
func Open(ctx context.Context, cfg *config.Config) (task.Store, func(), error) {
	if cfg.IsPostgres() {
		pool, err := Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		s := task.NewPgStore(pool)
		if err := s.EnsureTable(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Printf("db: connected to postgres")
		return s, pool.Close, nil
	}

	s, err := OpenSQLite(cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	if err := s.EnsureTable(ctx); err != nil {
		s.Close()
		return nil, nil, err
	}
	log.Printf("db: opened sqlite %s", cfg.Database.URL)
	return s, func() {
		if err := s.Close(); err != nil {
			log.Printf("db: close sqlite: %v", err)
		}
	}, nil
}
