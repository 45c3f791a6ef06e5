// Package sqlitestore implements task.Store on an embedded SQLite database.
// Package task itself must stay driver-free: the browser client imports it
// and builds for js/wasm, where the driver does not.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"tareas/pkg/task"
)

// Store is a SQLite-backed task store.
type Store struct {
	db *sql.DB
}

var _ task.Store = (*Store)(nil)

// New wraps an open database handle.
func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("sqlitestore: nil db")
	}
	return &Store{db: db}, nil
}

// Open opens (or creates) the database file at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection serializes writes and keeps SQLITE_BUSY away.
	db.SetMaxOpenConns(1)
	return New(db)
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureTable creates the tareas table if it doesn't exist.
func (s *Store) EnsureTable(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS tareas (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			description TEXT NOT NULL,
			due_at      TEXT NOT NULL,
			priority    TEXT NOT NULL,
			completed   INTEGER NOT NULL DEFAULT 0
		)`)
	return persistErr("ensure tareas table", err)
}

// List returns every task, newest first.
func (s *Store) List(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, due_at, priority, completed
		FROM tareas ORDER BY id DESC`)
	if err != nil {
		return nil, persistErr("list tasks", err)
	}
	defer rows.Close()

	tasks := make([]task.Task, 0)
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.DueAt, &t.Priority, &t.Completed); err != nil {
			return nil, persistErr("scan task", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("row iteration", err)
	}
	return tasks, nil
}

// Create inserts a new uncompleted task and returns its id.
func (s *Store) Create(ctx context.Context, t task.NewTask) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tareas (name, description, due_at, priority)
		VALUES (?, ?, ?, ?)`,
		nullable(t.Name), nullable(t.Description), nullable(t.DueAt), nullable(t.Priority))
	if err != nil {
		return 0, persistErr("create task", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, persistErr("last insert id", err)
	}
	return id, nil
}

// Delete removes a task. Unknown ids are not an error.
func (s *Store) Delete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tareas WHERE id = ?`, id)
	return persistErr("delete task", err)
}

// Complete marks a task as completed. Unknown ids are not an error.
func (s *Store) Complete(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `UPDATE tareas SET completed = 1 WHERE id = ?`, id)
	return persistErr("complete task", err)
}

// Count returns total task count.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tareas`).Scan(&n)
	return n, persistErr("count tasks", err)
}

// PendingCount returns count of uncompleted tasks.
func (s *Store) PendingCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tareas WHERE completed = 0`).Scan(&n)
	return n, persistErr("count pending tasks", err)
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func persistErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &task.PersistenceError{Op: op, Err: err}
}
