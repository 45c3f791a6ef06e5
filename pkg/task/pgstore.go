package task

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore is a PostgreSQL-backed task store.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a PgStore.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

// EnsureTable creates the tareas table if it doesn't exist.
func (s *PgStore) EnsureTable(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tareas (
			id          BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL,
			due_at      TEXT NOT NULL,
			priority    TEXT NOT NULL,
			completed   BOOLEAN NOT NULL DEFAULT FALSE
		)`)
	return persistErr("ensure tareas table", err)
}

// List returns every task, newest first.
func (s *PgStore) List(ctx context.Context) ([]Task, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, description, due_at, priority, completed
		FROM tareas ORDER BY id DESC`)
	if err != nil {
		return nil, persistErr("list tasks", err)
	}
	defer rows.Close()

	tasks := make([]Task, 0)
	for rows.Next() {
		var t Task
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
func (s *PgStore) Create(ctx context.Context, t NewTask) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO tareas (name, description, due_at, priority)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		t.Name, t.Description, t.DueAt, t.Priority).Scan(&id)
	if err != nil {
		return 0, persistErr("create task", err)
	}
	return id, nil
}

// Delete removes a task. Unknown ids are not an error.
func (s *PgStore) Delete(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM tareas WHERE id = $1`, id)
	return persistErr("delete task", err)
}

// Complete marks a task as completed. Unknown ids are not an error.
func (s *PgStore) Complete(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, `UPDATE tareas SET completed = TRUE WHERE id = $1`, id)
	return persistErr("complete task", err)
}

// Count returns total task count.
func (s *PgStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tareas`).Scan(&n)
	return n, persistErr("count tasks", err)
}

// PendingCount returns count of uncompleted tasks.
func (s *PgStore) PendingCount(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tareas WHERE NOT completed`).Scan(&n)
	return n, persistErr("count pending tasks", err)
}
