package task

import (
	"context"
	"fmt"
)

// Task is a user-created to-do record.
type Task struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DueAt       string `json:"due_at"`   // date-time as entered, e.g. 2024-05-01T10:00
	Priority    string `json:"priority"` // free-text label
	Completed   bool   `json:"completed"`
}

// NewTask carries the fields for Create. Nil fields are stored as NULL,
// which the schema rejects.
type NewTask struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	DueAt       *string `json:"due_at"`
	Priority    *string `json:"priority"`
}

// Store is the contract for task persistence.
//
// Delete and Complete never report whether a row matched: both succeed
// for unknown ids.
type Store interface {
	List(ctx context.Context) ([]Task, error)
	Create(ctx context.Context, t NewTask) (int64, error)
	Delete(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	PendingCount(ctx context.Context) (int, error)
	EnsureTable(ctx context.Context) error
}

// PersistenceError is returned when the storage engine rejects a read or write.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// Str is a helper for building NewTask literals.
func Str(s string) *string { return &s }
