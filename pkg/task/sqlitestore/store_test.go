package sqlitestore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tareas/pkg/task"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tareas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.EnsureTable(context.Background()))
	return s
}

func milk() task.NewTask {
	return task.NewTask{
		Name:        task.Str("Buy milk"),
		Description: task.Str("2%"),
		DueAt:       task.Str("2024-05-01T10:00"),
		Priority:    task.Str("high"),
	}
}

func TestCreateThenList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, milk())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.Task{
		ID:          1,
		Name:        "Buy milk",
		Description: "2%",
		DueAt:       "2024-05-01T10:00",
		Priority:    "high",
		Completed:   false,
	}, tasks[0])
}

func TestListEmpty(t *testing.T) {
	s := newTestStore(t)

	tasks, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		nt := milk()
		nt.Name = task.Str(name)
		_, err := s.Create(ctx, nt)
		require.NoError(t, err)
	}

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{tasks[0].ID, tasks[1].ID, tasks[2].ID})
	assert.Equal(t, "c", tasks[0].Name)
}

func TestCreateAcceptsEmptyStrings(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Create(context.Background(), task.NewTask{
		Name: task.Str(""), Description: task.Str(""), DueAt: task.Str(""), Priority: task.Str(""),
	})
	require.NoError(t, err)
	assert.Positive(t, id)
}

func TestCreateRejectsMissingField(t *testing.T) {
	s := newTestStore(t)
	nt := milk()
	nt.Description = nil

	_, err := s.Create(context.Background(), nt)
	require.Error(t, err)
	var perr *task.PersistenceError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, "create task", perr.Op)
}

func TestCompleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, milk())
	require.NoError(t, err)

	require.NoError(t, s.Complete(ctx, id))
	require.NoError(t, s.Complete(ctx, id))

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)
	assert.Equal(t, "Buy milk", tasks[0].Name)
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	keep, err := s.Create(ctx, milk())
	require.NoError(t, err)
	gone, err := s.Create(ctx, milk())
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, gone))
	require.NoError(t, s.Delete(ctx, gone))

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, keep, tasks[0].ID)
}

func TestUnknownIDsSucceed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	assert.NoError(t, s.Delete(ctx, 999))
	assert.NoError(t, s.Complete(ctx, 999))
}

func TestIDsAreNotReused(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, milk())
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, first))

	second, err := s.Create(ctx, milk())
	require.NoError(t, err)
	assert.Greater(t, second, first)
}

func TestCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, err := s.Create(ctx, milk())
	require.NoError(t, err)
	_, err = s.Create(ctx, milk())
	require.NoError(t, err)
	require.NoError(t, s.Complete(ctx, a))

	total, err := s.Count(ctx)
	require.NoError(t, err)
	pending, err := s.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, pending)
}

func TestClosedStoreReturnsPersistenceError(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Close())

	_, err := s.List(context.Background())
	var perr *task.PersistenceError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "list tasks", perr.Op)
}

func TestNewNilDB(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}
