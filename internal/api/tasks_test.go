package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tareas/pkg/task"
	"tareas/pkg/task/sqlitestore"
)

// --- Mock task store ---

type mockTaskStore struct {
	tasks  []task.Task
	nextID int64
	err    error

	created []task.NewTask
	deleted []int64
	done    []int64
}

func (s *mockTaskStore) List(_ context.Context) ([]task.Task, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tasks, nil
}

func (s *mockTaskStore) Create(_ context.Context, t task.NewTask) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.nextID++
	s.created = append(s.created, t)
	return s.nextID, nil
}

func (s *mockTaskStore) Delete(_ context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

func (s *mockTaskStore) Complete(_ context.Context, id int64) error {
	s.done = append(s.done, id)
	return s.err
}

func (s *mockTaskStore) Count(_ context.Context) (int, error)        { return len(s.tasks), s.err }
func (s *mockTaskStore) PendingCount(_ context.Context) (int, error) { return 1, s.err }
func (s *mockTaskStore) EnsureTable(_ context.Context) error         { return nil }

var errDown = &task.PersistenceError{Op: "list tasks", Err: errors.New("database is locked")}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestTaskListEmptyIsArray(t *testing.T) {
	srv := New(&mockTaskStore{}, "")

	rec := do(t, srv, "GET", "/api/tareas", "")
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestTaskListWireShape(t *testing.T) {
	store := &mockTaskStore{tasks: []task.Task{
		{ID: 2, Name: "b", Description: "d", DueAt: "2024-01-10T09:00", Priority: "low", Completed: true},
	}}
	srv := New(store, "")

	rec := do(t, srv, "GET", "/api/tareas", "")
	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `[{"id":2,"name":"b","description":"d","due_at":"2024-01-10T09:00","priority":"low","completed":true}]`, rec.Body.String())
}

func TestTaskListStoreError(t *testing.T) {
	srv := New(&mockTaskStore{err: errDown}, "")

	rec := do(t, srv, "GET", "/api/tareas", "")
	assert.Equal(t, 500, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "list tasks: database is locked", body["error"])
}

func TestTaskCreatePassesFieldsThrough(t *testing.T) {
	store := &mockTaskStore{}
	srv := New(store, "")

	rec := do(t, srv, "POST", "/api/tareas", `{"name":"","description":"x","priority":"urgent"}`)
	assert.Equal(t, 201, rec.Code)
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())

	require.Len(t, store.created, 1)
	got := store.created[0]
	require.NotNil(t, got.Name)
	assert.Equal(t, "", *got.Name)
	assert.Nil(t, got.DueAt)
	assert.Equal(t, "urgent", *got.Priority)
}

func TestTaskCreateStoreError(t *testing.T) {
	srv := New(&mockTaskStore{err: errors.New("NOT NULL constraint failed: tareas.due_at")}, "")

	rec := do(t, srv, "POST", "/api/tareas", `{"name":"a"}`)
	assert.Equal(t, 500, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "NOT NULL")
}

func TestTaskCreateInvalidJSON(t *testing.T) {
	srv := New(&mockTaskStore{}, "")

	rec := do(t, srv, "POST", "/api/tareas", `{"name":`)
	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, decode[map[string]string](t, rec)["error"], "invalid JSON")
}

func TestTaskDeleteReportsSuccessForUnknownID(t *testing.T) {
	store := &mockTaskStore{}
	srv := New(store, "")

	rec := do(t, srv, "DELETE", "/api/tareas/999", "")
	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"message":"Tarea eliminada"}`, rec.Body.String())
	assert.Equal(t, []int64{999}, store.deleted)
}

func TestTaskComplete(t *testing.T) {
	store := &mockTaskStore{}
	srv := New(store, "")

	rec := do(t, srv, "PUT", "/api/tareas/completar/7", "")
	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"message":"Tarea marcada como completada"}`, rec.Body.String())
	assert.Equal(t, []int64{7}, store.done)
}

func TestTaskMutationStoreErrors(t *testing.T) {
	srv := New(&mockTaskStore{err: errDown}, "")

	assert.Equal(t, 500, do(t, srv, "DELETE", "/api/tareas/1", "").Code)
	assert.Equal(t, 500, do(t, srv, "PUT", "/api/tareas/completar/1", "").Code)
}

func TestTaskNonIntegerIDMatchesNothing(t *testing.T) {
	store := &mockTaskStore{}
	srv := New(store, "")

	rec := do(t, srv, "DELETE", "/api/tareas/abc", "")
	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"message":"Tarea eliminada"}`, rec.Body.String())

	rec = do(t, srv, "PUT", "/api/tareas/completar/1.5", "")
	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"message":"Tarea marcada como completada"}`, rec.Body.String())

	assert.Empty(t, store.deleted)
	assert.Empty(t, store.done)
}

func TestHealthAndStatus(t *testing.T) {
	store := &mockTaskStore{tasks: make([]task.Task, 3)}
	srv := New(store, "")

	rec := do(t, srv, "GET", "/health", "")
	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, srv, "GET", "/api/status", "")
	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"tasks":3,"pending_tasks":1}`, rec.Body.String())

	srv = New(&mockTaskStore{err: errDown}, "")
	assert.Equal(t, 500, do(t, srv, "GET", "/api/status", "").Code)
}

func TestRequestIDHeader(t *testing.T) {
	srv := New(&mockTaskStore{}, "")

	rec := do(t, srv, "GET", "/health", "")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(requestIDHeader, "abc")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "abc", rec.Header().Get(requestIDHeader))
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>tareas</h1>"), 0o644))
	srv := New(&mockTaskStore{}, dir)

	rec := do(t, srv, "GET", "/", "")
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "tareas")

	// API routes still win over the file server.
	assert.Equal(t, 200, do(t, srv, "GET", "/api/tareas", "").Code)
}

func TestScenarioAgainstSQLite(t *testing.T) {
	store, err := sqlitestore.Open(filepath.Join(t.TempDir(), "tareas.db"))
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.EnsureTable(context.Background()))
	srv := New(store, "")

	rec := do(t, srv, "POST", "/api/tareas", `{"name":"Buy milk","description":"2%","due_at":"2024-05-01T10:00","priority":"high"}`)
	require.Equal(t, 201, rec.Code)
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())

	rec = do(t, srv, "GET", "/api/tareas", "")
	require.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Buy milk","description":"2%","due_at":"2024-05-01T10:00","priority":"high","completed":false}]`, rec.Body.String())

	rec = do(t, srv, "PUT", "/api/tareas/completar/1", "")
	require.Equal(t, 200, rec.Code)
	tasks := decode[[]task.Task](t, do(t, srv, "GET", "/api/tareas", ""))
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)

	// Missing fields hit the NOT NULL constraint.
	rec = do(t, srv, "POST", "/api/tareas", `{"name":"only a name"}`)
	assert.Equal(t, 500, rec.Code)
	assert.NotEmpty(t, decode[map[string]string](t, rec)["error"])

	rec = do(t, srv, "DELETE", "/api/tareas/999", "")
	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"message":"Tarea eliminada"}`, rec.Body.String())

	rec = do(t, srv, "DELETE", "/api/tareas/1", "")
	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, "[]", do(t, srv, "GET", "/api/tareas", "").Body.String())
}
