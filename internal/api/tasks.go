package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tareas/pkg/task"
)

const (
	msgDeleted   = "Tarea eliminada"
	msgCompleted = "Tarea marcada como completada"
)

func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.List(r.Context())
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	writeJSON(w, 200, tasks)
}

// handleTaskCreate passes fields through unvalidated; absent ones reach the
// store as NULL.
func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	var t task.NewTask
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, 400, "invalid JSON: "+err.Error())
		return
	}
	id, err := s.tasks.Create(r.Context(), t)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, 201, map[string]int64{"id": id})
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, 200, msgDeleted)
		return
	}
	if err := s.tasks.Delete(r.Context(), id); err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeMessage(w, 200, msgDeleted)
}

func (s *Server) handleTaskComplete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, 200, msgCompleted)
		return
	}
	if err := s.tasks.Complete(r.Context(), id); err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeMessage(w, 200, msgCompleted)
}

// pathID parses the {id} segment. An id that is not an integer names no
// row, so delete and complete answer it like any other unknown id.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
