package api

import (
	"net/http"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	total, err := s.tasks.Count(ctx)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	pending, err := s.tasks.PendingCount(ctx)
	if err != nil {
		writeError(w, 500, err.Error())
		return
	}
	writeJSON(w, 200, map[string]int{
		"tasks":         total,
		"pending_tasks": pending,
	})
}
