package api

import (
	"encoding/json"
	"log"
	"net/http"

	"tareas/pkg/task"
)

// Server is the HTTP API server.
type Server struct {
	tasks     task.Store
	staticDir string
	mux       *http.ServeMux
	handler   http.Handler
}

// New creates a new Server. staticDir is served at / when non-empty.
func New(tasks task.Store, staticDir string) *Server {
	s := &Server{
		tasks:     tasks,
		staticDir: staticDir,
		mux:       http.NewServeMux(),
	}
	s.routes()
	s.handler = withRequestLog(s.mux)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() {
	// Tasks
	s.mux.HandleFunc("GET /api/tareas", s.handleTaskList)
	s.mux.HandleFunc("POST /api/tareas", s.handleTaskCreate)
	s.mux.HandleFunc("DELETE /api/tareas/{id}", s.handleTaskDelete)
	s.mux.HandleFunc("PUT /api/tareas/completar/{id}", s.handleTaskComplete)

	// System
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)

	// Static files (gio WASM UI)
	if s.staticDir != "" {
		s.mux.Handle("GET /", http.FileServer(http.Dir(s.staticDir)))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
