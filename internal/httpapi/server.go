package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/iksnae/cursor-threads/internal"
)

// Engine is the subset of the reconstruction engine the route layer needs
type Engine interface {
	ListProjects() ([]internal.Project, error)
	ListConversations(projectID string) ([]*internal.Conversation, error)
	GetConversation(id string) (*internal.Conversation, error)
	ListWorkspaceEntries() ([]internal.WorkspaceEntry, error)
}

// response is the standard API envelope
type response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

// NewRouter builds the HTTP route layer. Handlers are thin wrappers: all
// reconstruction logic lives in the engine.
func NewRouter(engine Engine) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s := &server{engine: engine}

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", s.listProjects)
		r.Get("/conversations", s.listConversations)
		r.Get("/conversations/{id}", s.getConversation)
		r.Get("/workspaces", s.listWorkspaces)
	})

	return r
}

type server struct {
	engine Engine
}

func (s *server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.engine.ListProjects()
	if err != nil {
		s.fail(w, err)
		return
	}
	ok(w, projects)
}

func (s *server) listConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := s.engine.ListConversations(r.URL.Query().Get("project"))
	if err != nil {
		s.fail(w, err)
		return
	}
	ok(w, conversations)
}

func (s *server) getConversation(w http.ResponseWriter, r *http.Request) {
	conv, err := s.engine.GetConversation(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	ok(w, conv)
}

func (s *server) listWorkspaces(w http.ResponseWriter, r *http.Request) {
	entries, err := s.engine.ListWorkspaceEntries()
	if err != nil {
		s.fail(w, err)
		return
	}
	ok(w, entries)
}

func (s *server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if internal.IsNotFound(err) {
		status = http.StatusNotFound
	}
	internal.LogWarn("request failed: %v", err)
	writeJSON(w, status, response{Success: false, Error: err.Error()})
}

func ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, response{Success: true, Data: data})
}

func writeJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
