// Package httpserver exposes the smart-notes HTTP API.
package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/smart-notes/backend/internal/ai"
	"github.com/smart-notes/backend/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth       service.AuthService
	notes      service.NoteService
	tasks      service.TaskService
	summarizer ai.Summarizer
	signKey    []byte
	validate   *validator.Validate
	log        *zap.Logger
}

// New constructs a server with injected services.
func New(auth service.AuthService, notes service.NoteService, tasks service.TaskService, summarizer ai.Summarizer, signKey []byte, log *zap.Logger) *Server {
	return &Server{
		auth:       auth,
		notes:      notes,
		tasks:      tasks,
		summarizer: summarizer,
		signKey:    signKey,
		validate:   validator.New(),
		log:        log,
	}
}

// Router assembles the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(Recover(s.log))
	r.Use(RequestLogger(s.log))

	r.Post("/auth/register", s.register)
	r.Post("/auth/login", s.login)

	r.Group(func(pr chi.Router) {
		pr.Use(s.authenticate)

		pr.Route("/notes", func(nr chi.Router) {
			nr.Post("/", s.createNote)
			nr.Get("/", s.listNotes)
			nr.Get("/search", s.searchNotes)
			nr.Route("/{noteID}", func(ir chi.Router) {
				ir.Put("/", s.updateNote)
				ir.Delete("/", s.deleteNote)
				ir.Get("/versions", s.noteVersions)
			})
		})

		pr.Route("/tasks", func(tr chi.Router) {
			tr.Post("/", s.createTask)
			tr.Get("/", s.listTasks)
			tr.Route("/{taskID}", func(ir chi.Router) {
				ir.Get("/", s.getTask)
				ir.Put("/", s.updateTask)
				ir.Delete("/", s.deleteTask)
				ir.Patch("/complete", s.completeTask)
			})
		})

		pr.Post("/ai/summarize", s.summarize)
	})

	return r
}
