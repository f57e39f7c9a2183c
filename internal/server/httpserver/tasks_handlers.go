package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"github.com/smart-notes/backend/internal/model"
)

type createTaskRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *int       `json:"priority"`
	IsLocked    bool       `json:"is_locked"`
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *int       `json:"priority"`
	Completed   *bool      `json:"completed"`
	IsLocked    *bool      `json:"is_locked"`
}

const defaultPriority = 2

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	uid, err := ownerID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req createTaskRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondBadRequest(w, r, "failed to decode request")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondBadRequest(w, r, "title is required")
		return
	}

	priority := defaultPriority
	if req.Priority != nil {
		priority = *req.Priority
	}
	t, err := s.tasks.Create(r.Context(), uid, model.TaskDraft{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    priority,
		IsLocked:    req.IsLocked,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, t)
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	uid, err := ownerID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	q := listQuery(r)
	if raw := r.URL.Query().Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			respondBadRequest(w, r, "completed must be a boolean")
			return
		}
		q.Completed = &completed
	}
	tasks, err := s.tasks.List(r.Context(), uid, q)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	render.JSON(w, r, tasks)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	uid, err := ownerID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	t, err := s.tasks.Get(r.Context(), uid, taskID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	render.JSON(w, r, t)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	uid, err := ownerID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req updateTaskRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondBadRequest(w, r, "failed to decode request")
		return
	}

	patch := model.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Completed:   req.Completed,
		IsLocked:    req.IsLocked,
	}
	if err := s.tasks.Update(r.Context(), uid, taskID, patch); err != nil {
		s.respondError(w, r, err)
		return
	}
	render.JSON(w, r, messageResponse{Message: "task updated"})
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	uid, err := ownerID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.tasks.Delete(r.Context(), uid, taskID); err != nil {
		s.respondError(w, r, err)
		return
	}
	render.JSON(w, r, messageResponse{Message: "task deleted"})
}

func (s *Server) completeTask(w http.ResponseWriter, r *http.Request) {
	uid, err := ownerID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	taskID, err := pathID(r, "taskID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	completed, err := strconv.ParseBool(r.URL.Query().Get("completed"))
	if err != nil {
		respondBadRequest(w, r, "completed must be a boolean")
		return
	}
	if err := s.tasks.SetCompleted(r.Context(), uid, taskID, completed); err != nil {
		s.respondError(w, r, err)
		return
	}
	render.JSON(w, r, messageResponse{Message: "task updated"})
}
