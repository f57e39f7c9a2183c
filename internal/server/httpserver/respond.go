package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/smart-notes/backend/internal/errs"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// writeError is the render-free path used by middleware, where no request
// context is threaded through chi's render yet.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

// respondError maps sentinel errors onto HTTP statuses. Anything unmapped is
// a store or backend failure: logged and surfaced as 500.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, errorResponse{Error: "not found"})
	case errors.Is(err, errs.ErrValidation):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrUnauthorized):
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, errs.ErrAlreadyExists):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, errorResponse{Error: "already exists"})
	case errors.Is(err, errs.ErrRateLimited):
		render.Status(r, http.StatusTooManyRequests)
		render.JSON(w, r, errorResponse{Error: "too many attempts"})
	default:
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{Error: "internal"})
	}
}

// respondBadRequest reports a malformed request body or parameter.
func respondBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, errorResponse{Error: msg})
}
