package httpserver

import (
	"net"
	"net/http"

	"github.com/go-chi/render"
)

type credentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	ID string `json:"id"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// remoteIP extracts the caller's address for login rate limiting.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondBadRequest(w, r, "failed to decode request")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondBadRequest(w, r, "valid email and password are required")
		return
	}

	id, err := s.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, registerResponse{ID: id})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondBadRequest(w, r, "failed to decode request")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondBadRequest(w, r, "valid email and password are required")
		return
	}

	tokens, err := s.auth.LoginWithIP(r.Context(), req.Email, req.Password, remoteIP(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	render.JSON(w, r, loginResponse{AccessToken: tokens.AccessToken})
}
