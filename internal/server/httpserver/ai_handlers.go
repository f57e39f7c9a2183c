package httpserver

import (
	"net/http"

	"github.com/go-chi/render"
)

type summarizeRequest struct {
	Text string `json:"text" validate:"required"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

func (s *Server) summarize(w http.ResponseWriter, r *http.Request) {
	if _, err := ownerID(r); err != nil {
		s.respondError(w, r, err)
		return
	}
	var req summarizeRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondBadRequest(w, r, "failed to decode request")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondBadRequest(w, r, "text is required")
		return
	}

	summary, err := s.summarizer.Summarize(r.Context(), req.Text)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	render.JSON(w, r, summarizeResponse{Summary: summary})
}
