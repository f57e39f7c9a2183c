package httpserver

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/smart-notes/backend/internal/errs"
	"github.com/smart-notes/backend/internal/model"
)

type createNoteRequest struct {
	Title      string   `json:"title" validate:"required"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	IsFavorite bool     `json:"is_favorite"`
	IsLocked   bool     `json:"is_locked"`
	IsArchived bool     `json:"is_archived"`
	Color      string   `json:"color"`
}

type updateNoteRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Tags       *[]string `json:"tags"`
	IsFavorite *bool     `json:"is_favorite"`
	IsLocked   *bool     `json:"is_locked"`
	IsArchived *bool     `json:"is_archived"`
	Color      *string   `json:"color"`
}

// ownerID pulls the authenticated owner id set by the auth middleware.
func ownerID(r *http.Request) (bson.ObjectID, error) {
	uid, ok := UserIDFromCtx(r.Context())
	if !ok {
		return bson.NilObjectID, errs.ErrUnauthorized
	}
	return uid, nil
}

// pathID parses an ObjectID URL parameter.
func pathID(r *http.Request, name string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: malformed id", errs.ErrValidation)
	}
	return id, nil
}

// listQuery reads the shared listing parameters.
func listQuery(r *http.Request) model.ListQuery {
	q := model.ListQuery{
		Search: r.URL.Query().Get("search"),
		Sort:   r.URL.Query().Get("sort"),
		Locked: r.URL.Query().Get("locked") == "true",
	}
	return q
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	uid, err := ownerID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req createNoteRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondBadRequest(w, r, "failed to decode request")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondBadRequest(w, r, "title is required")
		return
	}

	n, err := s.notes.Create(r.Context(), uid, model.NoteDraft{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		IsFavorite: req.IsFavorite,
		IsLocked:   req.IsLocked,
		IsArchived: req.IsArchived,
		Color:      req.Color,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, n)
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	uid, err := ownerID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	notes, err := s.notes.List(r.Context(), uid, listQuery(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	render.JSON(w, r, notes)
}

func (s *Server) searchNotes(w http.ResponseWriter, r *http.Request) {
	uid, err := ownerID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	q := r.URL.Query().Get("q")
	if q == "" {
		respondBadRequest(w, r, "q is required")
		return
	}
	notes, err := s.notes.Search(r.Context(), uid, q)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	render.JSON(w, r, notes)
}

func (s *Server) updateNote(w http.ResponseWriter, r *http.Request) {
	uid, err := ownerID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	noteID, err := pathID(r, "noteID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	var req updateNoteRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		respondBadRequest(w, r, "failed to decode request")
		return
	}

	patch := model.NotePatch{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		IsFavorite: req.IsFavorite,
		IsLocked:   req.IsLocked,
		IsArchived: req.IsArchived,
		Color:      req.Color,
	}
	if err := s.notes.Update(r.Context(), uid, noteID, patch); err != nil {
		s.respondError(w, r, err)
		return
	}
	render.JSON(w, r, messageResponse{Message: "note updated"})
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	uid, err := ownerID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	noteID, err := pathID(r, "noteID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.notes.Delete(r.Context(), uid, noteID); err != nil {
		s.respondError(w, r, err)
		return
	}
	render.JSON(w, r, messageResponse{Message: "note deleted"})
}

func (s *Server) noteVersions(w http.ResponseWriter, r *http.Request) {
	uid, err := ownerID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	noteID, err := pathID(r, "noteID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	versions, err := s.notes.Versions(r.Context(), uid, noteID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	render.JSON(w, r, versions)
}
