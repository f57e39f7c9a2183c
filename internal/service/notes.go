package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/smart-notes/backend/internal/errs"
	"github.com/smart-notes/backend/internal/model"
	"github.com/smart-notes/backend/internal/repository"
)

// NoteService defines the note workflow: CRUD with content versioning.
type NoteService interface {
	// Create inserts a new note and returns it with store-assigned fields.
	Create(ctx context.Context, userID bson.ObjectID, draft model.NoteDraft) (*model.Note, error)
	// List returns the owner's notes filtered and sorted per q.
	List(ctx context.Context, userID bson.ObjectID, q model.ListQuery) ([]model.Note, error)
	// Update snapshots the current content, then applies the patch.
	Update(ctx context.Context, userID, noteID bson.ObjectID, p model.NotePatch) error
	// Versions returns the note's snapshot history, most recent edit first.
	Versions(ctx context.Context, userID, noteID bson.ObjectID) ([]model.NoteVersion, error)
	// Search runs a text-relevance search over the owner's notes.
	Search(ctx context.Context, userID bson.ObjectID, query string) ([]model.Note, error)
	// Delete soft-deletes a note.
	Delete(ctx context.Context, userID, noteID bson.ObjectID) error
}

type NoteServiceImpl struct {
	repo repository.NoteRepository
}

// NewNoteService constructs NoteService.
func NewNoteService(repo repository.NoteRepository) *NoteServiceImpl {
	return &NoteServiceImpl{repo: repo}
}

// Create inserts a new note with defaults applied.
func (s *NoteServiceImpl) Create(ctx context.Context, userID bson.ObjectID, draft model.NoteDraft) (*model.Note, error) {
	if userID.IsZero() {
		return nil, fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	now := time.Now().UTC()
	color := draft.Color
	if color == "" {
		color = model.DefaultColor
	}
	tags := draft.Tags
	if tags == nil {
		tags = []string{}
	}
	n := &model.Note{
		UserID:     userID,
		Title:      draft.Title,
		Content:    draft.Content,
		Tags:       tags,
		IsFavorite: draft.IsFavorite,
		IsLocked:   draft.IsLocked,
		IsArchived: draft.IsArchived,
		Color:      color,
		Summary:    nil,
		IsDeleted:  false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	id, err := s.repo.Insert(ctx, n)
	if err != nil {
		return nil, err
	}
	n.ID = id
	return n, nil
}

// List returns the owner's non-deleted notes.
func (s *NoteServiceImpl) List(ctx context.Context, userID bson.ObjectID, q model.ListQuery) ([]model.Note, error) {
	if userID.IsZero() {
		return nil, fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	return s.repo.List(ctx, userID, q)
}

// Update appends a snapshot of the pre-update content, then applies the
// present patch fields. The snapshot version comes from the note's own
// counter, so the numbers stay gapless and retry-safe. The two store writes
// are not wrapped in a transaction; a failure between them leaves an orphaned
// snapshot and an untouched note.
func (s *NoteServiceImpl) Update(ctx context.Context, userID, noteID bson.ObjectID, p model.NotePatch) error {
	if userID.IsZero() || noteID.IsZero() {
		return fmt.Errorf("%w: empty userID/noteID", errs.ErrValidation)
	}
	n, err := s.repo.Get(ctx, userID, noteID)
	if err != nil {
		return err
	}

	ver, err := s.repo.NextVersion(ctx, noteID)
	if err != nil {
		return err
	}
	snap := &model.NoteVersion{
		NoteID:    noteID,
		Content:   n.Content,
		Version:   ver,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.InsertVersion(ctx, snap); err != nil {
		return err
	}

	return s.repo.ApplyPatch(ctx, noteID, p, summaryInvalidated(p))
}

// summaryInvalidated decides whether an update drops the cached summary.
// Today every update does, even when content is untouched; the decision lives
// here so it can be tightened to p.Content != nil without touching callers.
func summaryInvalidated(model.NotePatch) bool { return true }

// Versions returns the note's snapshot history. The ownership check ignores
// soft deletion: history stays readable after the note is deleted. A note the
// caller does not own yields an empty history, not an error.
func (s *NoteServiceImpl) Versions(ctx context.Context, userID, noteID bson.ObjectID) ([]model.NoteVersion, error) {
	if userID.IsZero() || noteID.IsZero() {
		return nil, fmt.Errorf("%w: empty userID/noteID", errs.ErrValidation)
	}
	ok, err := s.repo.Exists(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.NoteVersion{}, nil
	}
	return s.repo.Versions(ctx, noteID)
}

// Search runs the store's relevance search, best matches first.
func (s *NoteServiceImpl) Search(ctx context.Context, userID bson.ObjectID, query string) ([]model.Note, error) {
	if userID.IsZero() {
		return nil, fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", errs.ErrValidation)
	}
	return s.repo.Search(ctx, userID, query)
}

// Delete soft-deletes a note owned by the caller.
func (s *NoteServiceImpl) Delete(ctx context.Context, userID, noteID bson.ObjectID) error {
	if userID.IsZero() || noteID.IsZero() {
		return fmt.Errorf("%w: empty userID/noteID", errs.ErrValidation)
	}
	flipped, err := s.repo.SoftDelete(ctx, userID, noteID)
	if err != nil {
		return err
	}
	if !flipped {
		return errs.ErrNotFound
	}
	return nil
}
