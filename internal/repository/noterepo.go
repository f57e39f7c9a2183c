package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/smart-notes/backend/internal/model"
)

// NoteRepository provides owner-scoped access to notes and their version history.
type NoteRepository interface {
	// Insert stores a new note and returns the store-assigned id.
	Insert(ctx context.Context, n *model.Note) (bson.ObjectID, error)

	// List returns non-deleted notes for the owner, filtered and sorted
	// according to q.
	List(ctx context.Context, userID bson.ObjectID, q model.ListQuery) ([]model.Note, error)

	// Get returns a single non-deleted note scoped to the owner.
	// Returns errs.ErrNotFound when no such note exists.
	Get(ctx context.Context, userID, noteID bson.ObjectID) (*model.Note, error)

	// Exists reports whether the owner has a note with this id, regardless of
	// its deletion state. Version history stays readable after soft delete.
	Exists(ctx context.Context, userID, noteID bson.ObjectID) (bool, error)

	// NextVersion atomically increments the note's version counter and
	// returns the new value.
	NextVersion(ctx context.Context, noteID bson.ObjectID) (int64, error)

	// InsertVersion appends an immutable content snapshot.
	InsertVersion(ctx context.Context, v *model.NoteVersion) error

	// Versions returns all snapshots for the note ordered by version descending.
	Versions(ctx context.Context, noteID bson.ObjectID) ([]model.NoteVersion, error)

	// ApplyPatch applies the present fields of the patch, refreshes
	// updated_at, and clears the cached summary when clearSummary is set.
	ApplyPatch(ctx context.Context, noteID bson.ObjectID, p model.NotePatch, clearSummary bool) error

	// SoftDelete flips is_deleted on a matching non-deleted note and reports
	// whether a row was actually flipped.
	SoftDelete(ctx context.Context, userID, noteID bson.ObjectID) (bool, error)

	// Search runs a text-relevance search over the owner's non-deleted notes,
	// best matches first.
	Search(ctx context.Context, userID bson.ObjectID, query string) ([]model.Note, error)
}
