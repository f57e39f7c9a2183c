package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/smart-notes/backend/internal/errs"
	"github.com/smart-notes/backend/internal/model"
)

// noteSearchFields are the fields the substring search matches against.
var noteSearchFields = []string{"title", "content"}

// NoteRepo implements NoteRepository using MongoDB.
type NoteRepo struct{ db *DB }

// NewNoteRepo constructs a note repository.
func NewNoteRepo(db *DB) *NoteRepo { return &NoteRepo{db: db} }

// Insert stores a new note document.
func (r *NoteRepo) Insert(ctx context.Context, n *model.Note) (bson.ObjectID, error) {
	res, err := r.db.Notes.InsertOne(ctx, n)
	if err != nil {
		return bson.NilObjectID, err
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, errors.New("unexpected inserted id type")
	}
	return id, nil
}

// List returns the owner's non-deleted notes filtered and sorted per q.
func (r *NoteRepo) List(ctx context.Context, userID bson.ObjectID, q model.ListQuery) ([]model.Note, error) {
	filter := ListFilter(userID, q.Search, noteSearchFields, q.Locked, nil)
	cur, err := r.db.Notes.Find(ctx, filter, options.Find().SetSort(SortOrder(q.Sort)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []model.Note{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single non-deleted note scoped to the owner.
func (r *NoteRepo) Get(ctx context.Context, userID, noteID bson.ObjectID) (*model.Note, error) {
	filter := bson.M{"_id": noteID, "user_id": userID, "is_deleted": false}
	var n model.Note
	if err := r.db.Notes.FindOne(ctx, filter).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// Exists reports whether the owner has a note with this id, deleted or not.
func (r *NoteRepo) Exists(ctx context.Context, userID, noteID bson.ObjectID) (bool, error) {
	n, err := r.db.Notes.CountDocuments(ctx, bson.M{"_id": noteID, "user_id": userID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// NextVersion increments the note's version counter and returns the new value.
func (r *NoteRepo) NextVersion(ctx context.Context, noteID bson.ObjectID) (int64, error) {
	res := r.db.Notes.FindOneAndUpdate(ctx,
		bson.M{"_id": noteID},
		bson.M{"$inc": bson.M{"latest_version": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var n model.Note
	if err := res.Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, errs.ErrNotFound
		}
		return 0, err
	}
	return n.LatestVersion, nil
}

// InsertVersion appends a content snapshot.
func (r *NoteRepo) InsertVersion(ctx context.Context, v *model.NoteVersion) error {
	_, err := r.db.Versions.InsertOne(ctx, v)
	return err
}

// Versions returns all snapshots for the note, most recent edit first.
func (r *NoteRepo) Versions(ctx context.Context, noteID bson.ObjectID) ([]model.NoteVersion, error) {
	cur, err := r.db.Versions.Find(ctx,
		bson.M{"note_id": noteID},
		options.Find().SetSort(bson.D{{Key: "version", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []model.NoteVersion{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyPatch applies the present patch fields with a partial $set.
func (r *NoteRepo) ApplyPatch(ctx context.Context, noteID bson.ObjectID, p model.NotePatch, clearSummary bool) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Content != nil {
		set["content"] = *p.Content
	}
	if p.Tags != nil {
		set["tags"] = *p.Tags
	}
	if p.IsFavorite != nil {
		set["is_favorite"] = *p.IsFavorite
	}
	if p.IsLocked != nil {
		set["is_locked"] = *p.IsLocked
	}
	if p.IsArchived != nil {
		set["is_archived"] = *p.IsArchived
	}
	if p.Color != nil {
		set["color"] = *p.Color
	}
	if clearSummary {
		set["summary"] = nil
	}
	_, err := r.db.Notes.UpdateOne(ctx, bson.M{"_id": noteID}, bson.M{"$set": set})
	return err
}

// SoftDelete flips is_deleted on a matching non-deleted note.
func (r *NoteRepo) SoftDelete(ctx context.Context, userID, noteID bson.ObjectID) (bool, error) {
	res, err := r.db.Notes.UpdateOne(ctx,
		bson.M{"_id": noteID, "user_id": userID, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// Search runs a $text relevance search over the owner's non-deleted notes.
func (r *NoteRepo) Search(ctx context.Context, userID bson.ObjectID, query string) ([]model.Note, error) {
	filter := bson.M{
		"$text":      bson.M{"$search": query},
		"user_id":    userID,
		"is_deleted": false,
	}
	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}})
	cur, err := r.db.Notes.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []model.Note{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
