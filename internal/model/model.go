// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DefaultColor is assigned to notes created without an explicit color.
const DefaultColor = "default"

// Tokens collects issued access tokens (refresh not used yet).
type Tokens struct {
	AccessToken string
	ExpiresAt   time.Time // access token expiry (for diagnostics)
}

// User represents an account. Passwords are stored as Argon2id hashes only.
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Email     string        `bson:"email"` // unique
	PwdHash   []byte        `bson:"pwd_hash"`
	SaltAuth  []byte        `bson:"salt_auth"` // per-user auth salt
	CreatedAt time.Time     `bson:"created_at"`
}

// Note is a single note document. Soft-deleted notes stay in the collection
// with is_deleted=true and are excluded from every normal read path.
type Note struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     bson.ObjectID `bson:"user_id" json:"-"`
	Title      string        `bson:"title" json:"title"`
	Content    string        `bson:"content" json:"content"`
	Tags       []string      `bson:"tags" json:"tags"`
	IsFavorite bool          `bson:"is_favorite" json:"is_favorite"`
	IsLocked   bool          `bson:"is_locked" json:"is_locked"`
	IsArchived bool          `bson:"is_archived" json:"is_archived"`
	Color      string        `bson:"color" json:"color"`
	Summary    *string       `bson:"summary" json:"summary"`
	IsDeleted  bool          `bson:"is_deleted" json:"-"`
	// LatestVersion is a monotonic counter owned by the note; snapshot version
	// numbers come from incrementing it, so a retried update cannot mint a
	// duplicate version number.
	LatestVersion int64     `bson:"latest_version" json:"-"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// NoteVersion is an immutable snapshot of a note's content taken just before
// an update was applied. Versions are appended, never mutated or deleted.
type NoteVersion struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	NoteID    bson.ObjectID `bson:"note_id" json:"note_id"`
	Content   string        `bson:"content" json:"content"`
	Version   int64         `bson:"version" json:"version"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}

// Task is a single task document with the same soft-delete scheme as notes.
type Task struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      bson.ObjectID `bson:"user_id" json:"-"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Completed   bool          `bson:"completed" json:"completed"`
	DueDate     *time.Time    `bson:"due_date" json:"due_date"`
	Priority    int           `bson:"priority" json:"priority"` // 1..3
	IsLocked    bool          `bson:"is_locked" json:"is_locked"`
	IsDeleted   bool          `bson:"is_deleted" json:"-"`
	CreatedAt   time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updated_at"`
}

// NoteDraft is the client-supplied part of a new note.
type NoteDraft struct {
	Title      string
	Content    string
	Tags       []string
	IsFavorite bool
	IsLocked   bool
	IsArchived bool
	Color      string
}

// TaskDraft is the client-supplied part of a new task.
type TaskDraft struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    int
	IsLocked    bool
}

// NotePatch is a sparse note update: a field participates in the update iff
// its pointer is non-nil.
type NotePatch struct {
	Title      *string
	Content    *string
	Tags       *[]string
	IsFavorite *bool
	IsLocked   *bool
	IsArchived *bool
	Color      *string
}

// IsZero reports whether the patch carries no fields at all.
func (p NotePatch) IsZero() bool {
	return p.Title == nil && p.Content == nil && p.Tags == nil &&
		p.IsFavorite == nil && p.IsLocked == nil && p.IsArchived == nil && p.Color == nil
}

// TaskPatch is a sparse task update with the same presence semantics.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *int
	Completed   *bool
	IsLocked    *bool
}

// IsZero reports whether the patch carries no fields at all.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil &&
		p.Priority == nil && p.Completed == nil && p.IsLocked == nil
}

// ListQuery carries the shared listing parameters for notes and tasks.
// Completed is only meaningful for tasks.
type ListQuery struct {
	Search    string
	Sort      string
	Locked    bool
	Completed *bool
}
