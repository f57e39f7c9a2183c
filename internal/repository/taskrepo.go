package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/smart-notes/backend/internal/model"
)

// TaskRepository provides owner-scoped access to tasks.
type TaskRepository interface {
	// Insert stores a new task and returns the store-assigned id.
	Insert(ctx context.Context, t *model.Task) (bson.ObjectID, error)

	// List returns non-deleted tasks for the owner, filtered and sorted
	// according to q.
	List(ctx context.Context, userID bson.ObjectID, q model.ListQuery) ([]model.Task, error)

	// Get returns a single non-deleted task scoped to the owner.
	// Returns errs.ErrNotFound when no such task exists.
	Get(ctx context.Context, userID, taskID bson.ObjectID) (*model.Task, error)

	// ApplyPatch applies the present fields of the patch and refreshes
	// updated_at. The patch must not be empty.
	ApplyPatch(ctx context.Context, taskID bson.ObjectID, p model.TaskPatch) error

	// SoftDelete flips is_deleted on a matching non-deleted task and reports
	// whether a row was actually flipped.
	SoftDelete(ctx context.Context, userID, taskID bson.ObjectID) (bool, error)

	// SetCompleted sets the completed flag to the given value on a matching
	// non-deleted task and reports whether a row matched.
	SetCompleted(ctx context.Context, userID, taskID bson.ObjectID, completed bool) (bool, error)
}
