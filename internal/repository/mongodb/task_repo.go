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

// taskSearchFields are the fields the substring search matches against.
var taskSearchFields = []string{"title", "description"}

// TaskRepo implements TaskRepository using MongoDB.
type TaskRepo struct{ db *DB }

// NewTaskRepo constructs a task repository.
func NewTaskRepo(db *DB) *TaskRepo { return &TaskRepo{db: db} }

// Insert stores a new task document.
func (r *TaskRepo) Insert(ctx context.Context, t *model.Task) (bson.ObjectID, error) {
	res, err := r.db.Tasks.InsertOne(ctx, t)
	if err != nil {
		return bson.NilObjectID, err
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, errors.New("unexpected inserted id type")
	}
	return id, nil
}

// List returns the owner's non-deleted tasks filtered and sorted per q.
func (r *TaskRepo) List(ctx context.Context, userID bson.ObjectID, q model.ListQuery) ([]model.Task, error) {
	var extra bson.M
	if q.Completed != nil {
		extra = bson.M{"completed": *q.Completed}
	}
	filter := ListFilter(userID, q.Search, taskSearchFields, q.Locked, extra)
	cur, err := r.db.Tasks.Find(ctx, filter, options.Find().SetSort(SortOrder(q.Sort)))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []model.Task{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single non-deleted task scoped to the owner.
func (r *TaskRepo) Get(ctx context.Context, userID, taskID bson.ObjectID) (*model.Task, error) {
	filter := bson.M{"_id": taskID, "user_id": userID, "is_deleted": false}
	var t model.Task
	if err := r.db.Tasks.FindOne(ctx, filter).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ApplyPatch applies the present patch fields with a partial $set.
func (r *TaskRepo) ApplyPatch(ctx context.Context, taskID bson.ObjectID, p model.TaskPatch) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.DueDate != nil {
		set["due_date"] = *p.DueDate
	}
	if p.Priority != nil {
		set["priority"] = *p.Priority
	}
	if p.Completed != nil {
		set["completed"] = *p.Completed
	}
	if p.IsLocked != nil {
		set["is_locked"] = *p.IsLocked
	}
	_, err := r.db.Tasks.UpdateOne(ctx, bson.M{"_id": taskID}, bson.M{"$set": set})
	return err
}

// SoftDelete flips is_deleted on a matching non-deleted task.
func (r *TaskRepo) SoftDelete(ctx context.Context, userID, taskID bson.ObjectID) (bool, error) {
	res, err := r.db.Tasks.UpdateOne(ctx,
		bson.M{"_id": taskID, "user_id": userID, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// SetCompleted sets the completed flag on a matching non-deleted task.
func (r *TaskRepo) SetCompleted(ctx context.Context, userID, taskID bson.ObjectID, completed bool) (bool, error) {
	res, err := r.db.Tasks.UpdateOne(ctx,
		bson.M{"_id": taskID, "user_id": userID, "is_deleted": false},
		bson.M{"$set": bson.M{"completed": completed, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
