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

// Priority bounds for tasks.
const (
	MinPriority = 1
	MaxPriority = 3
)

// TaskService defines the task workflow.
type TaskService interface {
	// Create inserts a new task and returns it with store-assigned fields.
	Create(ctx context.Context, userID bson.ObjectID, draft model.TaskDraft) (*model.Task, error)
	// List returns the owner's tasks filtered and sorted per q.
	List(ctx context.Context, userID bson.ObjectID, q model.ListQuery) ([]model.Task, error)
	// Get returns a single task.
	Get(ctx context.Context, userID, taskID bson.ObjectID) (*model.Task, error)
	// Update applies a sparse patch. An empty patch succeeds without writing.
	Update(ctx context.Context, userID, taskID bson.ObjectID, p model.TaskPatch) error
	// Delete soft-deletes a task; deleting twice fails the second time.
	Delete(ctx context.Context, userID, taskID bson.ObjectID) error
	// SetCompleted sets the completed flag to an explicit value.
	SetCompleted(ctx context.Context, userID, taskID bson.ObjectID, completed bool) error
}

type TaskServiceImpl struct {
	repo repository.TaskRepository
}

// NewTaskService constructs TaskService.
func NewTaskService(repo repository.TaskRepository) *TaskServiceImpl {
	return &TaskServiceImpl{repo: repo}
}

// Create validates priority before any store write and inserts the task.
func (s *TaskServiceImpl) Create(ctx context.Context, userID bson.ObjectID, draft model.TaskDraft) (*model.Task, error) {
	if userID.IsZero() {
		return nil, fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	if draft.Priority < MinPriority || draft.Priority > MaxPriority {
		return nil, fmt.Errorf("%w: priority %d out of range [%d,%d]",
			errs.ErrValidation, draft.Priority, MinPriority, MaxPriority)
	}
	now := time.Now().UTC()
	t := &model.Task{
		UserID:      userID,
		Title:       draft.Title,
		Description: draft.Description,
		Completed:   false,
		DueDate:     draft.DueDate,
		Priority:    draft.Priority,
		IsLocked:    draft.IsLocked,
		IsDeleted:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	id, err := s.repo.Insert(ctx, t)
	if err != nil {
		return nil, err
	}
	t.ID = id
	return t, nil
}

// List returns the owner's non-deleted tasks.
func (s *TaskServiceImpl) List(ctx context.Context, userID bson.ObjectID, q model.ListQuery) ([]model.Task, error) {
	if userID.IsZero() {
		return nil, fmt.Errorf("%w: empty userID", errs.ErrValidation)
	}
	return s.repo.List(ctx, userID, q)
}

// Get returns a single non-deleted task scoped to the owner.
func (s *TaskServiceImpl) Get(ctx context.Context, userID, taskID bson.ObjectID) (*model.Task, error) {
	if userID.IsZero() || taskID.IsZero() {
		return nil, fmt.Errorf("%w: empty userID/taskID", errs.ErrValidation)
	}
	return s.repo.Get(ctx, userID, taskID)
}

// Update applies a sparse patch after an existence check. Tasks carry no
// version history. An empty patch is accepted and performs no write, leaving
// updated_at untouched.
func (s *TaskServiceImpl) Update(ctx context.Context, userID, taskID bson.ObjectID, p model.TaskPatch) error {
	if userID.IsZero() || taskID.IsZero() {
		return fmt.Errorf("%w: empty userID/taskID", errs.ErrValidation)
	}
	if p.Priority != nil && (*p.Priority < MinPriority || *p.Priority > MaxPriority) {
		return fmt.Errorf("%w: priority %d out of range [%d,%d]",
			errs.ErrValidation, *p.Priority, MinPriority, MaxPriority)
	}
	if _, err := s.repo.Get(ctx, userID, taskID); err != nil {
		return err
	}
	if p.IsZero() {
		return nil
	}
	return s.repo.ApplyPatch(ctx, taskID, p)
}

// Delete soft-deletes a task; the second delete on the same id returns
// ErrNotFound.
func (s *TaskServiceImpl) Delete(ctx context.Context, userID, taskID bson.ObjectID) error {
	if userID.IsZero() || taskID.IsZero() {
		return fmt.Errorf("%w: empty userID/taskID", errs.ErrValidation)
	}
	flipped, err := s.repo.SoftDelete(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if !flipped {
		return errs.ErrNotFound
	}
	return nil
}

// SetCompleted sets the completed flag to the given value. Despite the
// "complete" route name this is an absolute set, not a toggle.
func (s *TaskServiceImpl) SetCompleted(ctx context.Context, userID, taskID bson.ObjectID, completed bool) error {
	if userID.IsZero() || taskID.IsZero() {
		return fmt.Errorf("%w: empty userID/taskID", errs.ErrValidation)
	}
	matched, err := s.repo.SetCompleted(ctx, userID, taskID, completed)
	if err != nil {
		return err
	}
	if !matched {
		return errs.ErrNotFound
	}
	return nil
}
