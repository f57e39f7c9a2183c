// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/smart-notes/backend/internal/model"
)

// UserRepository provides account storage for registration and login.
type UserRepository interface {
	// Create inserts a new user and returns the store-assigned id.
	// Returns errs.ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, u *model.User) (bson.ObjectID, error)
	// GetByEmail loads a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
