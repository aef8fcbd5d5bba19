package userRepo

import (
	"context"

	"adminpanel/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user record. A taken email yields repository.ErrDuplicate.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID without the password hash.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user, password hash included, by email.
	// It returns nil, nil when no user has that email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// List returns one page of users, newest first, and the total count.
	List(ctx context.Context, page models.PageRequest) ([]models.User, int64, error)
	// MarkVerified sets isVerified on one user without touching other fields.
	MarkVerified(ctx context.Context, id string) error
	// Update persists every field of an existing user record.
	Update(ctx context.Context, user *models.User) error
	// Delete removes a user record by its ID.
	Delete(ctx context.Context, id string) error
}
