package user

import (
	"context"

	userRepo "adminpanel/database/repository/user"
	"adminpanel/models"
)

// UserService manages user accounts on behalf of administrators.
type UserService interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	ListUsers(ctx context.Context, page models.PageRequest) ([]models.User, models.Pagination, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, userID string, req models.UserUpdateRequest) (*models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
