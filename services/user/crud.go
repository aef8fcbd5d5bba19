package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"adminpanel/database/repository"
	"adminpanel/models"
	"adminpanel/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// CreateUser adds a managed user. Admin-created accounts skip OTP and are
// stored already verified.
func (s *DefaultUserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	logger := utils.GetLogger()
	email := normalizeEmail(req.Email)

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		MobileNumber: strings.TrimSpace(req.MobileNumber),
		Coins:        req.Coins,
		IsVerified:   true,
	}
	if err := s.Repo.Create(ctx, usr); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		logger.Error("Failed to create user", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	logger.Info("Managed user created", zap.String("userID", usr.ID))
	usr.PasswordHash = ""
	return usr, nil
}

// ListUsers returns one page of users, newest first.
func (s *DefaultUserService) ListUsers(ctx context.Context, page models.PageRequest) ([]models.User, models.Pagination, error) {
	page = page.Normalize()
	users, total, err := s.Repo.List(ctx, page)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list users: %w", err)
	}
	return users, models.NewPagination(total, page), nil
}

// GetUserByID retrieves a user by ID, excluding sensitive fields.
func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	usr, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return usr, nil
}

// UpdateUser applies the non-nil fields of req. A changed email must not
// belong to another account.
func (s *DefaultUserService) UpdateUser(ctx context.Context, userID string, req models.UserUpdateRequest) (*models.User, error) {
	logger := utils.GetLogger()
	if req.Name == nil && req.Email == nil && req.MobileNumber == nil && req.Coins == nil {
		return nil, ErrNothingToEdit
	}

	usr, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != usr.Email {
			other, err := s.Repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if other != nil && other.ID != usr.ID {
				return nil, ErrEmailTaken
			}
			usr.Email = email
		}
	}
	if req.Name != nil {
		usr.Name = strings.TrimSpace(*req.Name)
	}
	if req.MobileNumber != nil {
		usr.MobileNumber = strings.TrimSpace(*req.MobileNumber)
	}
	if req.Coins != nil {
		usr.Coins = *req.Coins
	}

	if err := s.Repo.Update(ctx, usr); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		logger.Error("Failed to update user", zap.String("userID", userID), zap.Error(err))
		return nil, mapRepoError(err)
	}
	return usr, nil
}

// DeleteUser removes a user by ID.
func (s *DefaultUserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return mapRepoError(err)
	}
	return nil
}

func mapRepoError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
