package auth

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

// CreateAdmin adds an administrator and returns a token for it.
func (s *DefaultAuthService) CreateAdmin(ctx context.Context, req models.CreateAdminRequest) (*AdminAuthResponse, error) {
	email := NormalizeEmail(req.Email)
	existing, err := s.Admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("create admin: failed to hash password: %w", err)
	}

	admin := &models.Admin{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		MobileNumber: strings.TrimSpace(req.MobileNumber),
		IsAdmin:      true,
	}
	if err := s.Admins.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}

	utils.GetLogger().Info("Admin created", zap.String("adminID", admin.ID))
	return s.adminResponse(admin)
}

// CreateInitialAdmin bootstraps the first administrator without
// authentication. It refuses once any admin exists.
func (s *DefaultAuthService) CreateInitialAdmin(ctx context.Context, req models.CreateAdminRequest) (*AdminAuthResponse, error) {
	count, err := s.Admins.CountAdmins(ctx)
	if err != nil {
		return nil, fmt.Errorf("create initial admin: %w", err)
	}
	if count > 0 {
		return nil, ErrAdminsExist
	}
	return s.CreateAdmin(ctx, req)
}
