package auth

import (
	"context"
	"errors"
	"fmt"

	"adminpanel/database/repository"
	"adminpanel/models"
	"adminpanel/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login checks credentials. Verified accounts get a token; unverified ones
// get a new OTP order through VerificationRequiredError and no token.
func (s *DefaultAuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	userRec, err := s.Users.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		utils.GetLogger().Error("Login: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("login: %w", err)
	}
	if userRec == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !userRec.IsVerified {
		orderID, err := s.startOrder(ctx, userRec)
		if err != nil {
			return nil, err
		}
		return nil, VerificationRequiredError{AccountID: userRec.ID, OrderID: orderID}
	}

	token, err := s.Tokens.Issue(userRec.ID, models.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("login: failed to issue token: %w", err)
	}
	return &AuthResponse{
		ID:    userRec.ID,
		Name:  userRec.Name,
		Email: userRec.Email,
		Token: token,
	}, nil
}

// AdminLogin checks credentials against the admin collection. No OTP step.
func (s *DefaultAuthService) AdminLogin(ctx context.Context, email, password string) (*AdminAuthResponse, error) {
	admin, err := s.Admins.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		utils.GetLogger().Error("AdminLogin: failed to fetch admin", zap.Error(err))
		return nil, fmt.Errorf("admin login: %w", err)
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !admin.IsAdmin {
		return nil, ErrNotAdmin
	}
	return s.adminResponse(admin)
}

// Profile returns the caller's own account summary.
func (s *DefaultAuthService) Profile(ctx context.Context, identity models.Identity) (*ProfileResponse, error) {
	if identity.IsAdmin {
		admin, err := s.Admins.GetByID(ctx, identity.ID)
		if err != nil {
			return nil, mapNotFound(err)
		}
		return &ProfileResponse{ID: admin.ID, Name: admin.Name, Email: admin.Email}, nil
	}

	user, err := s.Users.GetByID(ctx, identity.ID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &ProfileResponse{ID: user.ID, Name: user.Name, Email: user.Email, Coins: user.Coins}, nil
}

func (s *DefaultAuthService) adminResponse(admin *models.Admin) (*AdminAuthResponse, error) {
	token, err := s.Tokens.Issue(admin.ID, models.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to issue admin token: %w", err)
	}
	return &AdminAuthResponse{
		ID:      admin.ID,
		Name:    admin.Name,
		Email:   admin.Email,
		IsAdmin: admin.IsAdmin,
		Token:   token,
	}, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrAccountNotFound
	}
	return err
}
