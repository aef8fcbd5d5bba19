package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"adminpanel/database/repository"
	"adminpanel/models"
	"adminpanel/services/otp"
	"adminpanel/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Signup creates an unverified account and starts its first OTP order. If
// the OTP cannot be sent the account is removed again.
func (s *DefaultAuthService) Signup(ctx context.Context, req models.UserBasicRegistrationData) (*SignupResult, error) {
	logger := utils.GetLogger()
	email := NormalizeEmail(req.Email)

	existing, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		logger.Error("Signup: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("signup: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateAccount
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("signup: failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		MobileNumber: strings.TrimSpace(req.MobileNumber),
		IsVerified:   false,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		// Lost the race against a concurrent signup for the same email.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("signup: %w", err)
	}

	orderID, err := s.startOrder(ctx, user)
	if err != nil {
		s.rollbackSignup(ctx, user.ID)
		return nil, err
	}

	logger.Info("Signup: OTP sent", zap.String("userID", user.ID), zap.String("orderId", orderID))
	return &SignupResult{ID: user.ID, OrderID: orderID}, nil
}

// startOrder binds a fresh order id to the user and asks the gateway to
// deliver the code. On delivery failure the binding is released.
func (s *DefaultAuthService) startOrder(ctx context.Context, user *models.User) (string, error) {
	orderID := otp.NewOrderID()
	if err := s.Orders.Bind(ctx, orderID, user.ID); err != nil {
		return "", fmt.Errorf("start otp order: %w", err)
	}

	sent, err := s.Gateway.Send(ctx, otp.SendRequest{
		PhoneNumber: user.MobileNumber,
		Email:       user.Email,
		OrderID:     orderID,
	})
	if err != nil || sent == "" {
		if relErr := s.Orders.Release(ctx, orderID); relErr != nil {
			utils.GetLogger().Warn("failed to release otp order", zap.String("orderId", orderID), zap.Error(relErr))
		}
		return "", &OTPError{Kind: ErrOTPDeliveryFailed, Reason: gatewayReason(err), Err: err}
	}
	return orderID, nil
}

func (s *DefaultAuthService) rollbackSignup(ctx context.Context, userID string) {
	// The request context may already be cancelled; the rollback must still run.
	if err := s.Users.Delete(context.WithoutCancel(ctx), userID); err != nil {
		utils.GetLogger().Error("Signup: failed to roll back user after OTP failure", zap.String("userID", userID), zap.Error(err))
	}
}

// gatewayReason extracts the gateway's message for display.
func gatewayReason(err error) string {
	var gwErr *otp.GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return "gateway returned no order id"
}
