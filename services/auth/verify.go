package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"adminpanel/models"
	"adminpanel/services/otp"
	"adminpanel/utils"

	"go.uber.org/zap"
)

// VerifyOTP confirms the code with the gateway, then activates the account
// the order was started for and issues a session token. The account is found
// through the order binding, never by phone number alone.
func (s *DefaultAuthService) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyResult, error) {
	logger := utils.GetLogger()
	phone := strings.TrimSpace(req.PhoneNumber)

	err := s.Gateway.Verify(ctx, otp.VerifyRequest{
		PhoneNumber: phone,
		Email:       NormalizeEmail(req.Email),
		OrderID:     req.OrderID,
		OTP:         req.OTP,
	})
	if err != nil {
		return nil, &OTPError{Kind: ErrOTPInvalid, Reason: gatewayReason(err), Err: err}
	}

	accountID, err := s.Orders.Resolve(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			logger.Warn("VerifyOTP: verified order has no bound account", zap.String("orderId", req.OrderID))
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("verify otp: %w", err)
	}

	user, err := s.Users.GetByID(ctx, accountID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if user.MobileNumber != phone {
		logger.Warn("VerifyOTP: phone number does not match bound account",
			zap.String("orderId", req.OrderID), zap.String("userID", user.ID))
		return nil, ErrAccountNotFound
	}

	if !user.IsVerified {
		if err := s.Users.MarkVerified(ctx, user.ID); err != nil {
			return nil, fmt.Errorf("verify otp: %w", mapNotFound(err))
		}
	}
	if err := s.Orders.Release(ctx, req.OrderID); err != nil {
		logger.Warn("VerifyOTP: failed to release otp order", zap.String("orderId", req.OrderID), zap.Error(err))
	}

	token, err := s.Tokens.Issue(user.ID, models.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("verify otp: failed to issue token: %w", err)
	}
	return &VerifyResult{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Coins: user.Coins,
		Token: token,
	}, nil
}

// ResendOTP asks the gateway to re-deliver an existing order.
func (s *DefaultAuthService) ResendOTP(ctx context.Context, orderID string) (string, error) {
	if _, err := s.Gateway.Resend(ctx, orderID); err != nil {
		return "", &OTPError{Kind: ErrOTPResendFailed, Reason: gatewayReason(err), Err: err}
	}
	if err := s.Orders.Touch(ctx, orderID); err != nil {
		utils.GetLogger().Warn("ResendOTP: failed to refresh otp order", zap.String("orderId", orderID), zap.Error(err))
	}
	return orderID, nil
}
