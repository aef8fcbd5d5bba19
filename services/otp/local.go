package otp

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"adminpanel/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const localOTPPrefix = "otp:local:"

// LocalGateway generates codes itself, keeps them in Redis and logs the
// outgoing message. It stands in for OTPless in development.
type LocalGateway struct {
	client *redis.Client
	length int
	ttl    time.Duration
}

type localChallenge struct {
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Code        string `json:"code"`
}

func NewLocalGateway(client *redis.Client, length int, ttl time.Duration) *LocalGateway {
	if length <= 0 {
		length = 6
	}
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &LocalGateway{client: client, length: length, ttl: ttl}
}

// generateSecureOTP returns a numeric code of the given length.
func generateSecureOTP(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

func (g *LocalGateway) Send(ctx context.Context, req SendRequest) (string, error) {
	if req.OrderID == "" {
		return "", &GatewayError{Op: "send", Message: "orderId is required"}
	}
	if err := g.issue(ctx, req.OrderID, localChallenge{PhoneNumber: req.PhoneNumber, Email: req.Email}); err != nil {
		return "", &GatewayError{Op: "send", Message: "failed to send OTP", Err: err}
	}
	return req.OrderID, nil
}

func (g *LocalGateway) Resend(ctx context.Context, orderID string) (string, error) {
	ch, err := g.load(ctx, orderID)
	if err != nil {
		return "", &GatewayError{Op: "resend", Message: "order not found or expired", Err: err}
	}
	if err := g.issue(ctx, orderID, *ch); err != nil {
		return "", &GatewayError{Op: "resend", Message: "failed to resend OTP", Err: err}
	}
	return orderID, nil
}

func (g *LocalGateway) Verify(ctx context.Context, req VerifyRequest) error {
	ch, err := g.load(ctx, req.OrderID)
	if err != nil {
		return &GatewayError{Op: "verify", Message: "OTP not found or expired", Err: err}
	}
	if ch.Code != req.OTP || ch.PhoneNumber != req.PhoneNumber {
		return &GatewayError{Op: "verify", Message: "OTP does not match"}
	}
	// Delete the OTP after successful verification.
	if err := g.client.Del(ctx, localOTPPrefix+req.OrderID).Err(); err != nil {
		utils.GetLogger().Error("Failed to delete OTP after verification", zap.Error(err))
	}
	return nil
}

func (g *LocalGateway) issue(ctx context.Context, orderID string, ch localChallenge) error {
	code, err := generateSecureOTP(g.length)
	if err != nil {
		return err
	}
	ch.Code = code
	data, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("failed to marshal OTP challenge: %w", err)
	}
	if err := g.client.Set(ctx, localOTPPrefix+orderID, data, g.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache OTP: %w", err)
	}
	utils.GetLogger().Sugar().Infof("Sending OTP %s to phone %s (order %s, expires in %v)", code, ch.PhoneNumber, orderID, g.ttl)
	return nil
}

func (g *LocalGateway) load(ctx context.Context, orderID string) (*localChallenge, error) {
	data, err := g.client.Get(ctx, localOTPPrefix+orderID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("order %s not found", orderID)
		}
		return nil, fmt.Errorf("failed to retrieve OTP: %w", err)
	}
	var ch localChallenge
	if err := json.Unmarshal([]byte(data), &ch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal OTP challenge: %w", err)
	}
	return &ch, nil
}
