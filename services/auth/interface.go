package auth

import (
	"context"
	"strings"

	adminRepo "adminpanel/database/repository/admin"
	userRepo "adminpanel/database/repository/user"
	"adminpanel/models"
	"adminpanel/services/otp"
)

// AuthService runs the signup, OTP verification and login flows.
type AuthService interface {
	// Registration
	Signup(ctx context.Context, req models.UserBasicRegistrationData) (*SignupResult, error)
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyResult, error)
	ResendOTP(ctx context.Context, orderID string) (string, error)

	// Authentication
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	AdminLogin(ctx context.Context, email, password string) (*AdminAuthResponse, error)
	Profile(ctx context.Context, identity models.Identity) (*ProfileResponse, error)

	// Admin accounts
	CreateAdmin(ctx context.Context, req models.CreateAdminRequest) (*AdminAuthResponse, error)
	CreateInitialAdmin(ctx context.Context, req models.CreateAdminRequest) (*AdminAuthResponse, error)
}

// TokenIssuer signs session tokens for an account id and role.
type TokenIssuer interface {
	Issue(id, role string) (string, error)
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Users   userRepo.UserRepository
	Admins  adminRepo.AdminRepository
	Gateway otp.Gateway
	Orders  OrderStore
	Tokens  TokenIssuer
}

// VerifyOTPRequest is the payload of /api/auth/verify-otp.
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	OrderID     string `json:"orderId" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
}

// SignupResult identifies the new account and its pending OTP order.
type SignupResult struct {
	ID      string `json:"id"`
	OrderID string `json:"orderId"`
}

// AuthResponse is returned by a successful user login.
type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// VerifyResult is returned once an OTP is confirmed.
type VerifyResult struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Coins int64  `json:"coins"`
	Token string `json:"token"`
}

// AdminAuthResponse is returned by admin login and admin creation.
type AdminAuthResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

type ProfileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Coins int64  `json:"coins"`
}

// NormalizeEmail trims and lower-cases an address; emails are unique case-insensitively.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
