package handlers

import (
	"errors"
	"net/http"

	"adminpanel/middleware"
	"adminpanel/models"
	"adminpanel/services/auth"
	"adminpanel/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves /api/auth.
type AuthHandler struct {
	Service auth.AuthService
}

func NewAuthHandler(svc auth.AuthService) *AuthHandler {
	return &AuthHandler{Service: svc}
}

type credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignupHandler handles POST /api/auth/signup.
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	var req models.UserBasicRegistrationData
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	result, err := h.Service.Signup(c.Request.Context(), req)
	if err != nil {
		h.authError(c, "Signup", err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "OTP sent successfully", result)
}

// LoginHandler handles POST /api/auth/login. Unverified accounts get a 403
// carrying the new order id.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	resp, err := h.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var pending auth.VerificationRequiredError
		if errors.As(err, &pending) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Account not verified. OTP has been sent to your mobile number.",
				"data": gin.H{
					"id":                   pending.AccountID,
					"orderId":              pending.OrderID,
					"requiresVerification": true,
				},
			})
			return
		}
		h.authError(c, "Login", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", resp)
}

// AdminLoginHandler handles POST /api/auth/admin-login.
func (h *AuthHandler) AdminLoginHandler(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	resp, err := h.Service.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.authError(c, "Admin login", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", resp)
}

// ProfileHandler handles GET /api/auth/profile.
func (h *AuthHandler) ProfileHandler(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "Not authorized, no token", "")
		return
	}

	profile, err := h.Service.Profile(c.Request.Context(), identity)
	if err != nil {
		h.authError(c, "Get profile", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", profile)
}

// ResendOTPHandler handles POST /api/auth/resend-otp.
func (h *AuthHandler) ResendOTPHandler(c *gin.Context) {
	var req struct {
		OrderID string `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	orderID, err := h.Service.ResendOTP(c.Request.Context(), req.OrderID)
	if err != nil {
		h.authError(c, "Resend OTP", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "OTP resent successfully", gin.H{"orderId": orderID})
}

// VerifyOTPHandler handles POST /api/auth/verify-otp.
func (h *AuthHandler) VerifyOTPHandler(c *gin.Context) {
	var req auth.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}

	result, err := h.Service.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		h.authError(c, "Verify OTP", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "OTP verified successfully", result)
}

// authError maps auth service errors onto the response envelope.
func (h *AuthHandler) authError(c *gin.Context, op string, err error) {
	var otpErr *auth.OTPError
	switch {
	case errors.As(err, &otpErr):
		message := otpErr.Kind.Error()
		switch {
		case errors.Is(otpErr.Kind, auth.ErrOTPDeliveryFailed):
			message = "Failed to send OTP"
		case errors.Is(otpErr.Kind, auth.ErrOTPInvalid):
			message = "Invalid OTP"
		case errors.Is(otpErr.Kind, auth.ErrOTPResendFailed):
			message = "Failed to resend OTP"
		}
		utils.JSONError(c, http.StatusBadRequest, message, otpErr.Reason)
	case errors.Is(err, auth.ErrDuplicateAccount):
		utils.JSONError(c, http.StatusBadRequest, "User already exists", "")
	case errors.Is(err, auth.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
	case errors.Is(err, auth.ErrNotAdmin):
		utils.JSONError(c, http.StatusForbidden, "Not authorized as an admin", "")
	case errors.Is(err, auth.ErrAccountNotFound):
		utils.JSONError(c, http.StatusNotFound, "User not found", "")
	default:
		serverError(c, op, err)
	}
}
