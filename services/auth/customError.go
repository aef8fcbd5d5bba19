package auth

import "errors"

var (
	ErrDuplicateAccount   = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAdmin           = errors.New("not authorized as an admin")
	ErrAccountNotFound    = errors.New("user not found")
	ErrAdminsExist        = errors.New("admin users already exist")

	ErrOTPDeliveryFailed = errors.New("failed to send OTP")
	ErrOTPInvalid        = errors.New("invalid OTP")
	ErrOTPResendFailed   = errors.New("failed to resend OTP")
)

// OTPError reports a gateway outcome. Kind is one of the ErrOTP* sentinels and
// Reason is the gateway's own message.
type OTPError struct {
	Kind   error
	Reason string
	Err    error
}

func (e *OTPError) Error() string {
	if e.Reason == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Reason
}

func (e *OTPError) Is(target error) bool { return target == e.Kind }

func (e *OTPError) Unwrap() error { return e.Err }

// VerificationRequiredError signals that the credentials were valid but the
// account is unverified; a new OTP order has been started.
type VerificationRequiredError struct {
	AccountID string
	OrderID   string
}

func (e VerificationRequiredError) Error() string {
	return "account not verified; OTP sent, orderId: " + e.OrderID
}
