package otp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SendRequest describes one OTP challenge to deliver.
type SendRequest struct {
	PhoneNumber string
	Email       string
	Channel     string
	Hash        string
	OrderID     string
}

// VerifyRequest is a submitted code for an existing order.
type VerifyRequest struct {
	PhoneNumber string
	Email       string
	OrderID     string
	OTP         string
}

// Gateway delivers and checks one-time passwords. Orders live on the
// gateway side; callers only keep the order id.
type Gateway interface {
	// Send starts a challenge and returns the order id the gateway accepted.
	Send(ctx context.Context, req SendRequest) (string, error)
	// Resend re-delivers the code of an existing order.
	Resend(ctx context.Context, orderID string) (string, error)
	// Verify returns nil only when the gateway confirms the code.
	Verify(ctx context.Context, req VerifyRequest) error
}

// GatewayError carries the gateway's own message so it can be shown verbatim.
type GatewayError struct {
	Op      string
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("otp %s failed: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("otp %s failed: %s", e.Op, e.Message)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// NewOrderID returns a fresh order id of the form OTPID-<unix-millis>-<random>.
func NewOrderID() string {
	return fmt.Sprintf("OTPID-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}
