package otp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"adminpanel/utils"

	"go.uber.org/zap"
)

const (
	sendPath   = "/auth/otp/v1/send"
	resendPath = "/auth/otp/v1/resend"
	verifyPath = "/auth/otp/v1/verify"
)

// OTPlessConfig configures the OTPless REST client.
type OTPlessConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	CountryCode  string
	Expiry       int
	OTPLength    int
	Timeout      time.Duration
}

// OTPlessGateway talks to the OTPless OTP API.
type OTPlessGateway struct {
	cfg    OTPlessConfig
	client *http.Client
}

func NewOTPlessGateway(cfg OTPlessConfig) *OTPlessGateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Expiry <= 0 {
		cfg.Expiry = 120
	}
	if cfg.OTPLength <= 0 {
		cfg.OTPLength = 6
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &OTPlessGateway{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

type otplessSendBody struct {
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email,omitempty"`
	Channel     string `json:"channel,omitempty"`
	Hash        string `json:"hash,omitempty"`
	OrderID     string `json:"orderId"`
	Expiry      int    `json:"expiry"`
	OTPLength   int    `json:"otpLength"`
}

type otplessResendBody struct {
	OrderID string `json:"orderId"`
}

type otplessVerifyBody struct {
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber"`
	OrderID     string `json:"orderId"`
	OTP         string `json:"otp"`
}

type otplessResponse struct {
	OrderID       string `json:"orderId"`
	IsOTPVerified bool   `json:"isOTPVerified"`
	Message       string `json:"message"`
	ErrorMessage  string `json:"errorMessage"`
	Reason        string `json:"reason"`
}

func (r otplessResponse) reason() string {
	switch {
	case r.Message != "":
		return r.Message
	case r.Reason != "":
		return r.Reason
	case r.ErrorMessage != "":
		return r.ErrorMessage
	}
	return "unknown gateway error"
}

func (g *OTPlessGateway) phone(number string) string {
	return g.cfg.CountryCode + strings.TrimSpace(number)
}

func (g *OTPlessGateway) Send(ctx context.Context, req SendRequest) (string, error) {
	body := otplessSendBody{
		PhoneNumber: g.phone(req.PhoneNumber),
		Email:       req.Email,
		Channel:     req.Channel,
		Hash:        req.Hash,
		OrderID:     req.OrderID,
		Expiry:      g.cfg.Expiry,
		OTPLength:   g.cfg.OTPLength,
	}
	resp, err := g.post(ctx, "send", sendPath, body)
	if err != nil {
		return "", err
	}
	if resp.OrderID == "" {
		return "", &GatewayError{Op: "send", Message: resp.reason()}
	}
	return resp.OrderID, nil
}

func (g *OTPlessGateway) Resend(ctx context.Context, orderID string) (string, error) {
	resp, err := g.post(ctx, "resend", resendPath, otplessResendBody{OrderID: orderID})
	if err != nil {
		return "", err
	}
	if resp.OrderID == "" {
		return "", &GatewayError{Op: "resend", Message: resp.reason()}
	}
	return resp.OrderID, nil
}

func (g *OTPlessGateway) Verify(ctx context.Context, req VerifyRequest) error {
	body := otplessVerifyBody{
		Email:       req.Email,
		PhoneNumber: g.phone(req.PhoneNumber),
		OrderID:     req.OrderID,
		OTP:         req.OTP,
	}
	resp, err := g.post(ctx, "verify", verifyPath, body)
	if err != nil {
		return err
	}
	if !resp.IsOTPVerified {
		return &GatewayError{Op: "verify", Message: resp.reason()}
	}
	return nil
}

// post sends a JSON request and decodes the OTPless envelope. Non-2xx
// responses become a GatewayError carrying the gateway's message.
func (g *OTPlessGateway) post(ctx context.Context, op, path string, payload interface{}) (*otplessResponse, error) {
	logger := utils.GetLogger()

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, &GatewayError{Op: op, Message: "failed to encode request", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, &GatewayError{Op: op, Message: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("clientId", g.cfg.ClientID)
	req.Header.Set("clientSecret", g.cfg.ClientSecret)

	res, err := g.client.Do(req)
	if err != nil {
		logger.Error("OTPless request failed", zap.String("op", op), zap.Error(err))
		return nil, &GatewayError{Op: op, Message: "gateway unreachable", Err: err}
	}
	defer res.Body.Close()

	var out otplessResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, &GatewayError{Op: op, Message: fmt.Sprintf("unexpected gateway response (status %d)", res.StatusCode), Err: err}
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		logger.Warn("OTPless rejected request", zap.String("op", op), zap.Int("status", res.StatusCode), zap.String("reason", out.reason()))
		return nil, &GatewayError{Op: op, Message: out.reason()}
	}
	logger.Debug("OTPless request succeeded", zap.String("op", op), zap.String("orderId", out.OrderID))
	return &out, nil
}
