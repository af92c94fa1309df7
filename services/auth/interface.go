// File: services/auth/interface.go
package auth

import (
	"context"
	"time"

	"transway/models"
	"transway/session"

	"go.uber.org/zap"
)

// Credentials is what VerifyOTP hands the client: a gateway session token plus
// the upstream user record.
type Credentials struct {
	SessionToken string          `json:"session_token"`
	User         models.AuthUser `json:"user"`
	IsCompleted  bool            `json:"is_completed"`
}

// AuthService handles OTP sign-in, registration and identity verification.
type AuthService interface {
	SendOTP(ctx context.Context, phone string) (string, error)
	VerifyOTP(ctx context.Context, phone, otp string) (*Credentials, error)
	CheckStatus(ctx context.Context, userID string) (*models.UserStatus, error)
	CompleteRegistration(ctx context.Context, userID string, in models.RegistrationInput) (string, error)
	AadhaarInitialize(ctx context.Context, userID, redirectURL string) (*models.AadhaarInit, error)
	AadhaarVerify(ctx context.Context, userID, clientID string) (*models.AadhaarData, error)
	VerifyBankAccount(ctx context.Context, userID string, acc models.BankAccount) (string, error)
	UpdateReferral(ctx context.Context, userID, code string) (string, error)
	SignOut(ctx context.Context, userID string) error
}

// UpstreamAPI is the slice of the marketplace API the auth service consumes.
type UpstreamAPI interface {
	SendOTP(ctx context.Context, phone string) (string, error)
	VerifyOTP(ctx context.Context, phone, otp string) (*models.AuthResult, error)
	CheckUserStatus(ctx context.Context, token, phone string) (*models.UserStatus, error)
	CompleteRegistration(ctx context.Context, token string, in models.RegistrationInput) (string, error)
	AadhaarInitialize(ctx context.Context, token, redirectURL string) (*models.AadhaarInit, error)
	AadhaarVerify(ctx context.Context, token, clientID string) (*models.AadhaarData, error)
	VerifyBankAccount(ctx context.Context, token string, acc models.BankAccount) (string, error)
	UpdateReferral(ctx context.Context, token, code string) (string, error)
}

// DefaultAuthService implements AuthService.
type DefaultAuthService struct {
	Upstream   UpstreamAPI
	Sessions   session.TokenStore
	Logger     *zap.Logger
	SessionTTL time.Duration
}
