// File: services/auth/service.go
package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"transway/models"
	"transway/session"
	"transway/utils"

	"go.uber.org/zap"
)

// token resolves the upstream bearer token for a signed-in user.
func (svc *DefaultAuthService) token(ctx context.Context, userID string) (*session.Session, error) {
	return svc.Sessions.Get(ctx, userID)
}

// SendOTP asks the marketplace to text a one-time code to the phone number.
func (svc *DefaultAuthService) SendOTP(ctx context.Context, phone string) (string, error) {
	message, err := svc.Upstream.SendOTP(ctx, phone)
	if err != nil {
		return "", err
	}
	if message == "" {
		message = "OTP sent"
	}
	return message, nil
}

// VerifyOTP exchanges the code for an upstream access token, stores the
// session and mints the gateway token the mobile client will present.
func (svc *DefaultAuthService) VerifyOTP(ctx context.Context, phone, otp string) (*Credentials, error) {
	result, err := svc.Upstream.VerifyOTP(ctx, phone, otp)
	if err != nil {
		return nil, err
	}
	if result.AccessToken == "" {
		return nil, fmt.Errorf("verify-otp response carried no access token")
	}

	userID := strconv.Itoa(result.User.ID)
	sess := session.Session{
		UserID:      userID,
		PhoneNumber: phone,
		AccessToken: result.AccessToken,
		CreatedAt:   time.Now(),
	}
	if err := svc.Sessions.Set(ctx, userID, sess); err != nil {
		return nil, err
	}

	sessionToken, err := utils.GenerateSessionToken(userID, phone, svc.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	status, err := svc.Upstream.CheckUserStatus(ctx, result.AccessToken, phone)
	if err != nil {
		// Status is advisory; sign-in still succeeds without it.
		svc.Logger.Warn("Failed to check user status after sign-in",
			zap.String("userId", userID), zap.Error(err))
		status = &models.UserStatus{}
	}

	svc.Logger.Info("User signed in", zap.String("userId", userID))
	return &Credentials{
		SessionToken: sessionToken,
		User:         result.User,
		IsCompleted:  status.IsCompleted,
	}, nil
}

// CheckStatus reports whether the signed-in shipper finished registration.
func (svc *DefaultAuthService) CheckStatus(ctx context.Context, userID string) (*models.UserStatus, error) {
	sess, err := svc.token(ctx, userID)
	if err != nil {
		return nil, err
	}
	return svc.Upstream.CheckUserStatus(ctx, sess.AccessToken, sess.PhoneNumber)
}

// CompleteRegistration submits the shipper profile.
func (svc *DefaultAuthService) CompleteRegistration(ctx context.Context, userID string, in models.RegistrationInput) (string, error) {
	sess, err := svc.token(ctx, userID)
	if err != nil {
		return "", err
	}
	return svc.Upstream.CompleteRegistration(ctx, sess.AccessToken, in)
}

// AadhaarInitialize starts the hosted identity check.
func (svc *DefaultAuthService) AadhaarInitialize(ctx context.Context, userID, redirectURL string) (*models.AadhaarInit, error) {
	sess, err := svc.token(ctx, userID)
	if err != nil {
		return nil, err
	}
	return svc.Upstream.AadhaarInitialize(ctx, sess.AccessToken, redirectURL)
}

// AadhaarVerify fetches the verified identity record for a completed check.
func (svc *DefaultAuthService) AadhaarVerify(ctx context.Context, userID, clientID string) (*models.AadhaarData, error) {
	sess, err := svc.token(ctx, userID)
	if err != nil {
		return nil, err
	}
	return svc.Upstream.AadhaarVerify(ctx, sess.AccessToken, clientID)
}

// VerifyBankAccount runs the payout account check.
func (svc *DefaultAuthService) VerifyBankAccount(ctx context.Context, userID string, acc models.BankAccount) (string, error) {
	sess, err := svc.token(ctx, userID)
	if err != nil {
		return "", err
	}
	return svc.Upstream.VerifyBankAccount(ctx, sess.AccessToken, acc)
}

// UpdateReferral records a referral code against the shipper.
func (svc *DefaultAuthService) UpdateReferral(ctx context.Context, userID, code string) (string, error) {
	sess, err := svc.token(ctx, userID)
	if err != nil {
		return "", err
	}
	return svc.Upstream.UpdateReferral(ctx, sess.AccessToken, code)
}

// SignOut drops the stored session. The gateway token becomes useless once the
// session it references is gone.
func (svc *DefaultAuthService) SignOut(ctx context.Context, userID string) error {
	if err := svc.Sessions.Remove(ctx, userID); err != nil {
		return err
	}
	svc.Logger.Info("User signed out", zap.String("userId", userID))
	return nil
}
