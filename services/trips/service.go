// File: services/trips/service.go
package trips

import (
	"context"

	"transway/models"
	"transway/session"

	"go.uber.org/zap"
)

// Statuses a trip listing can be filtered by.
var ValidStatuses = map[string]bool{
	"pending":   true,
	"active":    true,
	"completed": true,
	"cancelled": true,
}

// TripService exposes trip history and post-trip reviews.
type TripService interface {
	Summary(ctx context.Context, userID string) (*models.BookingSummary, error)
	List(ctx context.Context, userID, status string) ([]models.Trip, error)
	AddReview(ctx context.Context, userID string, review models.Review) (string, error)
}

// UpstreamAPI is the slice of the marketplace API the trip service consumes.
type UpstreamAPI interface {
	BookingSummary(ctx context.Context, token string) (*models.BookingSummary, error)
	MyBookings(ctx context.Context, token, status string) ([]models.Trip, error)
	AddReview(ctx context.Context, token string, review models.Review) (string, error)
}

// DefaultTripService implements TripService.
type DefaultTripService struct {
	Upstream UpstreamAPI
	Sessions session.TokenStore
	Logger   *zap.Logger
}

func (svc *DefaultTripService) token(ctx context.Context, userID string) (string, error) {
	sess, err := svc.Sessions.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return sess.AccessToken, nil
}

// Summary fetches the per-status trip counts for the dashboard.
func (svc *DefaultTripService) Summary(ctx context.Context, userID string) (*models.BookingSummary, error) {
	token, err := svc.token(ctx, userID)
	if err != nil {
		return nil, err
	}
	return svc.Upstream.BookingSummary(ctx, token)
}

// List fetches the shipper's trips for one status.
func (svc *DefaultTripService) List(ctx context.Context, userID, status string) ([]models.Trip, error) {
	token, err := svc.token(ctx, userID)
	if err != nil {
		return nil, err
	}
	return svc.Upstream.MyBookings(ctx, token, status)
}

// AddReview records a post-trip vendor rating.
func (svc *DefaultTripService) AddReview(ctx context.Context, userID string, review models.Review) (string, error) {
	token, err := svc.token(ctx, userID)
	if err != nil {
		return "", err
	}
	message, err := svc.Upstream.AddReview(ctx, token, review)
	if err != nil {
		return "", err
	}
	svc.Logger.Info("Review recorded",
		zap.String("userId", userID),
		zap.Int("bookingId", review.BookingID),
		zap.Int("rating", review.Rating))
	return message, nil
}
