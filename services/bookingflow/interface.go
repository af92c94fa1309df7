// File: services/bookingflow/interface.go
package bookingflow

import (
	"context"

	"transway/models"
	"transway/services/location"
	"transway/session"

	"go.uber.org/zap"
)

// Leg identifies one end of the trip.
type Leg string

const (
	LegPickup Leg = "pickup"
	LegDrop   Leg = "drop"
)

// BookingFlowService drives a shipper's booking draft from creation through
// vendor discovery, pricing and submission.
type BookingFlowService interface {
	StartFlow(ctx context.Context, userID, clientIP string, prefillBookingID *int) (*models.BookingDraft, *models.BookingFormData, error)
	GetDraft(ctx context.Context, userID, draftID string) (*models.BookingDraft, error)
	UpdateDraft(ctx context.Context, userID, draftID string, update *models.DraftUpdate) (*models.BookingDraft, error)
	SetPincode(ctx context.Context, userID, draftID string, leg Leg, raw string) (*models.BookingDraft, error)
	ClearPrefill(ctx context.Context, userID, draftID, clientIP string) (*models.BookingDraft, error)
	FindVendors(ctx context.Context, userID, draftID string) (*models.BookingDraft, error)
	CalculatePrice(ctx context.Context, userID, draftID string, vendorID int) (*models.BookingDraft, error)
	Submit(ctx context.Context, userID, draftID string) (string, error)
	CancelFlow(ctx context.Context, userID, draftID string) error
}

// UpstreamAPI is the slice of the marketplace API the booking flow consumes.
type UpstreamAPI interface {
	FormData(ctx context.Context, token string) (*models.BookingFormData, error)
	PincodeLocation(ctx context.Context, token, pincode string) (*models.PincodeArea, error)
	BookingLocation(ctx context.Context, token string, bookingID int, leg string) (*models.LocationRecord, error)
	AvailableVendors(ctx context.Context, token string, req models.VendorSearch) ([]models.VendorCandidate, error)
	CalculateVendorPrice(ctx context.Context, token string, req models.PriceRequest) (*models.PriceQuote, error)
	CreateBooking(ctx context.Context, token string, sub models.BookingSubmission) (string, error)
}

// DefaultBookingFlowService implements BookingFlowService.
type DefaultBookingFlowService struct {
	Upstream UpstreamAPI
	Drafts   DraftStore
	Sessions session.TokenStore
	Geo      location.Geolocator
	Logger   *zap.Logger

	locks draftLocks
}
