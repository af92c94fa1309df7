// File: services/bookingflow/service.go
package bookingflow

import (
	"context"
	"strconv"
	"sync"
	"time"

	"transway/models"
	"transway/services/location"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const submittedMessage = "Booking request sent"

// draftLocks serializes mutations per draft. The lock is NOT held across
// upstream calls for discovery and pricing; those rely on the draft sequence
// number to discard stale responses instead.
type draftLocks struct {
	m sync.Map
}

func (l *draftLocks) lock(draftID string) func() {
	mu, _ := l.m.LoadOrStore(draftID, &sync.Mutex{})
	mutex := mu.(*sync.Mutex)
	mutex.Lock()
	return mutex.Unlock
}

// token resolves the upstream bearer token for a user. Authenticated steps
// fail closed before any upstream I/O when no session exists.
func (svc *DefaultBookingFlowService) token(ctx context.Context, userID string) (string, error) {
	sess, err := svc.Sessions.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return sess.AccessToken, nil
}

// loadOwned fetches a draft and verifies ownership. A draft belonging to
// another user is indistinguishable from a missing one.
func (svc *DefaultBookingFlowService) loadOwned(ctx context.Context, userID, draftID string) (*models.BookingDraft, error) {
	draft, err := svc.Drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.UserID != userID {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

// StartFlow creates a fresh draft, fetches the booking form metadata, and
// seeds the route: from a prior booking when prefillBookingID is given,
// otherwise from the client's geolocation with hardcoded fallbacks.
func (svc *DefaultBookingFlowService) StartFlow(ctx context.Context, userID, clientIP string, prefillBookingID *int) (*models.BookingDraft, *models.BookingFormData, error) {
	token, err := svc.token(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	form, err := svc.Upstream.FormData(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	draft := &models.BookingDraft{
		DraftID:     uuid.New().String(),
		UserID:      userID,
		State:       models.FlowIdle,
		PickupPoint: models.DefaultPickupPoint,
		DropPoint:   models.DefaultDropPoint,
		CreatedAt:   time.Now(),
	}

	if prefillBookingID != nil {
		pickup, err := svc.Upstream.BookingLocation(ctx, token, *prefillBookingID, string(LegPickup))
		if err != nil {
			return nil, nil, err
		}
		drop, err := svc.Upstream.BookingLocation(ctx, token, *prefillBookingID, string(LegDrop))
		if err != nil {
			return nil, nil, err
		}
		draft.PickupAddress = pickup.Address
		draft.PickupPoint = models.GeoPoint{Latitude: pickup.Latitude, Longitude: pickup.Longitude}
		draft.DropAddress = drop.Address
		draft.DropPoint = models.GeoPoint{Latitude: drop.Latitude, Longitude: drop.Longitude}
		draft.Prefilled = true
	} else if point, err := svc.Geo.CurrentPosition(ctx, clientIP); err == nil {
		draft.PickupPoint = point
	} else {
		svc.Logger.Debug("Geolocation unavailable; using default pickup point",
			zap.String("ip", clientIP), zap.Error(err))
	}

	if err := svc.Drafts.Save(ctx, draft); err != nil {
		return nil, nil, err
	}
	svc.Logger.Info("Booking flow started",
		zap.String("draftId", draft.DraftID),
		zap.String("userId", userID),
		zap.Bool("prefilled", draft.Prefilled))
	return draft, form, nil
}

func (svc *DefaultBookingFlowService) GetDraft(ctx context.Context, userID, draftID string) (*models.BookingDraft, error) {
	return svc.loadOwned(ctx, userID, draftID)
}

// UpdateDraft commits the set fields of the update and runs downstream
// invalidation when a discovery input changed.
func (svc *DefaultBookingFlowService) UpdateDraft(ctx context.Context, userID, draftID string, update *models.DraftUpdate) (*models.BookingDraft, error) {
	unlock := svc.locks.lock(draftID)
	defer unlock()

	draft, err := svc.loadOwned(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}
	if err := applyUpdate(draft, update, time.Now()); err != nil {
		return nil, err
	}
	if err := svc.Drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SetPincode records a pincode for one leg and, once it reaches six digits,
// resolves its locality list. Shorter input clears any previous list and the
// leg's address without an upstream call.
func (svc *DefaultBookingFlowService) SetPincode(ctx context.Context, userID, draftID string, leg Leg, raw string) (*models.BookingDraft, error) {
	unlock := svc.locks.lock(draftID)

	draft, err := svc.loadOwned(ctx, userID, draftID)
	if err != nil {
		unlock()
		return nil, err
	}

	pincode := location.NormalizePincode(raw)

	// Trailing extra digits normalize to the value already looked up; a
	// resolved leg needs no second lookup for the same pincode.
	if location.IsCompletePincode(pincode) &&
		legPincode(draft, leg) == pincode && legLocalities(draft, leg) != nil {
		unlock()
		return draft, nil
	}

	setLegPincode(draft, leg, pincode)

	if !location.IsCompletePincode(pincode) {
		setLegLocalities(draft, leg, nil)
		setLegAddress(draft, leg, "")
		err := svc.Drafts.Save(ctx, draft)
		unlock()
		return draft, err
	}

	if err := svc.Drafts.Save(ctx, draft); err != nil {
		unlock()
		return nil, err
	}
	unlock()

	token, err := svc.token(ctx, userID)
	if err != nil {
		return nil, err
	}
	area, lookupErr := svc.Upstream.PincodeLocation(ctx, token, pincode)

	unlock = svc.locks.lock(draftID)
	defer unlock()

	draft, err = svc.loadOwned(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}
	// The pincode moved on while we were looking this one up.
	if legPincode(draft, leg) != pincode {
		return draft, nil
	}

	if lookupErr != nil {
		setLegLocalities(draft, leg, nil)
		if err := svc.Drafts.Save(ctx, draft); err != nil {
			return nil, err
		}
		return nil, lookupErr
	}

	localities := make([]models.Locality, 0, len(area.AllPostOffices))
	for _, office := range area.AllPostOffices {
		label := office.Name + ", " + area.District + ", " + area.State
		localities = append(localities, models.Locality{Label: label, Value: label})
	}
	setLegLocalities(draft, leg, localities)
	if err := svc.Drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// ClearPrefill discards addresses carried over from a prior booking and
// returns the draft to manual route entry, reseeding the pickup map from the
// client's geolocation.
func (svc *DefaultBookingFlowService) ClearPrefill(ctx context.Context, userID, draftID, clientIP string) (*models.BookingDraft, error) {
	unlock := svc.locks.lock(draftID)
	defer unlock()

	draft, err := svc.loadOwned(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}

	draft.PickupAddress = ""
	draft.DropAddress = ""
	draft.PickupPoint = models.DefaultPickupPoint
	draft.DropPoint = models.DefaultDropPoint
	draft.PickupPincode = ""
	draft.DropPincode = ""
	draft.PickupLocalities = nil
	draft.DropLocalities = nil
	draft.Prefilled = false
	invalidateDownstream(draft)

	if point, err := svc.Geo.CurrentPosition(ctx, clientIP); err == nil {
		draft.PickupPoint = point
	}

	if err := svc.Drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// FindVendors runs vendor discovery for the draft's current pickup, vehicle
// and weight. The previous list is cleared before the search, so the caller
// always sees results from the current inputs or none at all.
func (svc *DefaultBookingFlowService) FindVendors(ctx context.Context, userID, draftID string) (*models.BookingDraft, error) {
	unlock := svc.locks.lock(draftID)

	draft, err := svc.loadOwned(ctx, userID, draftID)
	if err != nil {
		unlock()
		return nil, err
	}

	// A discovery for this draft is already in flight.
	if draft.State == models.FlowDiscovering {
		unlock()
		return draft, nil
	}

	if draft.VehicleModelID == nil {
		unlock()
		return nil, newValidationError("vehicle_model_id", "Please select a vehicle type")
	}
	weight, err := strconv.ParseFloat(draft.MaterialWeight, 64)
	if err != nil || weight <= 0 {
		unlock()
		return nil, newValidationError("material_weight", "Please enter a valid load weight")
	}

	token, err := svc.token(ctx, userID)
	if err != nil {
		unlock()
		return nil, err
	}

	invalidateDownstream(draft)
	draft.State = models.FlowDiscovering
	fence := draft.Seq
	search := models.VendorSearch{
		PickupLatitude:  draft.PickupPoint.Latitude,
		PickupLongitude: draft.PickupPoint.Longitude,
		VehicleModelID:  *draft.VehicleModelID,
		MaterialWeight:  weight,
	}
	if err := svc.Drafts.Save(ctx, draft); err != nil {
		unlock()
		return nil, err
	}
	unlock()

	vendors, searchErr := svc.Upstream.AvailableVendors(ctx, token, search)

	unlock = svc.locks.lock(draftID)
	defer unlock()

	draft, err = svc.loadOwned(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}
	// An invalidating edit superseded this search while it ran.
	if draft.Seq != fence || draft.State != models.FlowDiscovering {
		svc.Logger.Debug("Discarding stale vendor discovery result",
			zap.String("draftId", draftID), zap.Uint64("fence", fence), zap.Uint64("seq", draft.Seq))
		return draft, nil
	}

	if searchErr != nil {
		draft.Vendors = nil
		draft.State = models.FlowIdle
		if err := svc.Drafts.Save(ctx, draft); err != nil {
			return nil, err
		}
		svc.Logger.Error("Vendor discovery failed",
			zap.String("draftId", draftID), zap.Error(searchErr))
		return nil, searchErr
	}

	draft.Vendors = vendors
	draft.State = models.FlowVendorsFound
	if err := svc.Drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	svc.Logger.Info("Vendor discovery completed",
		zap.String("draftId", draftID), zap.Int("vendors", len(vendors)))
	return draft, nil
}

// CalculatePrice selects a vendor from the current candidate list and fetches
// their quote. When selections race, the last one made wins: earlier responses
// landing afterwards are discarded.
func (svc *DefaultBookingFlowService) CalculatePrice(ctx context.Context, userID, draftID string, vendorID int) (*models.BookingDraft, error) {
	unlock := svc.locks.lock(draftID)

	draft, err := svc.loadOwned(ctx, userID, draftID)
	if err != nil {
		unlock()
		return nil, err
	}

	found := false
	for _, v := range draft.Vendors {
		if v.VendorID == vendorID {
			found = true
			break
		}
	}
	if !found {
		unlock()
		return nil, newValidationError("vendor_id", "Selected vendor is not in the current search results")
	}

	token, err := svc.token(ctx, userID)
	if err != nil {
		unlock()
		return nil, err
	}

	weight, _ := strconv.ParseFloat(draft.MaterialWeight, 64)

	draft.SelectedVendorID = &vendorID
	draft.Quote = nil
	draft.VendorID = nil
	draft.AdjustedPrice = nil
	draft.EstimatedPrice = 0
	draft.State = models.FlowCalculating
	draft.Seq++
	fence := draft.Seq
	request := models.PriceRequest{
		VendorID:        vendorID,
		PickupLatitude:  draft.PickupPoint.Latitude,
		PickupLongitude: draft.PickupPoint.Longitude,
		DropLatitude:    draft.DropPoint.Latitude,
		DropLongitude:   draft.DropPoint.Longitude,
		MaterialID:      draft.MaterialID,
		MaterialWeight:  weight,
	}
	if err := svc.Drafts.Save(ctx, draft); err != nil {
		unlock()
		return nil, err
	}
	unlock()

	quote, quoteErr := svc.Upstream.CalculateVendorPrice(ctx, token, request)

	unlock = svc.locks.lock(draftID)
	defer unlock()

	draft, err = svc.loadOwned(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}
	// A newer selection or an invalidating edit superseded this calculation.
	if draft.Seq != fence || draft.SelectedVendorID == nil || *draft.SelectedVendorID != vendorID {
		svc.Logger.Debug("Discarding stale price quote",
			zap.String("draftId", draftID), zap.Int("vendorId", vendorID))
		return draft, nil
	}

	if quoteErr != nil {
		draft.SelectedVendorID = nil
		draft.State = models.FlowVendorsFound
		if err := svc.Drafts.Save(ctx, draft); err != nil {
			return nil, err
		}
		svc.Logger.Error("Price calculation failed",
			zap.String("draftId", draftID),
			zap.Int("vendorId", vendorID),
			zap.Any("request", request),
			zap.Error(quoteErr))
		return nil, quoteErr
	}

	if quote.Vendor.ID != vendorID {
		draft.SelectedVendorID = nil
		draft.State = models.FlowVendorsFound
		if err := svc.Drafts.Save(ctx, draft); err != nil {
			return nil, err
		}
		svc.Logger.Error("Price quote names a different vendor than requested",
			zap.String("draftId", draftID),
			zap.Int("requestedVendorId", vendorID),
			zap.Int("quotedVendorId", quote.Vendor.ID))
		return nil, &ContractError{
			Code:    "vendorMismatch",
			Message: "price quote does not match the selected vendor",
		}
	}

	draft.Quote = quote
	draft.VendorID = &vendorID
	if quote.TripDetails.DistanceKm > 0 {
		draft.DistanceKm = quote.TripDetails.DistanceKm
	}
	draft.EstimatedPrice = quote.Pricing.TotalPrice
	price := quote.Pricing.TotalPrice
	draft.AdjustedPrice = &price
	draft.State = models.FlowPriceReady
	if err := svc.Drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	svc.Logger.Info("Price quote committed",
		zap.String("draftId", draftID),
		zap.Int("vendorId", vendorID),
		zap.Float64("totalPrice", quote.Pricing.TotalPrice))
	return draft, nil
}

// Submit validates the completed draft, sends the booking upstream and
// discards the draft on success. The lock is held across the upstream call so
// a draft can never be submitted twice.
func (svc *DefaultBookingFlowService) Submit(ctx context.Context, userID, draftID string) (string, error) {
	unlock := svc.locks.lock(draftID)
	defer unlock()

	draft, err := svc.loadOwned(ctx, userID, draftID)
	if err != nil {
		return "", err
	}

	if !draft.PriceCalculated() || draft.VendorID == nil {
		return "", newValidationError("vendor_id", "Please select a vendor and calculate the price first")
	}
	if draft.PaymentMethod == "" {
		return "", newValidationError("payment_method", "Please choose a payment method")
	}
	if draft.PickupAddress == "" {
		return "", newValidationError("pickup_address", "Please enter a pickup address")
	}
	if draft.DropAddress == "" {
		return "", newValidationError("drop_address", "Please enter a drop address")
	}

	token, err := svc.token(ctx, userID)
	if err != nil {
		return "", err
	}

	weight, _ := strconv.ParseFloat(draft.MaterialWeight, 64)
	submission := models.BookingSubmission{
		VendorID:            *draft.VendorID,
		PickupAddress:       draft.PickupAddress,
		PickupLatitude:      draft.PickupPoint.Latitude,
		PickupLongitude:     draft.PickupPoint.Longitude,
		DropAddress:         draft.DropAddress,
		DropLatitude:        draft.DropPoint.Latitude,
		DropLongitude:       draft.DropPoint.Longitude,
		MaterialID:          draft.MaterialID,
		MaterialWeight:      weight,
		DistanceKm:          draft.DistanceKm,
		EstimatedPrice:      draft.EstimatedPrice,
		AdjustedPrice:       draft.FinalPrice(),
		PaymentMethod:       draft.PaymentMethod,
		SpecialInstructions: draft.SpecialInstructions,
	}
	if draft.VehicleModelID != nil {
		submission.VehicleModelID = *draft.VehicleModelID
	}
	if !draft.PickupDateTime.IsZero() {
		submission.PickupDatetime = draft.PickupDateTime.Format("2006-01-02 15:04:05")
	}

	draft.State = models.FlowSubmitting
	if err := svc.Drafts.Save(ctx, draft); err != nil {
		return "", err
	}

	message, err := svc.Upstream.CreateBooking(ctx, token, submission)
	if err != nil {
		draft.State = models.FlowPriceReady
		if saveErr := svc.Drafts.Save(ctx, draft); saveErr != nil {
			svc.Logger.Error("Failed to restore draft after submission failure",
				zap.String("draftId", draftID), zap.Error(saveErr))
		}
		svc.Logger.Error("Booking submission failed",
			zap.String("draftId", draftID), zap.Error(err))
		return "", err
	}

	if err := svc.Drafts.Delete(ctx, draftID); err != nil {
		svc.Logger.Warn("Failed to delete draft after submission",
			zap.String("draftId", draftID), zap.Error(err))
	}
	if message == "" {
		message = submittedMessage
	}
	svc.Logger.Info("Booking submitted",
		zap.String("draftId", draftID), zap.String("userId", userID))
	return message, nil
}

// CancelFlow discards the draft.
func (svc *DefaultBookingFlowService) CancelFlow(ctx context.Context, userID, draftID string) error {
	unlock := svc.locks.lock(draftID)
	defer unlock()

	if _, err := svc.loadOwned(ctx, userID, draftID); err != nil {
		return err
	}
	return svc.Drafts.Delete(ctx, draftID)
}

// Leg accessors. The draft stores both legs flat; these keep SetPincode
// generic over which one it touches.

func legPincode(d *models.BookingDraft, leg Leg) string {
	if leg == LegDrop {
		return d.DropPincode
	}
	return d.PickupPincode
}

func setLegPincode(d *models.BookingDraft, leg Leg, pincode string) {
	if leg == LegDrop {
		d.DropPincode = pincode
		return
	}
	d.PickupPincode = pincode
}

func legLocalities(d *models.BookingDraft, leg Leg) []models.Locality {
	if leg == LegDrop {
		return d.DropLocalities
	}
	return d.PickupLocalities
}

func setLegLocalities(d *models.BookingDraft, leg Leg, localities []models.Locality) {
	if leg == LegDrop {
		d.DropLocalities = localities
		return
	}
	d.PickupLocalities = localities
}

func setLegAddress(d *models.BookingDraft, leg Leg, address string) {
	if leg == LegDrop {
		d.DropAddress = address
		return
	}
	d.PickupAddress = address
}
