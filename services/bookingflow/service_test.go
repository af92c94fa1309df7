package bookingflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"transway/models"
	"transway/session"
	"transway/upstream"

	"go.uber.org/zap"
)

// memStore is an in-memory DraftStore.
type memStore struct {
	mu     sync.Mutex
	drafts map[string]models.BookingDraft
}

func newMemStore() *memStore {
	return &memStore{drafts: make(map[string]models.BookingDraft)}
}

func (s *memStore) Get(_ context.Context, draftID string) (*models.BookingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[draftID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	copy := d
	return &copy, nil
}

func (s *memStore) Save(_ context.Context, draft *models.BookingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.DraftID] = *draft
	return nil
}

func (s *memStore) Delete(_ context.Context, draftID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, draftID)
	return nil
}

// memSessions is an in-memory TokenStore with one signed-in user.
type memSessions struct {
	userID string
}

func (s *memSessions) Get(_ context.Context, userID string) (*session.Session, error) {
	if userID != s.userID {
		return nil, &session.AuthenticationError{Reason: "no active session"}
	}
	return &session.Session{UserID: userID, AccessToken: "tok-" + userID}, nil
}

func (s *memSessions) Set(_ context.Context, _ string, _ session.Session) error { return nil }
func (s *memSessions) Remove(_ context.Context, _ string) error                 { return nil }

// fakeUpstream implements UpstreamAPI with overridable behavior per call.
type fakeUpstream struct {
	mu sync.Mutex

	vendorCalls int
	priceCalls  int
	createCalls int

	lastSubmission models.BookingSubmission

	formDataFn func(ctx context.Context) (*models.BookingFormData, error)
	pincodeFn  func(ctx context.Context, pincode string) (*models.PincodeArea, error)
	locationFn func(ctx context.Context, bookingID int, leg string) (*models.LocationRecord, error)
	vendorsFn  func(ctx context.Context, req models.VendorSearch) ([]models.VendorCandidate, error)
	priceFn    func(ctx context.Context, req models.PriceRequest) (*models.PriceQuote, error)
	createFn   func(ctx context.Context, sub models.BookingSubmission) (string, error)
}

func (f *fakeUpstream) FormData(ctx context.Context, _ string) (*models.BookingFormData, error) {
	if f.formDataFn != nil {
		return f.formDataFn(ctx)
	}
	return &models.BookingFormData{
		Materials:     []models.Material{{ID: 1, Name: "Cement"}},
		VehicleModels: []models.VehicleModel{{ID: 3, ModelName: "Tata 407"}},
	}, nil
}

func (f *fakeUpstream) PincodeLocation(ctx context.Context, _ string, pincode string) (*models.PincodeArea, error) {
	if f.pincodeFn != nil {
		return f.pincodeFn(ctx, pincode)
	}
	return &models.PincodeArea{
		AllPostOffices: []models.PostOffice{{Name: "Connaught Place"}},
		District:       "New Delhi",
		State:          "Delhi",
	}, nil
}

func (f *fakeUpstream) BookingLocation(ctx context.Context, _ string, bookingID int, leg string) (*models.LocationRecord, error) {
	if f.locationFn != nil {
		return f.locationFn(ctx, bookingID, leg)
	}
	return &models.LocationRecord{Address: leg + " address", Latitude: 10, Longitude: 20}, nil
}

func (f *fakeUpstream) AvailableVendors(ctx context.Context, _ string, req models.VendorSearch) ([]models.VendorCandidate, error) {
	f.mu.Lock()
	f.vendorCalls++
	f.mu.Unlock()
	if f.vendorsFn != nil {
		return f.vendorsFn(ctx, req)
	}
	return []models.VendorCandidate{{VendorID: 7, VendorName: "Sharma Transports"}}, nil
}

func (f *fakeUpstream) CalculateVendorPrice(ctx context.Context, _ string, req models.PriceRequest) (*models.PriceQuote, error) {
	f.mu.Lock()
	f.priceCalls++
	f.mu.Unlock()
	if f.priceFn != nil {
		return f.priceFn(ctx, req)
	}
	return &models.PriceQuote{
		Vendor:      models.QuoteVendor{ID: req.VendorID, Name: "Sharma Transports"},
		TripDetails: models.TripDetails{DistanceKm: 42.5},
		Pricing:     models.QuotePricing{TotalPrice: 2500, IsEditable: true},
	}, nil
}

func (f *fakeUpstream) CreateBooking(ctx context.Context, _ string, sub models.BookingSubmission) (string, error) {
	f.mu.Lock()
	f.createCalls++
	f.lastSubmission = sub
	f.mu.Unlock()
	if f.createFn != nil {
		return f.createFn(ctx, sub)
	}
	return "Booking request sent", nil
}

// fakeGeo is a stubbed Geolocator.
type fakeGeo struct {
	point models.GeoPoint
	err   error
}

func (g *fakeGeo) CurrentPosition(_ context.Context, _ string) (models.GeoPoint, error) {
	return g.point, g.err
}

func newTestService(up *fakeUpstream) (*DefaultBookingFlowService, *memStore) {
	store := newMemStore()
	svc := &DefaultBookingFlowService{
		Upstream: up,
		Drafts:   store,
		Sessions: &memSessions{userID: "u1"},
		Geo:      &fakeGeo{err: errors.New("no geo")},
		Logger:   zap.NewNop(),
	}
	return svc, store
}

// readyDraft seeds the store with a draft past discovery and pricing.
func readyDraft(store *memStore) *models.BookingDraft {
	vendorID := 7
	est := 2500.0
	d := &models.BookingDraft{
		DraftID:        "d1",
		UserID:         "u1",
		State:          models.FlowPriceReady,
		PickupAddress:  "Connaught Place, New Delhi",
		DropAddress:    "Andheri East, Mumbai",
		PickupPoint:    models.GeoPoint{Latitude: 28.6, Longitude: 77.2},
		DropPoint:      models.GeoPoint{Latitude: 19.0, Longitude: 72.8},
		VehicleModelID: intPtr(3),
		MaterialID:     intPtr(1),
		MaterialWeight: "1200",
		PaymentMethod:  "cod",
		DistanceKm:     42.5,
		EstimatedPrice: est,
		AdjustedPrice:  &est,
		VendorID:       &vendorID,
		Vendors: []models.VendorCandidate{
			{VendorID: 7, VendorName: "Sharma Transports"},
			{VendorID: 9, VendorName: "Verma Logistics"},
		},
		SelectedVendorID: &vendorID,
		Quote: &models.PriceQuote{
			Vendor:  models.QuoteVendor{ID: 7, Name: "Sharma Transports"},
			Pricing: models.QuotePricing{TotalPrice: est, IsEditable: true},
		},
		Seq: 4,
	}
	store.drafts["d1"] = *d
	return d
}

func TestStartFlow(t *testing.T) {
	t.Run("fails closed without a session", func(t *testing.T) {
		svc, _ := newTestService(&fakeUpstream{})
		_, _, err := svc.StartFlow(context.Background(), "stranger", "1.2.3.4", nil)
		var authErr *session.AuthenticationError
		if !errors.As(err, &authErr) {
			t.Fatalf("expected AuthenticationError, got %v", err)
		}
	})

	t.Run("seeds default points when geolocation fails", func(t *testing.T) {
		svc, _ := newTestService(&fakeUpstream{})
		draft, form, err := svc.StartFlow(context.Background(), "u1", "10.0.0.1", nil)
		if err != nil {
			t.Fatalf("StartFlow failed: %v", err)
		}
		if draft.PickupPoint != models.DefaultPickupPoint {
			t.Errorf("pickup point = %v, want default", draft.PickupPoint)
		}
		if draft.DropPoint != models.DefaultDropPoint {
			t.Errorf("drop point = %v, want default", draft.DropPoint)
		}
		if draft.State != models.FlowIdle {
			t.Errorf("state = %q, want idle", draft.State)
		}
		if len(form.VehicleModels) == 0 {
			t.Error("form metadata missing")
		}
	})

	t.Run("seeds pickup from geolocation", func(t *testing.T) {
		svc, _ := newTestService(&fakeUpstream{})
		svc.Geo = &fakeGeo{point: models.GeoPoint{Latitude: 13.08, Longitude: 80.27}}
		draft, _, err := svc.StartFlow(context.Background(), "u1", "49.207.1.1", nil)
		if err != nil {
			t.Fatalf("StartFlow failed: %v", err)
		}
		if draft.PickupPoint.Latitude != 13.08 {
			t.Errorf("pickup point = %v, want geolocated", draft.PickupPoint)
		}
	})

	t.Run("prefills route from a prior booking", func(t *testing.T) {
		svc, _ := newTestService(&fakeUpstream{})
		bookingID := 55
		draft, _, err := svc.StartFlow(context.Background(), "u1", "1.2.3.4", &bookingID)
		if err != nil {
			t.Fatalf("StartFlow failed: %v", err)
		}
		if !draft.Prefilled {
			t.Error("draft should be marked prefilled")
		}
		if draft.PickupAddress != "pickup address" || draft.DropAddress != "drop address" {
			t.Errorf("addresses = %q / %q, want prefilled values", draft.PickupAddress, draft.DropAddress)
		}
	})

	t.Run("prefill lookup failure aborts the start", func(t *testing.T) {
		up := &fakeUpstream{
			locationFn: func(_ context.Context, _ int, _ string) (*models.LocationRecord, error) {
				return nil, &upstream.RemoteError{StatusCode: 404, Message: "booking not found"}
			},
		}
		svc, _ := newTestService(up)
		bookingID := 55
		_, _, err := svc.StartFlow(context.Background(), "u1", "1.2.3.4", &bookingID)
		var remote *upstream.RemoteError
		if !errors.As(err, &remote) {
			t.Fatalf("expected RemoteError, got %v", err)
		}
	})
}

func TestGetDraftOwnership(t *testing.T) {
	svc, store := newTestService(&fakeUpstream{})
	readyDraft(store)

	if _, err := svc.GetDraft(context.Background(), "u1", "d1"); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	_, err := svc.GetDraft(context.Background(), "u2", "d1")
	if !errors.Is(err, ErrDraftNotFound) {
		t.Fatalf("foreign draft should look missing, got %v", err)
	}
}

func TestFindVendors(t *testing.T) {
	t.Run("requires a vehicle model before calling upstream", func(t *testing.T) {
		up := &fakeUpstream{}
		svc, store := newTestService(up)
		d := readyDraft(store)
		d.VehicleModelID = nil
		store.drafts["d1"] = *d

		_, err := svc.FindVendors(context.Background(), "u1", "d1")
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "vehicle_model_id" {
			t.Fatalf("expected vehicle_model_id validation error, got %v", err)
		}
		if up.vendorCalls != 0 {
			t.Errorf("upstream called %d times, want 0", up.vendorCalls)
		}
	})

	t.Run("requires a positive load weight before calling upstream", func(t *testing.T) {
		up := &fakeUpstream{}
		svc, store := newTestService(up)
		d := readyDraft(store)
		d.MaterialWeight = "heavy"
		store.drafts["d1"] = *d

		_, err := svc.FindVendors(context.Background(), "u1", "d1")
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "material_weight" {
			t.Fatalf("expected material_weight validation error, got %v", err)
		}
		if up.vendorCalls != 0 {
			t.Errorf("upstream called %d times, want 0", up.vendorCalls)
		}
	})

	t.Run("replaces results and clears stale selection", func(t *testing.T) {
		up := &fakeUpstream{
			vendorsFn: func(_ context.Context, req models.VendorSearch) ([]models.VendorCandidate, error) {
				if req.VehicleModelID != 3 || req.MaterialWeight != 1200 {
					return nil, fmt.Errorf("unexpected search %+v", req)
				}
				return []models.VendorCandidate{{VendorID: 11, VendorName: "Fresh Movers"}}, nil
			},
		}
		svc, store := newTestService(up)
		readyDraft(store)

		draft, err := svc.FindVendors(context.Background(), "u1", "d1")
		if err != nil {
			t.Fatalf("FindVendors failed: %v", err)
		}
		if len(draft.Vendors) != 1 || draft.Vendors[0].VendorID != 11 {
			t.Errorf("vendors = %+v, want fresh list", draft.Vendors)
		}
		if draft.SelectedVendorID != nil || draft.Quote != nil || draft.VendorID != nil {
			t.Error("previous selection and quote should be cleared")
		}
		if draft.State != models.FlowVendorsFound {
			t.Errorf("state = %q, want vendors_found", draft.State)
		}
	})

	t.Run("failure leaves no vendor list behind", func(t *testing.T) {
		up := &fakeUpstream{
			vendorsFn: func(_ context.Context, _ models.VendorSearch) ([]models.VendorCandidate, error) {
				return nil, &upstream.TransportError{Op: "POST /api/truck-booking/available-vendors", Err: errors.New("timeout")}
			},
		}
		svc, store := newTestService(up)
		readyDraft(store)

		_, err := svc.FindVendors(context.Background(), "u1", "d1")
		var terr *upstream.TransportError
		if !errors.As(err, &terr) {
			t.Fatalf("expected TransportError, got %v", err)
		}
		saved, _ := store.Get(context.Background(), "d1")
		if saved.Vendors != nil {
			t.Error("failed discovery must not leave a vendor list")
		}
		if saved.State != models.FlowIdle {
			t.Errorf("state = %q, want idle", saved.State)
		}
	})

	t.Run("second request while one is in flight is a no-op", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		up := &fakeUpstream{
			vendorsFn: func(_ context.Context, _ models.VendorSearch) ([]models.VendorCandidate, error) {
				close(entered)
				<-release
				return []models.VendorCandidate{{VendorID: 7}}, nil
			},
		}
		svc, store := newTestService(up)
		readyDraft(store)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = svc.FindVendors(context.Background(), "u1", "d1")
		}()
		<-entered

		if _, err := svc.FindVendors(context.Background(), "u1", "d1"); err != nil {
			t.Fatalf("concurrent FindVendors failed: %v", err)
		}
		close(release)
		<-done

		if up.vendorCalls != 1 {
			t.Errorf("upstream called %d times, want 1", up.vendorCalls)
		}
	})

	t.Run("result landing after an invalidating edit is discarded", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		up := &fakeUpstream{
			vendorsFn: func(_ context.Context, _ models.VendorSearch) ([]models.VendorCandidate, error) {
				close(entered)
				<-release
				return []models.VendorCandidate{{VendorID: 7, VendorName: "Stale Result"}}, nil
			},
		}
		svc, store := newTestService(up)
		readyDraft(store)

		done := make(chan *models.BookingDraft)
		go func() {
			d, _ := svc.FindVendors(context.Background(), "u1", "d1")
			done <- d
		}()
		<-entered

		// The pickup moves while discovery is in flight.
		if _, err := svc.UpdateDraft(context.Background(), "u1", "d1", &models.DraftUpdate{
			PickupPoint: &models.GeoPoint{Latitude: 13.0, Longitude: 80.2},
		}); err != nil {
			t.Fatalf("UpdateDraft failed: %v", err)
		}
		close(release)
		result := <-done

		if result.Vendors != nil {
			t.Errorf("stale vendors surfaced: %+v", result.Vendors)
		}
		saved, _ := store.Get(context.Background(), "d1")
		if saved.Vendors != nil || saved.State == models.FlowVendorsFound {
			t.Errorf("stale result was committed: state=%q vendors=%+v", saved.State, saved.Vendors)
		}
	})
}

func TestCalculatePrice(t *testing.T) {
	t.Run("rejects a vendor outside the current list", func(t *testing.T) {
		up := &fakeUpstream{}
		svc, store := newTestService(up)
		readyDraft(store)

		_, err := svc.CalculatePrice(context.Background(), "u1", "d1", 99)
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "vendor_id" {
			t.Fatalf("expected vendor_id validation error, got %v", err)
		}
		if up.priceCalls != 0 {
			t.Error("upstream should not be called for an unknown vendor")
		}
	})

	t.Run("commits the quote and seeds the adjustable price", func(t *testing.T) {
		svc, store := newTestService(&fakeUpstream{})
		readyDraft(store)

		draft, err := svc.CalculatePrice(context.Background(), "u1", "d1", 9)
		if err != nil {
			t.Fatalf("CalculatePrice failed: %v", err)
		}
		if draft.State != models.FlowPriceReady {
			t.Errorf("state = %q, want price_ready", draft.State)
		}
		if draft.VendorID == nil || *draft.VendorID != 9 {
			t.Errorf("vendor id = %v, want 9", draft.VendorID)
		}
		if draft.EstimatedPrice != 2500 {
			t.Errorf("estimated price = %v, want 2500", draft.EstimatedPrice)
		}
		if draft.AdjustedPrice == nil || *draft.AdjustedPrice != 2500 {
			t.Errorf("adjusted price = %v, want seeded to estimate", draft.AdjustedPrice)
		}
		if draft.DistanceKm != 42.5 {
			t.Errorf("distance = %v, want 42.5", draft.DistanceKm)
		}
	})

	t.Run("quote for the wrong vendor is a contract violation", func(t *testing.T) {
		up := &fakeUpstream{
			priceFn: func(_ context.Context, req models.PriceRequest) (*models.PriceQuote, error) {
				return &models.PriceQuote{
					Vendor:  models.QuoteVendor{ID: req.VendorID + 1},
					Pricing: models.QuotePricing{TotalPrice: 100},
				}, nil
			},
		}
		svc, store := newTestService(up)
		readyDraft(store)

		_, err := svc.CalculatePrice(context.Background(), "u1", "d1", 9)
		var cerr *ContractError
		if !errors.As(err, &cerr) || cerr.Code != "vendorMismatch" {
			t.Fatalf("expected vendorMismatch ContractError, got %v", err)
		}
		saved, _ := store.Get(context.Background(), "d1")
		if saved.Quote != nil || saved.VendorID != nil || saved.SelectedVendorID != nil {
			t.Error("mismatched quote must not be committed")
		}
		if saved.State != models.FlowVendorsFound {
			t.Errorf("state = %q, want rollback to vendors_found", saved.State)
		}
	})

	t.Run("upstream failure rolls the selection back", func(t *testing.T) {
		up := &fakeUpstream{
			priceFn: func(_ context.Context, _ models.PriceRequest) (*models.PriceQuote, error) {
				return nil, &upstream.RemoteError{StatusCode: 422, Message: "vendor unavailable"}
			},
		}
		svc, store := newTestService(up)
		readyDraft(store)

		_, err := svc.CalculatePrice(context.Background(), "u1", "d1", 9)
		var remote *upstream.RemoteError
		if !errors.As(err, &remote) {
			t.Fatalf("expected RemoteError, got %v", err)
		}
		saved, _ := store.Get(context.Background(), "d1")
		if saved.SelectedVendorID != nil {
			t.Error("selection should be rolled back on failure")
		}
		if saved.State != models.FlowVendorsFound {
			t.Errorf("state = %q, want vendors_found", saved.State)
		}
	})

	t.Run("the last selection wins a race", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		first := true
		var mu sync.Mutex
		up := &fakeUpstream{}
		up.priceFn = func(_ context.Context, req models.PriceRequest) (*models.PriceQuote, error) {
			mu.Lock()
			blocked := first
			first = false
			mu.Unlock()
			if blocked {
				close(entered)
				<-release
			}
			return &models.PriceQuote{
				Vendor:  models.QuoteVendor{ID: req.VendorID},
				Pricing: models.QuotePricing{TotalPrice: float64(req.VendorID) * 100, IsEditable: true},
			}, nil
		}
		svc, store := newTestService(up)
		readyDraft(store)

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _ = svc.CalculatePrice(context.Background(), "u1", "d1", 7)
		}()
		<-entered

		// Second selection completes while the first is still in flight.
		if _, err := svc.CalculatePrice(context.Background(), "u1", "d1", 9); err != nil {
			t.Fatalf("second CalculatePrice failed: %v", err)
		}
		close(release)
		<-done

		saved, _ := store.Get(context.Background(), "d1")
		if saved.VendorID == nil || *saved.VendorID != 9 {
			t.Fatalf("vendor id = %v, want the later selection 9", saved.VendorID)
		}
		if saved.EstimatedPrice != 900 {
			t.Errorf("estimated price = %v, want 900 from vendor 9", saved.EstimatedPrice)
		}
	})
}

func TestSubmit(t *testing.T) {
	t.Run("precondition order", func(t *testing.T) {
		cases := []struct {
			name      string
			mutate    func(d *models.BookingDraft)
			wantField string
		}{
			{"no price", func(d *models.BookingDraft) { d.State = models.FlowVendorsFound; d.VendorID = nil }, "vendor_id"},
			{"no payment method", func(d *models.BookingDraft) { d.PaymentMethod = "" }, "payment_method"},
			{"no pickup address", func(d *models.BookingDraft) { d.PickupAddress = "" }, "pickup_address"},
			{"no drop address", func(d *models.BookingDraft) { d.DropAddress = "" }, "drop_address"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				up := &fakeUpstream{}
				svc, store := newTestService(up)
				d := readyDraft(store)
				tc.mutate(d)
				store.drafts["d1"] = *d

				_, err := svc.Submit(context.Background(), "u1", "d1")
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Field != tc.wantField {
					t.Fatalf("expected %s validation error, got %v", tc.wantField, err)
				}
				if up.createCalls != 0 {
					t.Error("upstream must not be called when preconditions fail")
				}
			})
		}
	})

	t.Run("sends the adjusted price and deletes the draft", func(t *testing.T) {
		up := &fakeUpstream{}
		svc, store := newTestService(up)
		d := readyDraft(store)
		adjusted := 2300.0
		d.AdjustedPrice = &adjusted
		d.PickupDateTime = time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC)
		store.drafts["d1"] = *d

		message, err := svc.Submit(context.Background(), "u1", "d1")
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if message == "" {
			t.Error("expected a confirmation message")
		}
		if up.lastSubmission.AdjustedPrice != 2300 {
			t.Errorf("submitted price = %v, want 2300", up.lastSubmission.AdjustedPrice)
		}
		if up.lastSubmission.EstimatedPrice != 2500 {
			t.Errorf("submitted estimate = %v, want 2500", up.lastSubmission.EstimatedPrice)
		}
		if up.lastSubmission.PickupDatetime != "2026-09-14 10:30:00" {
			t.Errorf("pickup datetime = %q, want formatted value", up.lastSubmission.PickupDatetime)
		}
		if up.lastSubmission.VendorID != 7 {
			t.Errorf("vendor id = %d, want 7", up.lastSubmission.VendorID)
		}
		if _, err := store.Get(context.Background(), "d1"); !errors.Is(err, ErrDraftNotFound) {
			t.Error("draft should be deleted after submission")
		}
	})

	t.Run("falls back to the estimate when nothing was adjusted", func(t *testing.T) {
		up := &fakeUpstream{}
		svc, store := newTestService(up)
		d := readyDraft(store)
		d.AdjustedPrice = nil
		store.drafts["d1"] = *d

		if _, err := svc.Submit(context.Background(), "u1", "d1"); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
		if up.lastSubmission.AdjustedPrice != 2500 {
			t.Errorf("submitted price = %v, want the 2500 estimate", up.lastSubmission.AdjustedPrice)
		}
	})

	t.Run("failure keeps the draft resubmittable", func(t *testing.T) {
		up := &fakeUpstream{
			createFn: func(_ context.Context, _ models.BookingSubmission) (string, error) {
				return "", &upstream.RemoteError{StatusCode: 422, Message: "vendor no longer available"}
			},
		}
		svc, store := newTestService(up)
		readyDraft(store)

		_, err := svc.Submit(context.Background(), "u1", "d1")
		var remote *upstream.RemoteError
		if !errors.As(err, &remote) {
			t.Fatalf("expected RemoteError, got %v", err)
		}
		saved, getErr := store.Get(context.Background(), "d1")
		if getErr != nil {
			t.Fatal("draft should survive a failed submission")
		}
		if saved.State != models.FlowPriceReady {
			t.Errorf("state = %q, want price_ready", saved.State)
		}
	})
}

func TestSetPincode(t *testing.T) {
	t.Run("short input clears localities without an upstream call", func(t *testing.T) {
		calls := 0
		up := &fakeUpstream{
			pincodeFn: func(_ context.Context, _ string) (*models.PincodeArea, error) {
				calls++
				return nil, errors.New("should not be called")
			},
		}
		svc, store := newTestService(up)
		d := readyDraft(store)
		d.PickupLocalities = []models.Locality{{Label: "Old"}}
		store.drafts["d1"] = *d

		draft, err := svc.SetPincode(context.Background(), "u1", "d1", LegPickup, "1100")
		if err != nil {
			t.Fatalf("SetPincode failed: %v", err)
		}
		if calls != 0 {
			t.Error("incomplete pincode must not hit upstream")
		}
		if draft.PickupLocalities != nil {
			t.Error("stale localities should be cleared")
		}
		if draft.PickupPincode != "1100" {
			t.Errorf("pincode = %q, want partial value kept", draft.PickupPincode)
		}
	})

	t.Run("complete pincode resolves locality options", func(t *testing.T) {
		svc, store := newTestService(&fakeUpstream{})
		readyDraft(store)

		draft, err := svc.SetPincode(context.Background(), "u1", "d1", LegPickup, "110001")
		if err != nil {
			t.Fatalf("SetPincode failed: %v", err)
		}
		if len(draft.PickupLocalities) != 1 {
			t.Fatalf("localities = %+v, want one option", draft.PickupLocalities)
		}
		want := "Connaught Place, New Delhi, Delhi"
		if draft.PickupLocalities[0].Label != want {
			t.Errorf("label = %q, want %q", draft.PickupLocalities[0].Label, want)
		}
	})

	t.Run("resolved pincode with trailing digits is not looked up again", func(t *testing.T) {
		calls := 0
		up := &fakeUpstream{
			pincodeFn: func(_ context.Context, _ string) (*models.PincodeArea, error) {
				calls++
				return &models.PincodeArea{
					AllPostOffices: []models.PostOffice{{Name: "Connaught Place"}},
					District:       "New Delhi",
					State:          "Delhi",
				}, nil
			},
		}
		svc, store := newTestService(up)
		readyDraft(store)

		if _, err := svc.SetPincode(context.Background(), "u1", "d1", LegPickup, "110001"); err != nil {
			t.Fatalf("SetPincode failed: %v", err)
		}
		draft, err := svc.SetPincode(context.Background(), "u1", "d1", LegPickup, "1100017")
		if err != nil {
			t.Fatalf("SetPincode with trailing digit failed: %v", err)
		}
		if calls != 1 {
			t.Errorf("lookup calls = %d, want 1", calls)
		}
		if len(draft.PickupLocalities) != 1 {
			t.Errorf("localities = %+v, want the resolved list kept", draft.PickupLocalities)
		}
		if draft.PickupPincode != "110001" {
			t.Errorf("pincode = %q, want 110001", draft.PickupPincode)
		}
	})

	t.Run("same pincode after a failed lookup retries", func(t *testing.T) {
		calls := 0
		up := &fakeUpstream{
			pincodeFn: func(_ context.Context, _ string) (*models.PincodeArea, error) {
				calls++
				if calls == 1 {
					return nil, &upstream.TransportError{Op: "GET /api/pincode/location", Err: errors.New("timeout")}
				}
				return &models.PincodeArea{
					AllPostOffices: []models.PostOffice{{Name: "Anna Nagar"}},
					District:       "Chennai",
					State:          "Tamil Nadu",
				}, nil
			},
		}
		svc, store := newTestService(up)
		readyDraft(store)

		if _, err := svc.SetPincode(context.Background(), "u1", "d1", LegDrop, "600040"); err == nil {
			t.Fatal("first lookup should fail")
		}
		draft, err := svc.SetPincode(context.Background(), "u1", "d1", LegDrop, "600040")
		if err != nil {
			t.Fatalf("retry failed: %v", err)
		}
		if calls != 2 {
			t.Errorf("lookup calls = %d, want 2", calls)
		}
		if len(draft.DropLocalities) != 1 {
			t.Errorf("localities = %+v, want resolved on retry", draft.DropLocalities)
		}
	})

	t.Run("extra digits are truncated before lookup", func(t *testing.T) {
		var looked string
		up := &fakeUpstream{
			pincodeFn: func(_ context.Context, pincode string) (*models.PincodeArea, error) {
				looked = pincode
				return &models.PincodeArea{District: "Chennai", State: "Tamil Nadu"}, nil
			},
		}
		svc, store := newTestService(up)
		readyDraft(store)

		draft, err := svc.SetPincode(context.Background(), "u1", "d1", LegDrop, "600-0011")
		if err != nil {
			t.Fatalf("SetPincode failed: %v", err)
		}
		if looked != "600001" {
			t.Errorf("looked up %q, want 600001", looked)
		}
		if draft.DropPincode != "600001" {
			t.Errorf("stored pincode = %q, want 600001", draft.DropPincode)
		}
	})

	t.Run("lookup failure clears the list and surfaces the error", func(t *testing.T) {
		up := &fakeUpstream{
			pincodeFn: func(_ context.Context, _ string) (*models.PincodeArea, error) {
				return nil, &upstream.RemoteError{StatusCode: 404, Message: "unknown pincode"}
			},
		}
		svc, store := newTestService(up)
		d := readyDraft(store)
		d.PickupLocalities = []models.Locality{{Label: "Old"}}
		store.drafts["d1"] = *d

		_, err := svc.SetPincode(context.Background(), "u1", "d1", LegPickup, "999999")
		var remote *upstream.RemoteError
		if !errors.As(err, &remote) {
			t.Fatalf("expected RemoteError, got %v", err)
		}
		saved, _ := store.Get(context.Background(), "d1")
		if saved.PickupLocalities != nil {
			t.Error("failed lookup should clear stale localities")
		}
	})
}

func TestClearPrefill(t *testing.T) {
	svc, store := newTestService(&fakeUpstream{})
	d := readyDraft(store)
	d.Prefilled = true
	d.PickupPincode = "110001"
	store.drafts["d1"] = *d

	draft, err := svc.ClearPrefill(context.Background(), "u1", "d1", "10.0.0.1")
	if err != nil {
		t.Fatalf("ClearPrefill failed: %v", err)
	}
	if draft.Prefilled {
		t.Error("prefilled flag should be cleared")
	}
	if draft.PickupAddress != "" || draft.DropAddress != "" {
		t.Error("addresses should be reset")
	}
	if draft.PickupPoint != models.DefaultPickupPoint || draft.DropPoint != models.DefaultDropPoint {
		t.Error("points should fall back to defaults when geolocation fails")
	}
	if draft.PickupPincode != "" || draft.PickupLocalities != nil {
		t.Error("pincode state should be reset")
	}
	if draft.Vendors != nil || draft.Quote != nil {
		t.Error("downstream results should be invalidated")
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := newValidationError("payment_method", "Please choose a payment method")
	if !strings.Contains(err.Error(), "payment_method") {
		t.Errorf("error text %q should name the field", err.Error())
	}
}
