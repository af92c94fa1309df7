package models

import "time"

// FlowState identifies where a booking draft sits in the flow. Downstream
// facts (vendor list held, quote held) are derived from the state rather
// than tracked as separate flags, so invalid combinations cannot be stored.
type FlowState string

const (
	FlowIdle         FlowState = "idle"
	FlowDiscovering  FlowState = "discovering_vendors"
	FlowVendorsFound FlowState = "vendors_found"
	FlowCalculating  FlowState = "calculating_price"
	FlowPriceReady   FlowState = "price_ready"
	FlowSubmitting   FlowState = "submitting"
)

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Fallback coordinates used until geolocation or prefill resolves real ones.
var (
	DefaultPickupPoint = GeoPoint{Latitude: 28.6139, Longitude: 77.2090}
	DefaultDropPoint   = GeoPoint{Latitude: 19.0760, Longitude: 72.8777}
)

// BookingDraft holds the in-progress booking for one flow instance between
// steps. It lives in the draft cache for the lifetime of the attempt and is
// discarded on submit or cancel.
type BookingDraft struct {
	DraftID string    `json:"draftId"`
	UserID  string    `json:"userId"`
	State   FlowState `json:"state"`

	PickupAddress string   `json:"pickup_address"`
	DropAddress   string   `json:"drop_address"`
	PickupPoint   GeoPoint `json:"pickup_point"`
	DropPoint     GeoPoint `json:"drop_point"`

	MaterialID          *int      `json:"material_id,omitempty"`
	VehicleModelID      *int      `json:"vehicle_model_id,omitempty"`
	MaterialWeight      string    `json:"material_weight"`
	DistanceKm          float64   `json:"distance_km"`
	PaymentMethod       string    `json:"payment_method,omitempty"`
	VendorID            *int      `json:"vendor_id,omitempty"`
	EstimatedPrice      float64   `json:"estimated_price"`
	AdjustedPrice       *float64  `json:"adjusted_price,omitempty"`
	PickupDateTime      time.Time `json:"pickup_datetime"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`

	// Route entry helpers: pincode-driven locality lists, or a prefill
	// carried over from a previous booking.
	PickupPincode    string     `json:"pickup_pincode,omitempty"`
	DropPincode      string     `json:"drop_pincode,omitempty"`
	PickupLocalities []Locality `json:"pickup_localities,omitempty"`
	DropLocalities   []Locality `json:"drop_localities,omitempty"`
	Prefilled        bool       `json:"prefilled"`

	Vendors          []VendorCandidate `json:"vendors,omitempty"`
	SelectedVendorID *int              `json:"selected_vendor_id,omitempty"`
	Quote            *PriceQuote       `json:"quote,omitempty"`

	// Seq fences in-flight discovery and price responses against the draft
	// state they were issued for. Bumped by every invalidating change and by
	// every vendor selection; a response whose captured seq no longer
	// matches is discarded.
	Seq       uint64    `json:"seq"`
	CreatedAt time.Time `json:"createdAt"`
}

// PriceCalculated reports whether the draft holds a committed quote.
func (d *BookingDraft) PriceCalculated() bool {
	return d.State == FlowPriceReady || d.State == FlowSubmitting
}

// FinalPrice is the amount a submission carries: the adjusted price when the
// user edited it, the estimated price otherwise.
func (d *BookingDraft) FinalPrice() float64 {
	if d.AdjustedPrice != nil {
		return *d.AdjustedPrice
	}
	return d.EstimatedPrice
}
