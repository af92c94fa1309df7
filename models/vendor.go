package models

// VendorCandidate is one prospective vendor returned by discovery.
// Candidates are read-only; the client never mutates them.
type VendorCandidate struct {
	VendorID          int     `json:"vendor_id"`
	VendorName        string  `json:"vendor_name"`
	VehicleBrandModel string  `json:"vehicle_brand_model"`
	VehicleImage      string  `json:"vehicle_image,omitempty"`
	DistanceKm        float64 `json:"distance_km"`
	EstimatedArrival  string  `json:"estimated_arrival,omitempty"`
	Rating            float64 `json:"rating"`
	TripsCompleted    int     `json:"trips_completed"`
}

// PriceQuote is a vendor-specific trip estimate. Each calculation replaces
// the previous quote wholesale.
type PriceQuote struct {
	Vendor      QuoteVendor  `json:"vendor"`
	TripDetails TripDetails  `json:"trip_details"`
	Pricing     QuotePricing `json:"pricing"`
}

// QuoteVendor is the vendor snapshot embedded in a quote.
type QuoteVendor struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	VehicleModel string `json:"vehicle_model,omitempty"`
}

// TripDetails describes the quoted route.
type TripDetails struct {
	DistanceKm   float64 `json:"distance_km"`
	DistanceText string  `json:"distance_text,omitempty"`
	DurationText string  `json:"duration_text,omitempty"`
}

// QuotePricing is the price breakdown for a quote. IsEditable marks whether
// the shipper may adjust the total before submitting.
type QuotePricing struct {
	TotalPrice float64 `json:"total_price"`
	BasePrice  float64 `json:"base_price,omitempty"`
	PerKmPrice float64 `json:"per_km_price,omitempty"`
	IsEditable bool    `json:"is_editable"`
}

// VendorSearch is the discovery request payload.
type VendorSearch struct {
	PickupLatitude  float64 `json:"pickup_latitude"`
	PickupLongitude float64 `json:"pickup_longitude"`
	VehicleModelID  int     `json:"vehicle_model_id"`
	MaterialWeight  float64 `json:"material_weight"`
}

// PriceRequest is the calculate-vendor-price request payload.
type PriceRequest struct {
	VendorID        int     `json:"vendor_id"`
	PickupLatitude  float64 `json:"pickup_latitude"`
	PickupLongitude float64 `json:"pickup_longitude"`
	DropLatitude    float64 `json:"drop_latitude"`
	DropLongitude   float64 `json:"drop_longitude"`
	MaterialID      *int    `json:"material_id"`
	MaterialWeight  float64 `json:"material_weight"`
}
