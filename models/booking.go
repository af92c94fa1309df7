package models

// BookingSubmission is the create-with-vendor payload assembled from a
// completed draft.
type BookingSubmission struct {
	VendorID            int     `json:"vendor_id"`
	VehicleModelID      int     `json:"vehicle_model_id"`
	PickupAddress       string  `json:"pickup_address"`
	PickupLatitude      float64 `json:"pickup_latitude"`
	PickupLongitude     float64 `json:"pickup_longitude"`
	DropAddress         string  `json:"drop_address"`
	DropLatitude        float64 `json:"drop_latitude"`
	DropLongitude       float64 `json:"drop_longitude"`
	MaterialID          *int    `json:"material_id"`
	MaterialWeight      float64 `json:"material_weight"`
	DistanceKm          float64 `json:"distance_km"`
	EstimatedPrice      float64 `json:"estimated_price"`
	AdjustedPrice       float64 `json:"adjusted_price"`
	PaymentMethod       string  `json:"payment_method"`
	PickupDatetime      string  `json:"pickup_datetime"`
	SpecialInstructions string  `json:"special_instructions"`
}

// Trip is one booking record as listed in trip history.
type Trip struct {
	ID             int     `json:"id"`
	Status         string  `json:"status"`
	StatusLabel    string  `json:"status_label,omitempty"`
	VendorID       int     `json:"vendor_id,omitempty"`
	VendorName     string  `json:"vendor_name,omitempty"`
	PickupAddress  string  `json:"pickup_address"`
	DropAddress    string  `json:"drop_address"`
	PickupDatetime string  `json:"pickup_datetime"`
	DistanceKm     float64 `json:"distance_km,omitempty"`
	FinalPrice     float64 `json:"final_price,omitempty"`
}

// BookingSummary is the per-status trip count shown on the dashboard.
type BookingSummary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// Review is a post-trip vendor rating.
type Review struct {
	BookingID int    `json:"booking_id"`
	UserID    int    `json:"user_id"`
	VendorID  int    `json:"vendor_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}
