package models

import "time"

// DraftUpdate carries field-level edits to a booking draft. Nil means the
// field is untouched; set fields are committed before any invalidation they
// trigger, so the last write for a field always wins.
type DraftUpdate struct {
	PickupAddress       *string    `json:"pickup_address,omitempty"`
	DropAddress         *string    `json:"drop_address,omitempty"`
	PickupPoint         *GeoPoint  `json:"pickup_point,omitempty"`
	DropPoint           *GeoPoint  `json:"drop_point,omitempty"`
	MaterialID          *int       `json:"material_id,omitempty"`
	VehicleModelID      *int       `json:"vehicle_model_id,omitempty"`
	MaterialWeight      *string    `json:"material_weight,omitempty"`
	PaymentMethod       *string    `json:"payment_method,omitempty"`
	PickupDateTime      *time.Time `json:"pickup_datetime,omitempty"`
	SpecialInstructions *string    `json:"special_instructions,omitempty"`
	AdjustedPrice       *float64   `json:"adjusted_price,omitempty"`
}

// Invalidating reports whether the update touches an input that vendor
// availability and pricing are functions of.
func (u DraftUpdate) Invalidating() bool {
	return u.PickupPoint != nil || u.VehicleModelID != nil || u.MaterialWeight != nil
}
