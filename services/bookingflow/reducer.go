// File: services/bookingflow/reducer.go
package bookingflow

import (
	"time"

	"transway/models"
)

// applyUpdate commits the set fields of an update onto the draft, then runs
// downstream invalidation if any trigger field changed. Values are committed
// before invalidation so a failed downstream step never loses user input.
func applyUpdate(d *models.BookingDraft, u *models.DraftUpdate, now time.Time) error {
	if u.PickupDateTime != nil {
		if u.PickupDateTime.Before(now) {
			return newValidationError("pickup_datetime", "Pickup time cannot be in the past")
		}
	}
	if u.AdjustedPrice != nil {
		if !d.PriceCalculated() || d.Quote == nil {
			return newValidationError("adjusted_price", "Calculate a price before adjusting it")
		}
		if !d.Quote.Pricing.IsEditable {
			return newValidationError("adjusted_price", "This vendor's price is not negotiable")
		}
		if *u.AdjustedPrice <= 0 {
			return newValidationError("adjusted_price", "Offered price must be greater than zero")
		}
	}

	if u.PickupAddress != nil {
		d.PickupAddress = *u.PickupAddress
	}
	if u.DropAddress != nil {
		d.DropAddress = *u.DropAddress
	}
	if u.PickupPoint != nil {
		d.PickupPoint = *u.PickupPoint
	}
	if u.DropPoint != nil {
		d.DropPoint = *u.DropPoint
	}
	if u.MaterialID != nil {
		d.MaterialID = u.MaterialID
	}
	if u.VehicleModelID != nil {
		d.VehicleModelID = u.VehicleModelID
	}
	if u.MaterialWeight != nil {
		d.MaterialWeight = *u.MaterialWeight
	}
	if u.PaymentMethod != nil {
		d.PaymentMethod = *u.PaymentMethod
	}
	if u.PickupDateTime != nil {
		d.PickupDateTime = *u.PickupDateTime
	}
	if u.SpecialInstructions != nil {
		d.SpecialInstructions = *u.SpecialInstructions
	}
	if u.AdjustedPrice != nil {
		d.AdjustedPrice = u.AdjustedPrice
	}

	if u.Invalidating() {
		invalidateDownstream(d)
	}
	return nil
}

// invalidateDownstream clears every field derived from the discovery inputs.
// The sequence number is bumped so in-flight upstream responses issued against
// the old inputs are discarded when they land.
func invalidateDownstream(d *models.BookingDraft) {
	d.Vendors = nil
	d.SelectedVendorID = nil
	d.Quote = nil
	d.VendorID = nil
	d.AdjustedPrice = nil
	d.EstimatedPrice = 0
	d.DistanceKm = 0
	d.State = models.FlowIdle
	d.Seq++
}
