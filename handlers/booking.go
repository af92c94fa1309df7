package handlers

import (
	"net/http"

	"transway/middleware"
	"transway/models"
	"transway/services/bookingflow"

	"github.com/gin-gonic/gin"
)

// BookingFlowHandler exposes the booking draft flow over HTTP.
type BookingFlowHandler struct {
	Flow bookingflow.BookingFlowService
}

// StartFlow creates a new draft. An optional prefill_booking_id copies the
// route from a prior booking.
func (h *BookingFlowHandler) StartFlow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		PrefillBookingID *int `json:"prefill_booking_id"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
			return
		}
	}

	draft, form, err := h.Flow.StartFlow(c.Request.Context(), userID, middleware.GetClientIP(c), input.PrefillBookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"draft": draft, "form": form},
	})
}

// GetDraft returns the current draft state.
func (h *BookingFlowHandler) GetDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	draft, err := h.Flow.GetDraft(c.Request.Context(), userID, c.Param("draftID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"draft": draft}})
}

// UpdateDraft applies a partial edit to the draft.
func (h *BookingFlowHandler) UpdateDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var update models.DraftUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	draft, err := h.Flow.UpdateDraft(c.Request.Context(), userID, c.Param("draftID"), &update)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"draft": draft}})
}

// SetPincode records a pincode for one leg and resolves its locality list
// once complete.
func (h *BookingFlowHandler) SetPincode(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		Leg     string `json:"leg" binding:"required"`
		Pincode string `json:"pincode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	leg := bookingflow.Leg(input.Leg)
	if leg != bookingflow.LegPickup && leg != bookingflow.LegDrop {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "leg must be pickup or drop"})
		return
	}

	draft, err := h.Flow.SetPincode(c.Request.Context(), userID, c.Param("draftID"), leg, input.Pincode)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"draft": draft}})
}

// ClearPrefill switches a prefilled draft to manual route entry.
func (h *BookingFlowHandler) ClearPrefill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	draft, err := h.Flow.ClearPrefill(c.Request.Context(), userID, c.Param("draftID"), middleware.GetClientIP(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"draft": draft}})
}

// FindVendors runs vendor discovery for the draft's current inputs.
func (h *BookingFlowHandler) FindVendors(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	draft, err := h.Flow.FindVendors(c.Request.Context(), userID, c.Param("draftID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"draft": draft}})
}

// CalculatePrice selects a vendor and fetches their quote.
func (h *BookingFlowHandler) CalculatePrice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		VendorID int `json:"vendor_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	draft, err := h.Flow.CalculatePrice(c.Request.Context(), userID, c.Param("draftID"), input.VendorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"draft": draft}})
}

// Submit sends the completed draft upstream and discards it on success.
func (h *BookingFlowHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	message, err := h.Flow.Submit(c.Request.Context(), userID, c.Param("draftID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// Cancel discards the draft.
func (h *BookingFlowHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Flow.CancelFlow(c.Request.Context(), userID, c.Param("draftID")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Booking flow cancelled"})
}
