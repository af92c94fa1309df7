package handlers

import (
	"net/http"

	"transway/models"
	"transway/services/trips"

	"github.com/gin-gonic/gin"
)

// TripHandler exposes trip history and reviews.
type TripHandler struct {
	Trips trips.TripService
}

// Summary returns the per-status trip counts.
func (h *TripHandler) Summary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summary, err := h.Trips.Summary(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"summary": summary}})
}

// List returns the shipper's trips for one status.
func (h *TripHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status := c.Param("status")
	if !trips.ValidStatuses[status] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown booking status: " + status})
		return
	}

	list, err := h.Trips.List(c.Request.Context(), userID, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"bookings": list}})
}

// AddReview records a post-trip vendor rating.
func (h *TripHandler) AddReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input models.Review
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}
	if input.Rating < 1 || input.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Rating must be between 1 and 5"})
		return
	}

	message, err := h.Trips.AddReview(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
