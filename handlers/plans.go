package handlers

import (
	"net/http"

	"transway/models"
	"transway/services/plans"

	"github.com/gin-gonic/gin"
)

// PlanHandler exposes subscription plans and checkout.
type PlanHandler struct {
	Plans plans.PlanService
}

// List returns the plans in display order.
func (h *PlanHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	list, err := h.Plans.List(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"plans": list}})
}

// Subscribe opens a subscription for the plan.
func (h *PlanHandler) Subscribe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		PlanID int `json:"plan_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.Plans.Subscribe(c.Request.Context(), userID, input.PlanID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// VerifyPayment confirms a gateway payment.
func (h *PlanHandler) VerifyPayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input models.PaymentVerification
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	message, err := h.Plans.VerifyPayment(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// Subscriptions lists the shipper's subscriptions.
func (h *PlanHandler) Subscriptions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.Plans.Subscriptions(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": status})
}
