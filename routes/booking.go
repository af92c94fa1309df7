package routes

import (
	"transway/handlers"
	"transway/middleware"
	"transway/session"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the endpoints for the booking flow.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, store session.TokenStore) {
	booking := r.Group("/api/booking")
	{
		booking.Use(middleware.SessionAuthMiddleware(store))
		booking.POST("/flow", hb.BookingFlow.StartFlow)
		booking.GET("/flow/:draftID", hb.BookingFlow.GetDraft)
		booking.PATCH("/flow/:draftID", hb.BookingFlow.UpdateDraft)
		booking.POST("/flow/:draftID/pincode", hb.BookingFlow.SetPincode)
		booking.POST("/flow/:draftID/manual-entry", hb.BookingFlow.ClearPrefill)
		booking.POST("/flow/:draftID/vendors", hb.BookingFlow.FindVendors)
		booking.POST("/flow/:draftID/price", hb.BookingFlow.CalculatePrice)
		booking.POST("/flow/:draftID/submit", hb.BookingFlow.Submit)
		booking.DELETE("/flow/:draftID", hb.BookingFlow.Cancel)
	}
}
