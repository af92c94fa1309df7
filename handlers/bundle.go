package handlers

// HandlerBundle groups the handlers so route registration takes one value.
type HandlerBundle struct {
	Auth        *AuthHandler
	BookingFlow *BookingFlowHandler
	Plans       *PlanHandler
	Trips       *TripHandler
}
