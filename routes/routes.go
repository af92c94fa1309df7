package routes

import (
	"net/http"
	"time"

	"transway/handlers"
	"transway/middleware"
	"transway/session"
	"transway/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers sign-in and account endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle, store session.TokenStore) {
	api := r.Group("/api/auth")
	{
		api.POST("/send-otp", hb.Auth.SendOTP)
		api.POST("/verify-otp", hb.Auth.VerifyOTP)

		// Protected routes (Require Authentication)
		api.Use(middleware.SessionAuthMiddleware(store))
		api.GET("/status", hb.Auth.CheckStatus)
		api.POST("/complete-registration", hb.Auth.CompleteRegistration)
		api.POST("/aadhaar/initialize", hb.Auth.AadhaarInitialize)
		api.POST("/aadhaar/verify", hb.Auth.AadhaarVerify)
		api.POST("/verify-bank-account", hb.Auth.VerifyBankAccount)
		api.POST("/update-referral", hb.Auth.UpdateReferral)
		api.POST("/sign-out", hb.Auth.SignOut)
	}
}

// RegisterPlanRoutes registers subscription plan endpoints.
func RegisterPlanRoutes(r *gin.Engine, hb *handlers.HandlerBundle, store session.TokenStore) {
	api := r.Group("/api/plans")
	{
		api.Use(middleware.SessionAuthMiddleware(store))
		api.GET("", hb.Plans.List)
		api.POST("/subscribe", hb.Plans.Subscribe)
		api.GET("/subscriptions", hb.Plans.Subscriptions)
		api.POST("/subscriptions/verify-payment", hb.Plans.VerifyPayment)
	}
}

// RegisterTripRoutes registers trip history endpoints.
func RegisterTripRoutes(r *gin.Engine, hb *handlers.HandlerBundle, store session.TokenStore) {
	api := r.Group("/api/trips")
	{
		api.Use(middleware.SessionAuthMiddleware(store))
		api.GET("/summary", hb.Trips.Summary)
		api.GET("/:status", hb.Trips.List)
		api.POST("/review", hb.Trips.AddReview)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Hi, I'm Transway",
			"checks":  utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, store session.TokenStore) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb, store)
	RegisterBookingRoutes(r, hb, store)
	RegisterPlanRoutes(r, hb, store)
	RegisterTripRoutes(r, hb, store)
	RegisterHealthRoute(r)
}
