package handlers

import (
	"errors"
	"net/http"

	"transway/services/bookingflow"
	"transway/session"
	"transway/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// currentUserID reads the user id set by the auth middleware.
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID.(string), true
}

// respondServiceError translates service errors into HTTP responses. Upstream
// rejections surface their own message; transport failures get a generic retry
// hint so upstream internals never leak to the client.
func respondServiceError(c *gin.Context, err error) {
	logger := getLogger(c)

	var validation *bookingflow.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": validation.Message,
			"field":   validation.Field,
		})
		return
	}

	var auth *session.AuthenticationError
	if errors.As(err, &auth) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Please sign in again",
		})
		return
	}

	if errors.Is(err, bookingflow.ErrDraftNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Booking draft not found or expired",
		})
		return
	}

	var remote *upstream.RemoteError
	if errors.As(err, &remote) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": remote.UserMessage(),
		})
		return
	}

	var transport *upstream.TransportError
	if errors.As(err, &transport) {
		logger.Error("Upstream unreachable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "Please try again later",
		})
		return
	}

	var contract *bookingflow.ContractError
	if errors.As(err, &contract) {
		logger.Error("Upstream contract violation", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Something went wrong. Please try again",
		})
		return
	}

	logger.Error("Unhandled service error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Internal server error",
	})
}
