package handlers

import (
	"net/http"

	"transway/models"
	"transway/services/auth"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes OTP sign-in, registration and identity verification.
type AuthHandler struct {
	Auth auth.AuthService
}

// SendOTP texts a one-time code to the phone number.
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var input struct {
		ContactNumber string `json:"contact_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	message, err := h.Auth.SendOTP(c.Request.Context(), input.ContactNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// VerifyOTP exchanges the code for a gateway session token.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var input struct {
		ContactNumber string `json:"contact_number" binding:"required"`
		OTP           string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	creds, err := h.Auth.VerifyOTP(c.Request.Context(), input.ContactNumber, input.OTP)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": creds})
}

// CheckStatus reports whether the shipper finished registration.
func (h *AuthHandler) CheckStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.Auth.CheckStatus(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": status})
}

// CompleteRegistration submits the shipper profile.
func (h *AuthHandler) CompleteRegistration(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input models.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	message, err := h.Auth.CompleteRegistration(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// AadhaarInitialize starts the hosted identity check and returns its URL.
func (h *AuthHandler) AadhaarInitialize(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		RedirectURL string `json:"redirect_url"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
			return
		}
	}

	init, err := h.Auth.AadhaarInitialize(c.Request.Context(), userID, input.RedirectURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": init})
}

// AadhaarVerify fetches the verified identity record.
func (h *AuthHandler) AadhaarVerify(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		ClientID string `json:"client_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	data, err := h.Auth.AadhaarVerify(c.Request.Context(), userID, input.ClientID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// VerifyBankAccount runs the payout account check.
func (h *AuthHandler) VerifyBankAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input models.BankAccount
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	message, err := h.Auth.VerifyBankAccount(c.Request.Context(), userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// UpdateReferral records a referral code.
func (h *AuthHandler) UpdateReferral(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		ReferralCode string `json:"referral_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	message, err := h.Auth.UpdateReferral(c.Request.Context(), userID, input.ReferralCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// SignOut drops the stored session.
func (h *AuthHandler) SignOut(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Auth.SignOut(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Signed out"})
}
