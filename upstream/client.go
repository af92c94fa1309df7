// File: upstream/client.go
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"transway/models"

	"go.uber.org/zap"
)

// Client talks to the marketplace REST API. Every endpoint responds with the
// {success, data, message} envelope; failures carry either a message or a
// field-keyed error map.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type envelope struct {
	Success bool                `json:"success"`
	Data    json.RawMessage     `json:"data"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// do issues one request and decodes the envelope. The data payload is
// unmarshaled into out when non-nil; the envelope message is returned for
// endpoints whose result is just a confirmation.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) (string, error) {
	op := method + " " + path

	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("marshal request for %s: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed", zap.String("op", op), zap.Error(err))
		return "", &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request failed"
		}
		return "", &RemoteError{StatusCode: resp.StatusCode, Message: msg, Fields: env.Errors}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", &TransportError{Op: op, Err: fmt.Errorf("decode data: %w", err)}
		}
	}
	return env.Message, nil
}

// --- Booking flow endpoints ---

// FormData fetches the booking form metadata.
func (c *Client) FormData(ctx context.Context, token string) (*models.BookingFormData, error) {
	var form models.BookingFormData
	if _, err := c.do(ctx, http.MethodGet, "/api/truck-booking/form-data", token, nil, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

// PincodeLocation resolves the locality list for a 6-digit postal code.
func (c *Client) PincodeLocation(ctx context.Context, token, pincode string) (*models.PincodeArea, error) {
	var area models.PincodeArea
	path := "/api/pincode/location?pincode=" + url.QueryEscape(pincode)
	if _, err := c.do(ctx, http.MethodGet, path, token, nil, &area); err != nil {
		return nil, err
	}
	return &area, nil
}

// BookingLocation fetches a stored pickup or drop record of a prior booking.
func (c *Client) BookingLocation(ctx context.Context, token string, bookingID int, leg string) (*models.LocationRecord, error) {
	var rec models.LocationRecord
	path := fmt.Sprintf("/api/booking-location/%d/%s", bookingID, leg)
	if _, err := c.do(ctx, http.MethodGet, path, token, nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// AvailableVendors runs vendor discovery for the given pickup, vehicle model
// and load weight.
func (c *Client) AvailableVendors(ctx context.Context, token string, req models.VendorSearch) ([]models.VendorCandidate, error) {
	var data struct {
		Vehicles []models.VendorCandidate `json:"vehicles"`
	}
	if _, err := c.do(ctx, http.MethodPost, "/api/truck-booking/available-vendors", token, req, &data); err != nil {
		return nil, err
	}
	return data.Vehicles, nil
}

// CalculateVendorPrice quotes the trip for one selected vendor.
func (c *Client) CalculateVendorPrice(ctx context.Context, token string, req models.PriceRequest) (*models.PriceQuote, error) {
	var quote models.PriceQuote
	if _, err := c.do(ctx, http.MethodPost, "/api/truck-booking/calculate-vendor-price", token, req, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

// CreateBooking submits the assembled booking.
func (c *Client) CreateBooking(ctx context.Context, token string, sub models.BookingSubmission) (string, error) {
	return c.do(ctx, http.MethodPost, "/api/truck-booking/create-with-vendor", token, sub, nil)
}

// --- Auth endpoints ---

// SendOTP requests a one-time code for the given phone number.
func (c *Client) SendOTP(ctx context.Context, phone string) (string, error) {
	body := map[string]string{"contact_number": phone}
	return c.do(ctx, http.MethodPost, "/api/auth/send-otp", "", body, nil)
}

// VerifyOTP exchanges a one-time code for the upstream access token.
func (c *Client) VerifyOTP(ctx context.Context, phone, otp string) (*models.AuthResult, error) {
	body := map[string]string{"contact_number": phone, "otp": otp}
	var res models.AuthResult
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/verify-otp", "", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CheckUserStatus reports whether the shipper finished registration.
func (c *Client) CheckUserStatus(ctx context.Context, token, phone string) (*models.UserStatus, error) {
	body := map[string]string{"contact_number": phone}
	var status models.UserStatus
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/check-user-status", token, body, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// CompleteRegistration submits the shipper profile.
func (c *Client) CompleteRegistration(ctx context.Context, token string, in models.RegistrationInput) (string, error) {
	return c.do(ctx, http.MethodPost, "/api/auth/complete-registration", token, in, nil)
}

// AadhaarInitialize starts the hosted Aadhaar verification and returns its URL.
func (c *Client) AadhaarInitialize(ctx context.Context, token, redirectURL string) (*models.AadhaarInit, error) {
	body := map[string]string{"redirect_url": redirectURL}
	var init models.AadhaarInit
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/aadhaar/initialize", token, body, &init); err != nil {
		return nil, err
	}
	return &init, nil
}

// AadhaarVerify fetches the verified identity data for a completed session.
func (c *Client) AadhaarVerify(ctx context.Context, token, clientID string) (*models.AadhaarData, error) {
	body := map[string]string{"client_id": clientID}
	var data models.AadhaarData
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/aadhaar/verify", token, body, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// VerifyBankAccount runs the payout account check.
func (c *Client) VerifyBankAccount(ctx context.Context, token string, acc models.BankAccount) (string, error) {
	return c.do(ctx, http.MethodPost, "/api/vendor/auth/verify-bank-account", token, acc, nil)
}

// UpdateReferral records a referral code against the shipper.
func (c *Client) UpdateReferral(ctx context.Context, token, code string) (string, error) {
	body := map[string]string{"referral_code": code}
	return c.do(ctx, http.MethodPost, "/api/auth/update-referral", token, body, nil)
}

// --- Plan endpoints ---

// Plans lists the subscription plans.
func (c *Client) Plans(ctx context.Context, token string) ([]models.Plan, error) {
	var data struct {
		Plans []models.Plan `json:"plans"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/plans/", token, nil, &data); err != nil {
		return nil, err
	}
	return data.Plans, nil
}

// Subscribe opens a subscription for the plan, returning checkout parameters
// for paid plans.
func (c *Client) Subscribe(ctx context.Context, token string, planID int) (*models.SubscribeResult, error) {
	body := map[string]int{"plan_id": planID}
	var res models.SubscribeResult
	if _, err := c.do(ctx, http.MethodPost, "/api/plans/subscribe", token, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// VerifyPayment confirms a gateway payment against the subscription.
func (c *Client) VerifyPayment(ctx context.Context, token string, v models.PaymentVerification) (string, error) {
	return c.do(ctx, http.MethodPost, "/api/plans/subscriptions/verify-payment", token, v, nil)
}

// Subscriptions lists the shipper's subscriptions with the active one pulled out.
func (c *Client) Subscriptions(ctx context.Context, token string) (*models.SubscriptionStatus, error) {
	var status models.SubscriptionStatus
	if _, err := c.do(ctx, http.MethodGet, "/api/plans/subscriptions", token, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// --- Trip endpoints ---

// BookingSummary fetches the dashboard per-status trip counts.
func (c *Client) BookingSummary(ctx context.Context, token string) (*models.BookingSummary, error) {
	var data struct {
		Summary models.BookingSummary `json:"summary"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/api/truck-booking/my-bookings", token, nil, &data); err != nil {
		return nil, err
	}
	return &data.Summary, nil
}

// MyBookings lists the shipper's bookings for one status.
func (c *Client) MyBookings(ctx context.Context, token, status string) ([]models.Trip, error) {
	var data struct {
		Bookings []models.Trip `json:"bookings"`
	}
	path := "/api/truck-booking/my-bookings/" + url.PathEscape(status)
	if _, err := c.do(ctx, http.MethodGet, path, token, nil, &data); err != nil {
		return nil, err
	}
	return data.Bookings, nil
}

// AddReview records a post-trip vendor rating.
func (c *Client) AddReview(ctx context.Context, token string, review models.Review) (string, error) {
	return c.do(ctx, http.MethodPost, "/api/add-review", token, review, nil)
}
