// File: services/location/geolocator.go
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"transway/models"

	"go.uber.org/zap"
)

// Geolocator resolves an approximate position for a client IP. It is used to
// seed the pickup map when a draft starts without a prior booking to prefill
// from.
type Geolocator interface {
	CurrentPosition(ctx context.Context, clientIP string) (models.GeoPoint, error)
}

// IPGeolocator looks positions up on ipapi.co and caches results per IP.
type IPGeolocator struct {
	httpClient *http.Client
	logger     *zap.Logger

	cacheMutex sync.RWMutex
	cache      map[string]models.GeoPoint
}

func NewIPGeolocator(timeout time.Duration, logger *zap.Logger) *IPGeolocator {
	return &IPGeolocator{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		cache:      make(map[string]models.GeoPoint),
	}
}

// isPrivateIP checks if an IP is private or loopback.
func isPrivateIP(ip string) bool {
	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}
	if parsedIP.IsLoopback() {
		return true
	}
	privateIPBlocks := []*net.IPNet{
		{IP: net.IPv4(10, 0, 0, 0), Mask: net.CIDRMask(8, 32)},
		{IP: net.IPv4(172, 16, 0, 0), Mask: net.CIDRMask(12, 32)},
		{IP: net.IPv4(192, 168, 0, 0), Mask: net.CIDRMask(16, 32)},
	}
	for _, block := range privateIPBlocks {
		if block.Contains(parsedIP) {
			return true
		}
	}
	return false
}

// CurrentPosition retrieves the IP's position from ipapi.co and caches the
// result. Private IPs and lookup failures return an error so the caller can
// fall back to the default map positions.
func (g *IPGeolocator) CurrentPosition(ctx context.Context, clientIP string) (models.GeoPoint, error) {
	if clientIP == "" {
		return models.GeoPoint{}, fmt.Errorf("empty client IP")
	}

	g.cacheMutex.RLock()
	if point, exists := g.cache[clientIP]; exists {
		g.cacheMutex.RUnlock()
		return point, nil
	}
	g.cacheMutex.RUnlock()

	if isPrivateIP(clientIP) {
		g.logger.Warn("Client IP is private; skipping geolocation", zap.String("ip", clientIP))
		return models.GeoPoint{}, fmt.Errorf("private IP %s has no geolocation", clientIP)
	}

	url := fmt.Sprintf("https://ipapi.co/%s/json/", clientIP)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.GeoPoint{}, err
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Error("Failed to query geolocation API", zap.String("ip", clientIP), zap.Error(err))
		return models.GeoPoint{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Error("Geolocation API returned non-OK status", zap.String("ip", clientIP), zap.Int("status", resp.StatusCode))
		return models.GeoPoint{}, fmt.Errorf("geolocation API status %d", resp.StatusCode)
	}

	var body struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		g.logger.Error("Failed to decode geolocation response", zap.String("ip", clientIP), zap.Error(err))
		return models.GeoPoint{}, err
	}
	if body.Latitude == 0 && body.Longitude == 0 {
		return models.GeoPoint{}, fmt.Errorf("geolocation API returned no position for %s", clientIP)
	}

	point := models.GeoPoint{Latitude: body.Latitude, Longitude: body.Longitude}
	g.cacheMutex.Lock()
	g.cache[clientIP] = point
	g.cacheMutex.Unlock()

	return point, nil
}
