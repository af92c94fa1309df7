package utils

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Redis     []bool    `json:"redis"`
	Upstream  bool      `json:"upstream"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
// The first check runs immediately so the snapshot is populated before the
// first tick.
func StartHealthMonitor(redisClients []*redis.Client, upstreamBaseURL string) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		httpClient := &http.Client{Timeout: 5 * time.Second}
		ctx := context.Background()

		runHealthCheck(ctx, httpClient, redisClients, upstreamBaseURL)
		for range ticker.C {
			runHealthCheck(ctx, httpClient, redisClients, upstreamBaseURL)
		}
	}()
}

func runHealthCheck(ctx context.Context, httpClient *http.Client, redisClients []*redis.Client, upstreamBaseURL string) {
	var redisHealth []bool
	for _, client := range redisClients {
		err := client.Ping(ctx).Err()
		redisHealth = append(redisHealth, err == nil)
	}

	upstreamHealthy := false
	if resp, err := httpClient.Get(upstreamBaseURL + "/health"); err == nil {
		resp.Body.Close()
		upstreamHealthy = resp.StatusCode < http.StatusInternalServerError
	}

	healthMu.Lock()
	currentHealth = HealthStatus{
		Redis:     redisHealth,
		Upstream:  upstreamHealthy,
		CheckedAt: time.Now(),
	}
	healthMu.Unlock()
}
