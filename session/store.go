// File: session/store.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "session:"

// Session holds the upstream bearer credential for a signed-in shipper.
type Session struct {
	UserID      string    `json:"userId"`
	PhoneNumber string    `json:"phoneNumber"`
	AccessToken string    `json:"accessToken"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AuthenticationError means no usable session exists. Authenticated
// operations fail with it before any upstream I/O is attempted.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	return "authentication required: " + e.Reason
}

// TokenStore persists sessions between requests.
type TokenStore interface {
	Get(ctx context.Context, userID string) (*Session, error)
	Set(ctx context.Context, userID string, s Session) error
	Remove(ctx context.Context, userID string) error
}

// RedisTokenStore keeps sessions in the auth cache with a TTL refreshed on
// every save.
type RedisTokenStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisTokenStore(client *redis.Client, ttl time.Duration) *RedisTokenStore {
	return &RedisTokenStore{Client: client, TTL: ttl}
}

// Get retrieves the session for a user. A missing or expired entry returns
// an AuthenticationError.
func (s *RedisTokenStore) Get(ctx context.Context, userID string) (*Session, error) {
	data, err := s.Client.Get(ctx, sessionPrefix+userID).Result()
	if err == redis.Nil {
		return nil, &AuthenticationError{Reason: "no active session"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if sess.AccessToken == "" {
		return nil, &AuthenticationError{Reason: "session has no token"}
	}
	return &sess, nil
}

// Set saves the session under the user's id.
func (s *RedisTokenStore) Set(ctx context.Context, userID string, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.Client.Set(ctx, sessionPrefix+userID, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Remove deletes the session, signing the user out.
func (s *RedisTokenStore) Remove(ctx context.Context, userID string) error {
	return s.Client.Del(ctx, sessionPrefix+userID).Err()
}
