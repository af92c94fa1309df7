// File: services/bookingflow/store.go
package bookingflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"transway/models"

	"github.com/go-redis/redis/v8"
)

const draftPrefix = "bookingDraft:"

// DraftStore persists booking drafts between requests.
type DraftStore interface {
	Get(ctx context.Context, draftID string) (*models.BookingDraft, error)
	Save(ctx context.Context, draft *models.BookingDraft) error
	Delete(ctx context.Context, draftID string) error
}

// RedisDraftStore keeps drafts in Redis with a sliding TTL: every save resets
// the expiry, so an abandoned draft disappears on its own.
type RedisDraftStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{Client: client, TTL: ttl}
}

func (s *RedisDraftStore) Get(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	data, err := s.Client.Get(ctx, draftPrefix+draftID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking draft: %w", err)
	}

	var draft models.BookingDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse booking draft %s: %w", draftID, err)
	}
	return &draft, nil
}

func (s *RedisDraftStore) Save(ctx context.Context, draft *models.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal booking draft: %w", err)
	}
	if err := s.Client.Set(ctx, draftPrefix+draft.DraftID, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store booking draft: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, draftID string) error {
	if err := s.Client.Del(ctx, draftPrefix+draftID).Err(); err != nil {
		return fmt.Errorf("failed to delete booking draft: %w", err)
	}
	return nil
}
