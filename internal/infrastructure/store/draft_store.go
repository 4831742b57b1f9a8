package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tavolo/ordering-gateway/internal/core/domain"
)

// DraftStore persists in-progress order drafts in Redis under draft:<id>.
// The TTL bounds how long an abandoned cart lingers.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &DraftStore{client: client, ttl: ttl}
}

func (s *DraftStore) Save(ctx context.Context, draft domain.OrderDraft) error {
	if draft.ID == "" {
		return errors.New("draft id must not be empty")
	}
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	return s.client.Set(ctx, s.key(draft.ID), data, s.ttl).Err()
}

func (s *DraftStore) Get(ctx context.Context, id string) (*domain.OrderDraft, error) {
	if id == "" {
		return nil, domain.ErrDraftNotFound
	}
	data, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var draft domain.OrderDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	return &draft, nil
}

func (s *DraftStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.client.Del(ctx, s.key(id)).Err()
}

func (s *DraftStore) key(id string) string {
	return "draft:" + id
}
