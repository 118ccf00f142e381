package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mbti-service/internal/domain"
)

// ResultStore keeps one JSON-encoded result per session under mbti:result:{sessionID}.
// Expiry is delegated to Redis; each Put refreshes the TTL.
type ResultStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultStore(client *redis.Client, ttl time.Duration) *ResultStore {
	return &ResultStore{client: client, ttl: ttl}
}

func (s *ResultStore) Put(ctx context.Context, sessionID string, record domain.ResultRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store result: %w", err)
	}
	return nil
}

func (s *ResultStore) Get(ctx context.Context, sessionID string) (domain.ResultRecord, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ResultRecord{}, domain.ErrResultNotFound
	}
	if err != nil {
		return domain.ResultRecord{}, fmt.Errorf("load result: %w", err)
	}

	var record domain.ResultRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return domain.ResultRecord{}, fmt.Errorf("decode result: %w", err)
	}
	return record, nil
}

func (s *ResultStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear result: %w", err)
	}
	return nil
}

func (s *ResultStore) key(sessionID string) string {
	return "mbti:result:" + sessionID
}
