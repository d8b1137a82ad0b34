package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps serialized attempt sessions in Redis with a TTL.
// A session that outlives the TTL is simply gone; the attempt surface treats
// that as attempt-not-found.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(attemptID string) string {
	return "quiz:attempt:" + attemptID
}

func (s *RedisSessionStore) Save(ctx context.Context, record *AttemptRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal attempt record: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(record.AttemptID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save attempt record: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, attemptID string) (*AttemptRecord, error) {
	data, err := s.client.Get(ctx, sessionKey(attemptID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get attempt record: %w", err)
	}

	var record AttemptRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attempt record: %w", err)
	}
	return &record, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, attemptID string) error {
	if err := s.client.Del(ctx, sessionKey(attemptID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
