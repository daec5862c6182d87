package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"foros-bot/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps in-progress review drafts in redis with a TTL, so
// abandoned dialogues expire on their own.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func sessionKey(userID int64) string {
	return "session:" + strconv.FormatInt(userID, 10)
}

func (s *RedisSessionStore) Get(ctx context.Context, userID int64) (*domain.ReviewDraft, error) {
	payload, err := s.Client.Get(ctx, sessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var draft domain.ReviewDraft
	if err := json.Unmarshal([]byte(payload), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	return &draft, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, userID int64, draft *domain.ReviewDraft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}
	return s.Client.Set(ctx, sessionKey(userID), payload, s.TTL).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, userID int64) error {
	return s.Client.Del(ctx, sessionKey(userID)).Err()
}
