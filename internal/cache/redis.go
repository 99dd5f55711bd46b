package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/lshigami/certpool/internal/monitoring"
)

type redisQuestionIDCache struct {
	client *redis.Client
}

func NewRedisQuestionIDCache(client *redis.Client) QuestionIDCache {
	return &redisQuestionIDCache{client: client}
}

func (c *redisQuestionIDCache) Backend() string { return "redis" }

func (c *redisQuestionIDCache) Get(ctx context.Context, examID uint) ([]uint, bool, error) {
	raw, err := c.client.Get(ctx, Key(examID)).Bytes()
	if errors.Is(err, redis.Nil) {
		monitoring.CacheRequests.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		monitoring.CacheRequests.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("redis get %s: %w", Key(examID), err)
	}

	var ids []uint
	if err := json.Unmarshal(raw, &ids); err != nil {
		monitoring.CacheRequests.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("decode cached ids for exam %d: %w", examID, err)
	}
	monitoring.CacheRequests.WithLabelValues("hit").Inc()
	return ids, true, nil
}

func (c *redisQuestionIDCache) Set(ctx context.Context, examID uint, ids []uint, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if ids == nil {
		ids = []uint{}
	}
	payload, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode ids for exam %d: %w", examID, err)
	}
	if err := c.client.Set(ctx, Key(examID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", Key(examID), err)
	}
	return nil
}

func (c *redisQuestionIDCache) Invalidate(ctx context.Context, examID uint) error {
	if err := c.client.Del(ctx, Key(examID)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", Key(examID), err)
	}
	return nil
}
