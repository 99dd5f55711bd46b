// Package cache holds the per-exam cache of question identifiers.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/lshigami/certpool/config"
	"github.com/rs/zerolog/log"
)

const DefaultTTL = time.Hour

// QuestionIDCache stores, per exam, a snapshot of the ids of all its questions.
// A miss is (nil, false, nil); errors are reported separately so callers can
// fall back to the store.
type QuestionIDCache interface {
	Get(ctx context.Context, examID uint) ([]uint, bool, error)
	Set(ctx context.Context, examID uint, ids []uint, ttl time.Duration) error
	Invalidate(ctx context.Context, examID uint) error
	Backend() string
}

func Key(examID uint) string {
	return fmt.Sprintf("exam:%d:question_ids", examID)
}

// New picks Redis when a client is available and the in-process cache otherwise.
func New(cfg *config.Config, rdb *redis.Client) QuestionIDCache {
	if rdb != nil {
		log.Info().Msg("Question id cache backed by Redis")
		return NewRedisQuestionIDCache(rdb)
	}
	log.Info().Int("max_entries", cfg.Cache.MaxEntries).Msg("Question id cache backed by process memory")
	return NewMemoryQuestionIDCache(cfg.Cache.MaxEntries)
}
