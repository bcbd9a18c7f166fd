package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"

	"github.com/vitalstats/natalityd/internal/core/errx"
	logx "github.com/vitalstats/natalityd/pkg/logger"
)

// RedisStore keeps transcripts in Redis lists, one list per session, with a
// sliding TTL. Opt-in backend for deployments where transcripts should
// survive process restarts.
type RedisStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRedisStore creates a store over an existing Redis client.
func NewRedisStore(rdb redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) key(sessionID string) string {
	return fmt.Sprintf("session:%s:messages", sessionID)
}

// Append implements Store.
func (s *RedisStore) Append(ctx context.Context, sessionID string, message *schema.Message) error {
	b, err := json.Marshal(message)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to marshal message")
		return fmt.Errorf("marshal message: %w", err)
	}

	key := s.key(sessionID)
	if err := s.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to append message")
		return errx.WrapSession(err)
	}
	if s.ttl > 0 {
		if err := s.rdb.Expire(ctx, key, s.ttl).Err(); err != nil {
			logx.Warn().Err(err).Str("sessionID", sessionID).Msg("failed to refresh session ttl")
		}
	}
	return nil
}

// History implements Store.
func (s *RedisStore) History(ctx context.Context, sessionID string) ([]*schema.Message, error) {
	raw, err := s.rdb.LRange(ctx, s.key(sessionID), 0, -1).Result()
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to load transcript")
		return nil, errx.WrapSession(err)
	}

	messages := make([]*schema.Message, 0, len(raw))
	for _, item := range raw {
		var msg schema.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			logx.Warn().Err(err).Str("sessionID", sessionID).Msg("skipping undecodable message")
			continue
		}
		messages = append(messages, &msg)
	}
	return messages, nil
}
