// tokenstore/redisstore.go
package tokenstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/deploymenttheory/go-api-stream-client/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore keeps the current token in redis so multiple processes sharing one API key
// share one token instead of racing to exchange it. The key carries a TTL matching the
// token's remaining lifetime, so redis discards expired tokens on its own.
type RedisStore struct {
	client redis.UniversalClient
	key    string
	logger logger.Logger
}

// NewRedisStore creates a redis-backed token store writing to the given key.
func NewRedisStore(client redis.UniversalClient, key string, log logger.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		key:    key,
		logger: log,
	}
}

// Get fetches and decodes the token from redis. Any failure, including the key having
// expired, is reported as an absent token.
func (s *RedisStore) Get(ctx context.Context) (TokenInfo, bool) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("Failed to read token from redis", zap.String("Key", s.key), zap.Error(err))
		}
		return TokenInfo{}, false
	}

	var stored storedToken
	if err := json.Unmarshal(data, &stored); err != nil {
		s.logger.Warn("Failed to decode token from redis", zap.String("Key", s.key), zap.Error(err))
		return TokenInfo{}, false
	}

	return TokenInfo{
		Token:     stored.Token,
		ExpiresAt: time.Unix(stored.ExpiresAt, 0),
	}, true
}

// Set writes the token with a TTL equal to its remaining lifetime. Tokens already past
// expiry are written without a TTL guard rather than rejected; the connector treats them
// as expiring on the next read.
func (s *RedisStore) Set(ctx context.Context, token TokenInfo) {
	stored := storedToken{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt.Unix(),
	}

	data, err := json.Marshal(stored)
	if err != nil {
		s.logger.Warn("Failed to encode token for redis store", zap.Error(err))
		return
	}

	ttl := time.Until(token.ExpiresAt)
	if ttl < 0 {
		ttl = 0
	}

	if err := s.client.Set(ctx, s.key, data, ttl).Err(); err != nil {
		s.logger.Warn("Failed to write token to redis", zap.String("Key", s.key), zap.Error(err))
	}
}
