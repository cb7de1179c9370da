package redisservice

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	creationProgressPrefix = "classpad:creationProgress:"
	creationProgressTTL    = 30 * time.Second
)

type RedisService struct {
	rc *redis.Client
}

func New(rc *redis.Client) *RedisService {
	return &RedisService{
		rc: rc,
	}
}

// LockCreationProgress marks a booking creation as in flight so a duplicate
// concurrent submission of the same request is rejected instead of producing
// two series. Returns false when another request already holds the key. The
// TTL guards against a crashed holder.
func (s *RedisService) LockCreationProgress(ctx context.Context, key string) (bool, error) {
	return s.rc.SetNX(ctx, creationProgressPrefix+key, 1, creationProgressTTL).Result()
}

func (s *RedisService) UnlockCreationProgress(ctx context.Context, key string) error {
	return s.rc.Del(ctx, creationProgressPrefix+key).Err()
}

func (s *RedisService) IsCreationInProgress(ctx context.Context, key string) (bool, error) {
	n, err := s.rc.Exists(ctx, creationProgressPrefix+key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
