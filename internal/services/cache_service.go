package services

import (
	"context"
	"errors"
	"time"

	"rideway/pkg/cache"

	"github.com/redis/go-redis/v9"
)

// CacheService is the slice of Redis the ride flow needs: active-ride
// caching plus a SetNX lock that serializes booking attempts per rider.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// AcquireLock returns true when the lock was taken, false when another
	// holder already has it.
	AcquireLock(ctx context.Context, key string, expiration time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

type cacheService struct {
	redis *cache.RedisCache
}

func NewCacheService(redisCache *cache.RedisCache) CacheService {
	return &cacheService{redis: redisCache}
}

func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	return s.redis.Get(ctx, key, dest)
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return s.redis.Set(ctx, key, value, expiration)
}

func (s *cacheService) Delete(ctx context.Context, keys ...string) error {
	return s.redis.Delete(ctx, keys...)
}

func (s *cacheService) AcquireLock(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return s.redis.SetNX(ctx, key, "1", expiration)
}

func (s *cacheService) ReleaseLock(ctx context.Context, key string) error {
	return s.redis.Delete(ctx, key)
}

// IsCacheMiss distinguishes an absent key from a Redis failure.
func IsCacheMiss(err error) bool {
	return errors.Is(err, redis.Nil)
}
