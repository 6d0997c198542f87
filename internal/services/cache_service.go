package services

import (
	"context"
	"time"

	"fleetdesk/pkg/cache"
	"fleetdesk/pkg/logger"
)

// CacheService is the cache surface the services use: plain key/value plus
// SetNX-based leases for mutual exclusion.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// AcquireLock takes a short-lived lease on key. It returns false when
	// another holder owns the lease; the TTL bounds how long a crashed
	// holder can block others.
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type cacheService struct {
	redis  *cache.RedisCache
	logger *logger.Logger
}

func NewCacheService(redis *cache.RedisCache, logger *logger.Logger) CacheService {
	return &cacheService{
		redis:  redis,
		logger: logger,
	}
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

func (s *cacheService) Exists(ctx context.Context, key string) (bool, error) {
	return s.redis.Exists(ctx, key)
}

func (s *cacheService) AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := s.redis.SetNX(ctx, key, time.Now().Unix(), ttl)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Lock acquisition failed")
		return false, err
	}
	return acquired, nil
}

func (s *cacheService) ReleaseLock(ctx context.Context, key string) error {
	return s.redis.Delete(ctx, key)
}

func (s *cacheService) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx)
}
