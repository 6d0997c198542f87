package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetdesk/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CacheService is the subset of the cache layer the repositories use for
// read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// wrapStoreErr classifies store failures: timeouts become TransientError so
// callers can retry, everything else is wrapped with the operation name.
func wrapStoreErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) {
		return models.NewTransientError(fmt.Errorf("%s: %w", op, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}
