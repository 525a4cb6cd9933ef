package utils

import (
	"context"
	"fmt"

	"sales-management-backend/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InvalidateCache removes every cached report key for the given resource type.
func InvalidateCache(rdb *redis.Client, resourceType string) error {
	pattern := fmt.Sprintf("%s:*", resourceType)
	iter := rdb.Scan(context.Background(), 0, pattern, 0).Iterator()

	for iter.Next(context.Background()) {
		key := iter.Val()
		if err := rdb.Del(context.Background(), key).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %v", key, err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("error during SCAN iteration: %v", err)
	}

	return nil
}

// InvalidateCacheAsync invalidates the cache for a given resource type without
// blocking the caller.
func InvalidateCacheAsync(rdb *redis.Client, resourceType string) {
	go func() {
		if err := InvalidateCache(rdb, resourceType); err != nil {
			config.Logger.Warn("Cache invalidation failed",
				zap.String("resource_type", resourceType),
				zap.Error(err))
		}
	}()
}
